package cwriter

import (
	"strings"
	"testing"
)

func TestWriter_Lines(t *testing.T) {
	w := NewWriter()
	w.Include("stdint.h")
	w.Blank()
	w.Line("static uint32_t counter;")

	got := string(w.Bytes())
	want := "#include <stdint.h>\n\nstatic uint32_t counter;\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriter_Blocks(t *testing.T) {
	w := NewWriter()
	w.Open("static void ctor(void) {")
	w.Line("cell = %d;", 42)
	w.Close("}")

	got := string(w.Bytes())
	want := "static void ctor(void) {\n    cell = 42;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriter_NestedBlocks(t *testing.T) {
	w := NewWriter()
	w.Open("void f(void) {")
	w.Open("for (size_t i = 0; i < 4; i++) {")
	w.Line("free(p[i]);")
	w.Close("}")
	w.Close("}")

	got := string(w.Bytes())
	if !strings.Contains(got, "        free(p[i]);") {
		t.Errorf("inner line not double-indented:\n%s", got)
	}
	if w.Len() != len(got) {
		t.Errorf("Len() = %d, want %d", w.Len(), len(got))
	}
}

func TestWriter_Comment(t *testing.T) {
	w := NewWriter()
	w.Comment("binding %s", "FOO")
	if got := string(w.Bytes()); got != "/* binding FOO */\n" {
		t.Errorf("got %q", got)
	}
}
