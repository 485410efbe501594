package typeexpr

import (
	"testing"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()
	n, err := New(Tokenize(src)).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return n
}

func TestParse_Ident(t *testing.T) {
	n := parse(t, "u32")
	if n.Kind != NodeIdent || n.Name != "u32" {
		t.Errorf("got %+v, want ident u32", n)
	}
}

func TestParse_Ptr(t *testing.T) {
	n := parse(t, "ptr<u8>")
	if n.Kind != NodePtr {
		t.Fatalf("kind = %v, want ptr", n.Kind)
	}
	if n.Elem == nil || n.Elem.Name != "u8" {
		t.Errorf("elem = %+v, want u8", n.Elem)
	}
}

func TestParse_Vec(t *testing.T) {
	n := parse(t, "vec<vec<u8>>")
	if n.Kind != NodeVec || n.Elem.Kind != NodeVec || n.Elem.Elem.Name != "u8" {
		t.Errorf("got %+v, want nested vec", n)
	}
}

func TestParse_Array(t *testing.T) {
	n := parse(t, "array<u32, 256>")
	if n.Kind != NodeArray || n.Len != 256 || n.Elem.Name != "u32" {
		t.Errorf("got %+v, want array<u32, 256>", n)
	}
}

func TestParse_Struct(t *testing.T) {
	n := parse(t, "struct{x: f64, y: f64, tag: u8}")
	if n.Kind != NodeStruct {
		t.Fatalf("kind = %v, want struct", n.Kind)
	}
	if len(n.Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(n.Fields))
	}
	if n.Fields[0].Name != "x" || n.Fields[2].Name != "tag" {
		t.Errorf("field names = %v %v", n.Fields[0].Name, n.Fields[2].Name)
	}
	if n.Fields[2].Type.Name != "u8" {
		t.Errorf("tag type = %+v, want u8", n.Fields[2].Type)
	}
}

func TestParse_EmptyStruct(t *testing.T) {
	n := parse(t, "struct{}")
	if n.Kind != NodeStruct || len(n.Fields) != 0 {
		t.Errorf("got %+v, want empty struct", n)
	}
}

func TestParse_Extern(t *testing.T) {
	n := parse(t, `extern "Device"`)
	if n.Kind != NodeExtern || n.Name != "Device" {
		t.Errorf("got %+v, want extern Device", n)
	}
}

func TestParse_Nested(t *testing.T) {
	n := parse(t, "struct{items: vec<array<u16, 4>>, owner: ptr<u8>}")
	if n.Fields[0].Type.Kind != NodeVec {
		t.Errorf("items kind = %v, want vec", n.Fields[0].Type.Kind)
	}
	inner := n.Fields[0].Type.Elem
	if inner.Kind != NodeArray || inner.Len != 4 {
		t.Errorf("inner = %+v, want array<u16, 4>", inner)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		"",
		"vec<",
		"vec<u8",
		"array<u8>",
		"array<u8, x>",
		"array<u8, 4294967296>",
		"struct{x}",
		"struct{x: u8",
		"u32 u32",
		"extern Device",
		"<u8>",
	}
	for _, src := range tests {
		if _, err := New(Tokenize(src)).Parse(); err == nil {
			t.Errorf("Parse(%q) should fail", src)
		}
	}
}
