// Package cwriter provides buffered writing utilities for emitting C
// translation units.
package cwriter

import (
	"bytes"
	"fmt"
	"strings"
)

// Writer accumulates C source text with indentation tracking.
type Writer struct {
	buf    *bytes.Buffer
	indent int
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written source.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Line writes one indented line.
func (w *Writer) Line(format string, args ...any) {
	if format == "" {
		w.buf.WriteByte('\n')
		return
	}
	w.buf.WriteString(strings.Repeat("    ", w.indent))
	if len(args) > 0 {
		fmt.Fprintf(w.buf, format, args...)
	} else {
		w.buf.WriteString(format)
	}
	w.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Include writes a system include directive.
func (w *Writer) Include(header string) {
	fmt.Fprintf(w.buf, "#include <%s>\n", header)
}

// Comment writes a block comment line.
func (w *Writer) Comment(format string, args ...any) {
	w.Line("/* "+format+" */", args...)
}

// Open writes a line and increases the indent, for block openers.
func (w *Writer) Open(format string, args ...any) {
	w.Line(format, args...)
	w.indent++
}

// Close decreases the indent and writes a closing line.
func (w *Writer) Close(format string, args ...any) {
	if w.indent > 0 {
		w.indent--
	}
	w.Line(format, args...)
}

// Raw writes text with no indentation or newline handling.
func (w *Writer) Raw(s string) {
	w.buf.WriteString(s)
}
