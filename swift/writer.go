package swift

import (
	"bytes"
	"fmt"
	"strings"
)

// DefaultIndentSize is the number of spaces per indentation level.
const DefaultIndentSize = 4

// Writer assembles indented source text line by line.
// The zero value is not usable; create one with NewWriter.
type Writer struct {
	buf   bytes.Buffer
	unit  string
	depth int
}

// NewWriter returns a Writer indenting with size spaces per level.
// A non-positive size selects DefaultIndentSize.
func NewWriter(size int) *Writer {
	if size <= 0 {
		size = DefaultIndentSize
	}
	return &Writer{unit: strings.Repeat(" ", size)}
}

// Line writes s at the current indentation, followed by a newline.
// An empty s writes a blank line without trailing whitespace.
func (w *Writer) Line(s string) {
	if s == "" {
		w.Blank()
		return
	}
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString(w.unit)
	}
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// Linef formats according to format and writes the result as a line.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Indent runs fn with the indentation increased by one level.
func (w *Writer) Indent(fn func()) {
	w.depth++
	defer func() { w.depth-- }()
	fn()
}

// Block writes open, runs fn one level deeper, then writes close.
func (w *Writer) Block(open, close string, fn func()) {
	w.Line(open)
	w.Indent(fn)
	w.Line(close)
}

// Text writes a multi-line template. Every run of four leading spaces in
// a template line counts as one indentation level, so templates follow the
// writer's indent size. A single leading and trailing newline are ignored.
func (w *Writer) Text(template string) {
	template = strings.TrimPrefix(template, "\n")
	template = strings.TrimSuffix(template, "\n")
	for _, line := range strings.Split(template, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			w.Blank()
			continue
		}
		lead := len(line) - len(trimmed)
		levels := lead / DefaultIndentSize
		w.depth += levels
		w.Line(strings.Repeat(" ", lead%DefaultIndentSize) + trimmed)
		w.depth -= levels
	}
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.buf.String()
}
