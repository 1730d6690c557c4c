package emit

import (
	"fmt"
	"io"
	"strings"
)

// SourceWriter is a line-oriented text sink with indentation tracking.
// Indentation is applied lazily, when the first text of a line arrives,
// so empty lines stay empty.
type SourceWriter struct {
	w         io.Writer
	indent    int
	lineStart bool
	err       error
}

// NewSourceWriter wraps an io.Writer.
func NewSourceWriter(w io.Writer) *SourceWriter {
	return &SourceWriter{w: w, lineStart: true}
}

// WriteString appends text to the current line.
func (s *SourceWriter) WriteString(text string) {
	if s.err != nil || text == "" {
		return
	}
	if s.lineStart {
		s.lineStart = false
		if s.indent > 0 {
			if _, err := io.WriteString(s.w, strings.Repeat("  ", s.indent)); err != nil {
				s.err = err
				return
			}
		}
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		s.err = err
	}
}

// Writef appends formatted text to the current line.
func (s *SourceWriter) Writef(format string, args ...any) {
	s.WriteString(fmt.Sprintf(format, args...))
}

// NewLine terminates the current line.
func (s *SourceWriter) NewLine() {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, "\n"); err != nil {
		s.err = err
		return
	}
	s.lineStart = true
}

// WriteLine writes a full line of text.
func (s *SourceWriter) WriteLine(text string) {
	s.WriteString(text)
	s.NewLine()
}

// PushIndent increases the indentation of subsequent lines.
func (s *SourceWriter) PushIndent() {
	s.indent++
}

// PopIndent decreases the indentation of subsequent lines.
func (s *SourceWriter) PopIndent() {
	if s.indent > 0 {
		s.indent--
	}
}

// Err reports the first write error, if any occurred.
func (s *SourceWriter) Err() error {
	return s.err
}
