package emit

import (
	"errors"
	"strings"
	"testing"
)

func TestSourceWriterIndentation(t *testing.T) {
	var sb strings.Builder
	w := NewSourceWriter(&sb)

	w.WriteLine("typedef struct {")
	w.PushIndent()
	w.WriteLine("uint8_t a;")
	w.PushIndent()
	w.WriteLine("deep;")
	w.PopIndent()
	w.WriteLine("uint8_t b;")
	w.PopIndent()
	w.WriteLine("} Foo;")

	want := "typedef struct {\n" +
		"  uint8_t a;\n" +
		"    deep;\n" +
		"  uint8_t b;\n" +
		"} Foo;\n"
	if sb.String() != want {
		t.Fatalf("output = %q, want %q", sb.String(), want)
	}
	if err := w.Err(); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
}

func TestSourceWriterEmptyLinesStayEmpty(t *testing.T) {
	var sb strings.Builder
	w := NewSourceWriter(&sb)

	w.PushIndent()
	w.WriteLine("a;")
	w.NewLine()
	w.WriteLine("b;")

	if sb.String() != "  a;\n\n  b;\n" {
		t.Fatalf("output = %q", sb.String())
	}
}

func TestSourceWriterIndentAppliesOncePerLine(t *testing.T) {
	var sb strings.Builder
	w := NewSourceWriter(&sb)

	w.PushIndent()
	w.WriteString("uint8_t")
	w.WriteString(" a")
	w.Writef(" = %d;", 7)
	w.NewLine()

	if sb.String() != "  uint8_t a = 7;\n" {
		t.Fatalf("output = %q", sb.String())
	}
}

func TestSourceWriterPopAtZeroIsSafe(t *testing.T) {
	var sb strings.Builder
	w := NewSourceWriter(&sb)

	w.PopIndent()
	w.WriteLine("a;")

	if sb.String() != "a;\n" {
		t.Fatalf("output = %q", sb.String())
	}
}

type failingWriter struct{ err error }

func (f *failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestSourceWriterStopsAfterFirstError(t *testing.T) {
	sink := &failingWriter{err: errors.New("disk full")}
	w := NewSourceWriter(sink)

	w.WriteLine("a;")
	w.WriteLine("b;")

	if err := w.Err(); err == nil || err.Error() != "disk full" {
		t.Fatalf("expected the first write error, got %v", err)
	}
}
