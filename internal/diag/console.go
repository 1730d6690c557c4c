package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	noteColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// ConsoleReporter renders diagnostics to a writer, one line per
// diagnostic plus indented notes.
type ConsoleReporter struct {
	Out      io.Writer
	Colorize bool
}

// NewConsoleReporter builds a console reporter.
func NewConsoleReporter(out io.Writer, colorize bool) *ConsoleReporter {
	return &ConsoleReporter{Out: out, Colorize: colorize}
}

func (r *ConsoleReporter) Report(d Diagnostic) {
	if r == nil || r.Out == nil {
		return
	}
	label := d.Severity.String()
	if r.Colorize {
		switch d.Severity {
		case SevWarning:
			label = warningColor.Sprint(label)
		case SevError:
			label = errorColor.Sprint(label)
		default:
			label = noteColor.Sprint(label)
		}
	}
	if d.Path != "" {
		fmt.Fprintf(r.Out, "%s [%s] %s: %s\n", label, d.Code, d.Path, d.Message)
	} else {
		fmt.Fprintf(r.Out, "%s [%s] %s\n", label, d.Code, d.Message)
	}
	for _, note := range d.Notes {
		fmt.Fprintf(r.Out, "  note: %s\n", note)
	}
}
