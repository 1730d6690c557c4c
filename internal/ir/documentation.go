package ir

import (
	"bindery/internal/config"
	"bindery/internal/emit"
)

// Documentation is the doc comment attached to a declaration, one
// entry per line, without comment markers.
type Documentation struct {
	Lines []string
}

// IsEmpty reports whether there is no documentation.
func (d *Documentation) IsEmpty() bool {
	return len(d.Lines) == 0
}

// Clone returns an independent copy.
func (d *Documentation) Clone() Documentation {
	if len(d.Lines) == 0 {
		return Documentation{}
	}
	out := make([]string, len(d.Lines))
	copy(out, d.Lines)
	return Documentation{Lines: out}
}

// Write renders the doc comment in block form.
func (d *Documentation) Write(cfg *config.Config, w *emit.SourceWriter) {
	if !cfg.Documentation || len(d.Lines) == 0 {
		return
	}
	w.WriteLine("/**")
	for _, line := range d.Lines {
		if line == "" {
			w.WriteLine(" *")
			continue
		}
		w.WriteLine(" * " + line)
	}
	w.WriteLine(" */")
}
