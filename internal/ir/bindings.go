package ir

import (
	"io"

	"bindery/internal/config"
	"bindery/internal/emit"
)

// Bindings is the finalized emission set: concrete, mangled,
// dependency-ordered declarations plus the framing around them.
type Bindings struct {
	config *config.Config
	items  []Item
}

// Items returns the declarations in emission order.
// Do not modify the returned slice.
func (b *Bindings) Items() []Item {
	return b.items
}

// Write renders the whole header to a byte sink.
func (b *Bindings) Write(out io.Writer) error {
	w := emit.NewSourceWriter(out)
	cfg := b.config

	if cfg.AutogenWarning != "" {
		w.WriteLine("/* " + cfg.AutogenWarning + " */")
		w.NewLine()
	}
	if cfg.Header != "" {
		w.WriteLine(cfg.Header)
		w.NewLine()
	}
	if cfg.IncludeGuard != "" {
		w.WriteLine("#ifndef " + cfg.IncludeGuard)
		w.WriteLine("#define " + cfg.IncludeGuard)
		w.NewLine()
	}

	for i, item := range b.items {
		if i > 0 {
			w.NewLine()
		}
		item.Write(cfg, w)
	}

	if cfg.IncludeGuard != "" {
		w.NewLine()
		w.WriteLine("#endif /* " + cfg.IncludeGuard + " */")
	}
	if cfg.Trailer != "" {
		w.NewLine()
		w.WriteLine(cfg.Trailer)
	}
	return w.Err()
}
