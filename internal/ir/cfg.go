package ir

import (
	"strings"

	"bindery/internal/config"
	"bindery/internal/emit"
)

// CfgKind enumerates the node kinds of a conditional-compilation
// predicate tree.
type CfgKind uint8

const (
	CfgDefine CfgKind = iota
	CfgKeyValue
	CfgAll
	CfgAny
	CfgNot
)

// Cfg is a conditional-compilation predicate attached to a declaration.
// A nil *Cfg means the declaration is unconditional.
type Cfg struct {
	Kind     CfgKind
	Name     string // CfgDefine, CfgKeyValue
	Value    string // CfgKeyValue
	Children []*Cfg // CfgAll, CfgAny, CfgNot (single child)
}

// CfgDefined builds a bare predicate (e.g. "unix").
func CfgDefined(name string) *Cfg {
	return &Cfg{Kind: CfgDefine, Name: name}
}

// CfgValue builds a key/value predicate (e.g. feature = "serde").
func CfgValue(name, value string) *Cfg {
	return &Cfg{Kind: CfgKeyValue, Name: name, Value: value}
}

// CfgAllOf builds the conjunction of the given predicates.
func CfgAllOf(children ...*Cfg) *Cfg {
	return &Cfg{Kind: CfgAll, Children: children}
}

// CfgAnyOf builds the disjunction of the given predicates.
func CfgAnyOf(children ...*Cfg) *Cfg {
	return &Cfg{Kind: CfgAny, Children: children}
}

// CfgNotOf negates a predicate.
func CfgNotOf(child *Cfg) *Cfg {
	return &Cfg{Kind: CfgNot, Children: []*Cfg{child}}
}

// CfgJoin conjoins an enclosing-scope predicate with a declaration's
// own. Either side may be nil; both nil yields nil (unconditional).
func CfgJoin(scope, own *Cfg) *Cfg {
	switch {
	case scope == nil:
		return own
	case own == nil:
		return scope
	default:
		return CfgAllOf(scope, own)
	}
}

// Clone returns a deep copy of the predicate tree.
func (c *Cfg) Clone() *Cfg {
	if c == nil {
		return nil
	}
	out := &Cfg{Kind: c.Kind, Name: c.Name, Value: c.Value}
	for _, child := range c.Children {
		out.Children = append(out.Children, child.Clone())
	}
	return out
}

// defineSpelling is the cfg's key as it appears in the config defines
// map: `name` for bare predicates, `name = value` for key/value ones.
func (c *Cfg) defineSpelling() string {
	if c.Kind == CfgKeyValue {
		return c.Name + " = " + c.Value
	}
	return c.Name
}

// define resolves the C define for a leaf predicate. Unmapped
// predicates fall back to an uppercased identifier derived from the
// spelling, so output stays deterministic without configuration.
func (c *Cfg) define(cfg *config.Config) string {
	if d, ok := cfg.Defines[c.defineSpelling()]; ok {
		return d
	}
	var b strings.Builder
	for _, r := range c.defineSpelling() {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Expr renders the predicate as a C preprocessor expression.
func (c *Cfg) Expr(cfg *config.Config) string {
	switch c.Kind {
	case CfgDefine, CfgKeyValue:
		return "defined(" + c.define(cfg) + ")"
	case CfgAll:
		return c.joinChildren(cfg, " && ")
	case CfgAny:
		return c.joinChildren(cfg, " || ")
	case CfgNot:
		if len(c.Children) != 1 {
			return "0"
		}
		return "!" + c.Children[0].parenExpr(cfg)
	default:
		return "0"
	}
}

func (c *Cfg) joinChildren(cfg *config.Config, sep string) string {
	parts := make([]string, 0, len(c.Children))
	for _, child := range c.Children {
		parts = append(parts, child.parenExpr(cfg))
	}
	return strings.Join(parts, sep)
}

func (c *Cfg) parenExpr(cfg *config.Config) string {
	expr := c.Expr(cfg)
	if c.Kind == CfgAll || c.Kind == CfgAny {
		return "(" + expr + ")"
	}
	return expr
}

// WriteBefore opens the conditional guard. Nil receivers write nothing.
func (c *Cfg) WriteBefore(cfg *config.Config, w *emit.SourceWriter) {
	if c == nil {
		return
	}
	w.WriteLine("#if " + c.Expr(cfg))
}

// WriteAfter closes the conditional guard opened by WriteBefore.
func (c *Cfg) WriteAfter(cfg *config.Config, w *emit.SourceWriter) {
	if c == nil {
		return
	}
	w.WriteLine("#endif")
}
