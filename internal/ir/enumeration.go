package ir

import (
	"fmt"

	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// EnumVariant is one named constant of an enum, with an explicit
// discriminant.
type EnumVariant struct {
	Name  string
	Value int64
}

// Enum is a C-style enumeration. Its variants carry no type payload,
// so a generic enum monomorphizes to a renamed copy of itself.
type Enum struct {
	path          Path
	exportName    string
	genericParams GenericParams
	variants      []EnumVariant
	cfg           *Cfg
	annotations   AnnotationSet
	documentation Documentation
}

var _ Item = (*Enum)(nil)

// NewEnum builds an enum declaration.
func NewEnum(path Path, generics GenericParams, variants []EnumVariant, scopeCfg, ownCfg *Cfg, annotations AnnotationSet, doc Documentation) (*Enum, error) {
	if len(variants) == 0 {
		return nil, &LoadError{
			Kind:   LoadMalformedDecl,
			Path:   path,
			Reason: "enum has no variants",
		}
	}
	return &Enum{
		path:          path,
		exportName:    path.Name(),
		genericParams: generics,
		variants:      variants,
		cfg:           CfgJoin(scopeCfg, ownCfg),
		annotations:   annotations,
		documentation: doc,
	}, nil
}

func (e *Enum) Path() Path                  { return e.path }
func (e *Enum) ExportName() string          { return e.exportName }
func (e *Enum) Cfg() *Cfg                   { return e.cfg }
func (e *Enum) Annotations() *AnnotationSet { return &e.annotations }
func (e *Enum) Kind() DeclKind              { return DeclEnum }

// Variants returns the enum's constants.
func (e *Enum) Variants() []EnumVariant { return e.variants }

func (e *Enum) IsGeneric() bool {
	return e.genericParams.Len() > 0
}

func (e *Enum) RenameForConfig(cfg *config.Config) {
	e.exportName = cfg.Export.Rename(e.exportName)
}

func (e *Enum) ResolveDeclarationTypes(*DeclarationTypeResolver) {}

func (e *Enum) AddDependencies(*Library, *Dependencies) {}

func (e *Enum) AddMonomorphs(*Library, *Monomorphs) {}

func (e *Enum) InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs) {
	invariant(e.IsGeneric(), "%s is not generic", e.path)
	invariant(e.genericParams.Len() == len(args),
		"%s has %d params but is being instantiated with %d values",
		e.path, e.genericParams.Len(), len(args))
	if out.Contains(e.path, args) {
		return
	}
	out.enter(e.path)
	defer out.leave()

	mangled := ManglePath(e.path, args)
	variants := make([]EnumVariant, len(e.variants))
	copy(variants, e.variants)
	mono := &Enum{
		path:          mangled,
		exportName:    lib.Config().Export.Rename(mangled.Name()),
		variants:      variants,
		cfg:           e.cfg.Clone(),
		annotations:   e.annotations.Clone(),
		documentation: e.documentation.Clone(),
	}
	out.InsertEnum(e, mono, args)
}

func (e *Enum) ManglePaths(*Monomorphs, diag.Reporter) {}

func (e *Enum) Write(cfg *config.Config, w *emit.SourceWriter) {
	e.documentation.Write(cfg, w)
	e.cfg.WriteBefore(cfg, w)
	if cfg.Language == config.LanguageC {
		switch cfg.Style {
		case config.StyleTag:
			w.WriteLine("enum " + e.exportName + " {")
		case config.StyleBoth:
			w.WriteLine("typedef enum " + e.exportName + " {")
		default:
			w.WriteLine("typedef enum {")
		}
		w.PushIndent()
		for _, v := range e.variants {
			w.WriteLine(fmt.Sprintf("%s_%s = %d,", e.exportName, v.Name, v.Value))
		}
		w.PopIndent()
		if cfg.Style == config.StyleTag {
			w.WriteLine("};")
		} else {
			w.WriteLine("} " + e.exportName + ";")
		}
	} else {
		w.WriteLine("enum class " + e.exportName + " {")
		w.PushIndent()
		for _, v := range e.variants {
			w.WriteLine(fmt.Sprintf("%s = %d,", v.Name, v.Value))
		}
		w.PopIndent()
		w.WriteLine("};")
	}
	e.cfg.WriteAfter(cfg, w)
}
