package ir

import (
	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// OpaqueItem is a declaration exported as a forward declaration only:
// the target sees the name but never the layout.
type OpaqueItem struct {
	path          Path
	exportName    string
	genericParams GenericParams
	cfg           *Cfg
	annotations   AnnotationSet
	documentation Documentation
}

var _ Item = (*OpaqueItem)(nil)

// NewOpaqueItem builds an opaque declaration.
func NewOpaqueItem(path Path, generics GenericParams, scopeCfg, ownCfg *Cfg, annotations AnnotationSet, doc Documentation) *OpaqueItem {
	return &OpaqueItem{
		path:          path,
		exportName:    path.Name(),
		genericParams: generics,
		cfg:           CfgJoin(scopeCfg, ownCfg),
		annotations:   annotations,
		documentation: doc,
	}
}

func (o *OpaqueItem) Path() Path                  { return o.path }
func (o *OpaqueItem) ExportName() string          { return o.exportName }
func (o *OpaqueItem) Cfg() *Cfg                   { return o.cfg }
func (o *OpaqueItem) Annotations() *AnnotationSet { return &o.annotations }
func (o *OpaqueItem) Kind() DeclKind              { return DeclOpaque }

func (o *OpaqueItem) IsGeneric() bool {
	return o.genericParams.Len() > 0
}

func (o *OpaqueItem) RenameForConfig(cfg *config.Config) {
	o.exportName = cfg.Export.Rename(o.exportName)
}

func (o *OpaqueItem) ResolveDeclarationTypes(*DeclarationTypeResolver) {}

func (o *OpaqueItem) AddDependencies(*Library, *Dependencies) {}

func (o *OpaqueItem) AddMonomorphs(*Library, *Monomorphs) {}

func (o *OpaqueItem) InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs) {
	invariant(o.IsGeneric(), "%s is not generic", o.path)
	invariant(o.genericParams.Len() == len(args),
		"%s has %d params but is being instantiated with %d values",
		o.path, o.genericParams.Len(), len(args))
	if out.Contains(o.path, args) {
		return
	}
	out.enter(o.path)
	defer out.leave()

	mangled := ManglePath(o.path, args)
	mono := &OpaqueItem{
		path:          mangled,
		exportName:    lib.Config().Export.Rename(mangled.Name()),
		cfg:           o.cfg.Clone(),
		annotations:   o.annotations.Clone(),
		documentation: o.documentation.Clone(),
	}
	out.InsertOpaque(o, mono, args)
}

func (o *OpaqueItem) ManglePaths(*Monomorphs, diag.Reporter) {}

func (o *OpaqueItem) Write(cfg *config.Config, w *emit.SourceWriter) {
	o.documentation.Write(cfg, w)
	o.cfg.WriteBefore(cfg, w)
	if cfg.Language == config.LanguageC {
		if cfg.Style == config.StyleTag {
			w.Writef("struct %s;", o.exportName)
		} else {
			w.Writef("typedef struct %s %s;", o.exportName, o.exportName)
		}
	} else {
		w.Writef("struct %s;", o.exportName)
	}
	w.NewLine()
	o.cfg.WriteAfter(cfg, w)
}
