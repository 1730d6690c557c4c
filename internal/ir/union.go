package ir

import (
	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// Union is an untagged union declaration with named alternatives.
type Union struct {
	path          Path
	exportName    string
	genericParams GenericParams
	fields        []Field
	cfg           *Cfg
	annotations   AnnotationSet
	documentation Documentation
}

var _ Item = (*Union)(nil)

// NewUnion builds a union declaration.
func NewUnion(path Path, generics GenericParams, fields []Field, scopeCfg, ownCfg *Cfg, annotations AnnotationSet, doc Documentation) (*Union, error) {
	if err := checkFields(path, fields); err != nil {
		return nil, err
	}
	return &Union{
		path:          path,
		exportName:    path.Name(),
		genericParams: generics,
		fields:        fields,
		cfg:           CfgJoin(scopeCfg, ownCfg),
		annotations:   annotations,
		documentation: doc,
	}, nil
}

func (u *Union) Path() Path                  { return u.path }
func (u *Union) ExportName() string          { return u.exportName }
func (u *Union) Cfg() *Cfg                   { return u.cfg }
func (u *Union) Annotations() *AnnotationSet { return &u.annotations }
func (u *Union) Kind() DeclKind              { return DeclUnion }

// Fields returns the union's alternatives.
func (u *Union) Fields() []Field { return u.fields }

func (u *Union) IsGeneric() bool {
	return u.genericParams.Len() > 0
}

func (u *Union) SimplifyStandardTypes() {
	simplifyFields(u.fields)
}

func (u *Union) RenameForConfig(cfg *config.Config) {
	u.exportName = cfg.Export.Rename(u.exportName)
	renameFields(u.fields, &cfg.Export, u.genericParams)
}

func (u *Union) ResolveDeclarationTypes(r *DeclarationTypeResolver) {
	resolveFields(u.fields, r)
}

func (u *Union) AddDependencies(lib *Library, out *Dependencies) {
	addFieldDependencies(u.fields, u.genericParams, lib, out)
}

func (u *Union) AddMonomorphs(lib *Library, out *Monomorphs) {
	if u.IsGeneric() {
		return
	}
	addFieldMonomorphs(u.fields, lib, out)
}

func (u *Union) InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs) {
	invariant(u.IsGeneric(), "%s is not generic", u.path)
	invariant(u.genericParams.Len() == len(args),
		"%s has %d params but is being instantiated with %d values",
		u.path, u.genericParams.Len(), len(args))
	if out.Contains(u.path, args) {
		return
	}
	out.enter(u.path)
	defer out.leave()

	mangled := ManglePath(u.path, args)
	mono := &Union{
		path:          mangled,
		exportName:    lib.Config().Export.Rename(mangled.Name()),
		fields:        specializeFields(u.fields, u.genericParams, args),
		cfg:           u.cfg.Clone(),
		annotations:   u.annotations.Clone(),
		documentation: u.documentation.Clone(),
	}
	mono.AddMonomorphs(lib, out)
	out.InsertUnion(u, mono, args)
}

func (u *Union) ManglePaths(m *Monomorphs, reporter diag.Reporter) {
	mangleFields(u.fields, m, reporter)
}

func (u *Union) Write(cfg *config.Config, w *emit.SourceWriter) {
	u.documentation.Write(cfg, w)
	u.cfg.WriteBefore(cfg, w)
	if cfg.Language == config.LanguageC {
		switch cfg.Style {
		case config.StyleTag:
			w.WriteLine("union " + u.exportName + " {")
			writeFields(u.fields, w)
			w.WriteLine("};")
		case config.StyleBoth:
			w.WriteLine("typedef union " + u.exportName + " {")
			writeFields(u.fields, w)
			w.WriteLine("} " + u.exportName + ";")
		default:
			w.WriteLine("typedef union {")
			writeFields(u.fields, w)
			w.WriteLine("} " + u.exportName + ";")
		}
	} else {
		w.WriteLine("union " + u.exportName + " {")
		writeFields(u.fields, w)
		w.WriteLine("};")
	}
	u.cfg.WriteAfter(cfg, w)
}
