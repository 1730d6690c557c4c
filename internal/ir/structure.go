package ir

import (
	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// Field is one named member of a struct or union.
type Field struct {
	Name string
	Ty   Type
}

// Struct is a record declaration with named fields.
type Struct struct {
	path          Path
	exportName    string
	genericParams GenericParams
	fields        []Field
	cfg           *Cfg
	annotations   AnnotationSet
	documentation Documentation
}

var _ Item = (*Struct)(nil)

// NewStruct builds a struct declaration. Zero-sized field types are a
// recoverable per-declaration failure.
func NewStruct(path Path, generics GenericParams, fields []Field, scopeCfg, ownCfg *Cfg, annotations AnnotationSet, doc Documentation) (*Struct, error) {
	if err := checkFields(path, fields); err != nil {
		return nil, err
	}
	return &Struct{
		path:          path,
		exportName:    path.Name(),
		genericParams: generics,
		fields:        fields,
		cfg:           CfgJoin(scopeCfg, ownCfg),
		annotations:   annotations,
		documentation: doc,
	}, nil
}

func checkFields(path Path, fields []Field) error {
	for _, f := range fields {
		if f.Ty == nil || IsZeroSized(f.Ty) {
			return &LoadError{
				Kind:   LoadMalformedDecl,
				Path:   path,
				Reason: "field " + f.Name + " has a zero sized type",
			}
		}
	}
	return nil
}

func (s *Struct) Path() Path                  { return s.path }
func (s *Struct) ExportName() string          { return s.exportName }
func (s *Struct) Cfg() *Cfg                   { return s.cfg }
func (s *Struct) Annotations() *AnnotationSet { return &s.annotations }
func (s *Struct) Kind() DeclKind              { return DeclStruct }

// Fields returns the struct's members.
func (s *Struct) Fields() []Field { return s.fields }

func (s *Struct) IsGeneric() bool {
	return s.genericParams.Len() > 0
}

func (s *Struct) SimplifyStandardTypes() {
	simplifyFields(s.fields)
}

func (s *Struct) RenameForConfig(cfg *config.Config) {
	s.exportName = cfg.Export.Rename(s.exportName)
	renameFields(s.fields, &cfg.Export, s.genericParams)
}

func (s *Struct) ResolveDeclarationTypes(r *DeclarationTypeResolver) {
	resolveFields(s.fields, r)
}

func (s *Struct) AddDependencies(lib *Library, out *Dependencies) {
	addFieldDependencies(s.fields, s.genericParams, lib, out)
}

func (s *Struct) AddMonomorphs(lib *Library, out *Monomorphs) {
	if s.IsGeneric() {
		return
	}
	addFieldMonomorphs(s.fields, lib, out)
}

func (s *Struct) InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs) {
	invariant(s.IsGeneric(), "%s is not generic", s.path)
	invariant(s.genericParams.Len() == len(args),
		"%s has %d params but is being instantiated with %d values",
		s.path, s.genericParams.Len(), len(args))
	if out.Contains(s.path, args) {
		return
	}
	out.enter(s.path)
	defer out.leave()

	mangled := ManglePath(s.path, args)
	mono := &Struct{
		path:          mangled,
		exportName:    lib.Config().Export.Rename(mangled.Name()),
		fields:        specializeFields(s.fields, s.genericParams, args),
		cfg:           s.cfg.Clone(),
		annotations:   s.annotations.Clone(),
		documentation: s.documentation.Clone(),
	}
	mono.AddMonomorphs(lib, out)
	out.InsertStruct(s, mono, args)
}

func (s *Struct) ManglePaths(m *Monomorphs, reporter diag.Reporter) {
	mangleFields(s.fields, m, reporter)
}

func (s *Struct) Write(cfg *config.Config, w *emit.SourceWriter) {
	s.documentation.Write(cfg, w)
	s.cfg.WriteBefore(cfg, w)
	if cfg.Language == config.LanguageC {
		switch cfg.Style {
		case config.StyleTag:
			w.WriteLine("struct " + s.exportName + " {")
			writeFields(s.fields, w)
			w.WriteLine("};")
		case config.StyleBoth:
			w.WriteLine("typedef struct " + s.exportName + " {")
			writeFields(s.fields, w)
			w.WriteLine("} " + s.exportName + ";")
		default:
			w.WriteLine("typedef struct {")
			writeFields(s.fields, w)
			w.WriteLine("} " + s.exportName + ";")
		}
	} else {
		w.WriteLine("struct " + s.exportName + " {")
		writeFields(s.fields, w)
		w.WriteLine("};")
	}
	s.cfg.WriteAfter(cfg, w)
}

// Field helpers shared between Struct and Union.

func simplifyFields(fields []Field) {
	for i := range fields {
		fields[i].Ty = simplifyStandardTypes(fields[i].Ty)
	}
}

func renameFields(fields []Field, export *config.ExportConfig, generics GenericParams) {
	for i := range fields {
		renameTypeForConfig(fields[i].Ty, export, generics)
	}
}

func resolveFields(fields []Field, r *DeclarationTypeResolver) {
	for i := range fields {
		resolveTypeDeclarationTypes(fields[i].Ty, r)
	}
}

func addFieldDependencies(fields []Field, generics GenericParams, lib *Library, out *Dependencies) {
	for i := range fields {
		addTypeDependencies(fields[i].Ty, generics, lib, out)
	}
}

func addFieldMonomorphs(fields []Field, lib *Library, out *Monomorphs) {
	for i := range fields {
		addTypeMonomorphs(fields[i].Ty, lib, out)
	}
}

func specializeFields(fields []Field, generics GenericParams, args []Type) []Field {
	mappings := make(map[string]Type, len(args))
	for i, p := range generics {
		mappings[p] = args[i]
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Name: f.Name, Ty: Specialize(f.Ty, mappings)}
	}
	return out
}

func mangleFields(fields []Field, m *Monomorphs, reporter diag.Reporter) {
	for i := range fields {
		mangleTypeRefs(fields[i].Ty, m, reporter)
	}
}

func writeFields(fields []Field, w *emit.SourceWriter) {
	w.PushIndent()
	for _, f := range fields {
		w.WriteLine(cDecl(f.Ty, f.Name) + ";")
	}
	w.PopIndent()
}
