package ir

import (
	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// Static is an exported global, emitted as an extern declaration.
type Static struct {
	path          Path
	exportName    string
	ty            Type
	cfg           *Cfg
	annotations   AnnotationSet
	documentation Documentation
}

var _ Item = (*Static)(nil)

// NewStatic builds a global declaration.
func NewStatic(path Path, ty Type, scopeCfg, ownCfg *Cfg, annotations AnnotationSet, doc Documentation) (*Static, error) {
	if ty == nil || IsZeroSized(ty) {
		return nil, &LoadError{
			Kind:   LoadMalformedDecl,
			Path:   path,
			Reason: "static has a zero sized type",
		}
	}
	return &Static{
		path:          path,
		exportName:    path.Name(),
		ty:            ty,
		cfg:           CfgJoin(scopeCfg, ownCfg),
		annotations:   annotations,
		documentation: doc,
	}, nil
}

func (s *Static) Path() Path                  { return s.path }
func (s *Static) ExportName() string          { return s.exportName }
func (s *Static) Cfg() *Cfg                   { return s.cfg }
func (s *Static) Annotations() *AnnotationSet { return &s.annotations }
func (s *Static) Kind() DeclKind              { return DeclStatic }

func (s *Static) IsGeneric() bool { return false }

func (s *Static) SimplifyStandardTypes() {
	s.ty = simplifyStandardTypes(s.ty)
}

func (s *Static) RenameForConfig(cfg *config.Config) {
	s.exportName = cfg.Export.Rename(s.exportName)
	renameTypeForConfig(s.ty, &cfg.Export, nil)
}

func (s *Static) ResolveDeclarationTypes(r *DeclarationTypeResolver) {
	resolveTypeDeclarationTypes(s.ty, r)
}

func (s *Static) AddDependencies(lib *Library, out *Dependencies) {
	addTypeDependencies(s.ty, nil, lib, out)
}

func (s *Static) AddMonomorphs(lib *Library, out *Monomorphs) {
	addTypeMonomorphs(s.ty, lib, out)
}

func (s *Static) InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs) {
	invariant(false, "%s is not generic", s.path)
}

func (s *Static) ManglePaths(m *Monomorphs, reporter diag.Reporter) {
	mangleTypeRefs(s.ty, m, reporter)
}

func (s *Static) Write(cfg *config.Config, w *emit.SourceWriter) {
	s.documentation.Write(cfg, w)
	s.cfg.WriteBefore(cfg, w)
	w.WriteString("extern " + cDecl(s.ty, s.exportName) + ";")
	w.NewLine()
	s.cfg.WriteAfter(cfg, w)
}
