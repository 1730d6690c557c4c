package ir

import (
	"strings"

	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// Function is an exported function signature. Generic functions are
// not exportable across the language boundary; a signature reaches
// this pipeline only once it is fully concrete, though it may still
// mention generic types that need instantiating.
type Function struct {
	path          Path
	exportName    string
	ret           Type
	args          []FuncArg
	cfg           *Cfg
	annotations   AnnotationSet
	documentation Documentation
}

var _ Item = (*Function)(nil)

// NewFunction builds a function declaration.
func NewFunction(path Path, ret Type, args []FuncArg, scopeCfg, ownCfg *Cfg, annotations AnnotationSet, doc Documentation) (*Function, error) {
	if ret == nil {
		ret = &Primitive{Kind: PrimVoid}
	}
	for _, a := range args {
		if a.Ty == nil || IsZeroSized(a.Ty) {
			return nil, &LoadError{
				Kind:   LoadMalformedDecl,
				Path:   path,
				Reason: "argument " + a.Name + " has a zero sized type",
			}
		}
	}
	return &Function{
		path:          path,
		exportName:    path.Name(),
		ret:           ret,
		args:          args,
		cfg:           CfgJoin(scopeCfg, ownCfg),
		annotations:   annotations,
		documentation: doc,
	}, nil
}

func (f *Function) Path() Path                  { return f.path }
func (f *Function) ExportName() string          { return f.exportName }
func (f *Function) Cfg() *Cfg                   { return f.cfg }
func (f *Function) Annotations() *AnnotationSet { return &f.annotations }
func (f *Function) Kind() DeclKind              { return DeclFunction }

func (f *Function) IsGeneric() bool { return false }

func (f *Function) SimplifyStandardTypes() {
	f.ret = simplifyStandardTypes(f.ret)
	for i := range f.args {
		f.args[i].Ty = simplifyStandardTypes(f.args[i].Ty)
	}
}

func (f *Function) RenameForConfig(cfg *config.Config) {
	f.exportName = cfg.Export.Rename(f.exportName)
	renameTypeForConfig(f.ret, &cfg.Export, nil)
	for i := range f.args {
		renameTypeForConfig(f.args[i].Ty, &cfg.Export, nil)
	}
}

func (f *Function) ResolveDeclarationTypes(r *DeclarationTypeResolver) {
	resolveTypeDeclarationTypes(f.ret, r)
	for i := range f.args {
		resolveTypeDeclarationTypes(f.args[i].Ty, r)
	}
}

func (f *Function) AddDependencies(lib *Library, out *Dependencies) {
	addTypeDependencies(f.ret, nil, lib, out)
	for i := range f.args {
		addTypeDependencies(f.args[i].Ty, nil, lib, out)
	}
}

func (f *Function) AddMonomorphs(lib *Library, out *Monomorphs) {
	addTypeMonomorphs(f.ret, lib, out)
	for i := range f.args {
		addTypeMonomorphs(f.args[i].Ty, lib, out)
	}
}

func (f *Function) InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs) {
	invariant(false, "%s is not generic", f.path)
}

func (f *Function) ManglePaths(m *Monomorphs, reporter diag.Reporter) {
	mangleTypeRefs(f.ret, m, reporter)
	for i := range f.args {
		mangleTypeRefs(f.args[i].Ty, m, reporter)
	}
}

func (f *Function) Write(cfg *config.Config, w *emit.SourceWriter) {
	f.documentation.Write(cfg, w)
	f.cfg.WriteBefore(cfg, w)
	// The signature is a declarator of the return type: the name and
	// argument list sit where the declared name would, so a function
	// pointer return wraps them.
	left, right := declParts(f.ret)
	sig := f.exportName + "(" + funcArgList(f.args) + ")" + right
	if strings.HasSuffix(left, "*") || strings.HasSuffix(left, "(") {
		w.WriteString(left + sig + ";")
	} else {
		w.WriteString(left + " " + sig + ";")
	}
	w.NewLine()
	f.cfg.WriteAfter(cfg, w)
}
