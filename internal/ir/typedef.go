package ir

import (
	"fmt"

	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// Typedef is a type alias exported as a C typedef or a C++ using
// declaration.
type Typedef struct {
	path          Path
	exportName    string
	genericParams GenericParams
	aliased       Type
	cfg           *Cfg
	annotations   AnnotationSet
	documentation Documentation
}

var _ Item = (*Typedef)(nil)

// NewTypedef builds an alias declaration. scopeCfg is the enclosing
// scope's predicate; the declaration's effective predicate is the
// conjunction of scopeCfg and ownCfg. Aliasing a zero-size type is a
// recoverable per-declaration failure: a C-family target cannot
// express an alias of nothing.
func NewTypedef(path Path, generics GenericParams, aliased Type, scopeCfg, ownCfg *Cfg, annotations AnnotationSet, doc Documentation) (*Typedef, error) {
	if aliased == nil || IsZeroSized(aliased) {
		return nil, &LoadError{
			Kind:   LoadDegenerateAlias,
			Path:   path,
			Reason: "cannot have a typedef of a zero sized type",
		}
	}
	return &Typedef{
		path:          path,
		exportName:    path.Name(),
		genericParams: generics,
		aliased:       aliased,
		cfg:           CfgJoin(scopeCfg, ownCfg),
		annotations:   annotations,
		documentation: doc,
	}, nil
}

func (t *Typedef) Path() Path                  { return t.path }
func (t *Typedef) ExportName() string          { return t.exportName }
func (t *Typedef) Cfg() *Cfg                   { return t.cfg }
func (t *Typedef) Annotations() *AnnotationSet { return &t.annotations }
func (t *Typedef) Kind() DeclKind              { return DeclTypedef }

// Aliased returns the aliased type expression.
func (t *Typedef) Aliased() Type { return t.aliased }

// IsGeneric reports whether the alias declares generic parameters.
func (t *Typedef) IsGeneric() bool {
	return t.genericParams.Len() > 0
}

// SimplifyStandardTypes canonicalizes size-named library spellings in
// the aliased type. Re-applying is a no-op.
func (t *Typedef) SimplifyStandardTypes() {
	t.aliased = simplifyStandardTypes(t.aliased)
}

// TransferAnnotations moves this alias's annotations onto the root
// declaration its aliased type refers to. The first alias to claim a
// root wins; a later conflicting transfer is dropped with a warning
// and the loser's annotations are cleared without transferring.
func (t *Typedef) TransferAnnotations(acc *AnnotationAccumulator, reporter diag.Reporter) {
	if t.annotations.IsEmpty() {
		return
	}
	root, ok := RootPath(t.aliased)
	if !ok {
		return
	}
	if first, claimed := acc.ClaimedBy(root); claimed {
		diag.Warn(reporter, diag.AnnTransferConflict, t.path.String(),
			fmt.Sprintf("multiple typedefs with annotations for %s; ignoring annotations from %s", root, t.path),
			fmt.Sprintf("first claimed by %s", first))
		t.annotations.Clear()
		return
	}
	acc.Claim(root, t.path, t.annotations.Clone())
	t.annotations.Clear()
}

func (t *Typedef) RenameForConfig(cfg *config.Config) {
	t.exportName = cfg.Export.Rename(t.exportName)
	renameTypeForConfig(t.aliased, &cfg.Export, t.genericParams)
}

func (t *Typedef) ResolveDeclarationTypes(r *DeclarationTypeResolver) {
	resolveTypeDeclarationTypes(t.aliased, r)
}

func (t *Typedef) AddDependencies(lib *Library, out *Dependencies) {
	addTypeDependencies(t.aliased, t.genericParams, lib, out)
}

// AddMonomorphs registers the instantiations a concrete alias's
// aliased type requires. A generic alias contributes nothing here: its
// concrete instances are produced only when something requests
// InstantiateMonomorph on it, and that trigger lives with whatever
// consumes the generic reference.
func (t *Typedef) AddMonomorphs(lib *Library, out *Monomorphs) {
	if t.IsGeneric() {
		return
	}
	addTypeMonomorphs(t.aliased, lib, out)
}

// InstantiateMonomorph builds the concrete alias for the given
// arguments: a mangled path, the aliased type with every placeholder
// substituted, and copied cfg, annotations and documentation. The
// specialized type may itself require further instantiations; those
// are registered before the new alias is inserted, so the registry
// ends up dependency-first. Insertion is idempotent.
func (t *Typedef) InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs) {
	invariant(t.IsGeneric(), "%s is not generic", t.path)
	invariant(t.genericParams.Len() == len(args),
		"%s has %d params but is being instantiated with %d values",
		t.path, t.genericParams.Len(), len(args))
	if out.Contains(t.path, args) {
		return
	}
	out.enter(t.path)
	defer out.leave()

	mappings := make(map[string]Type, len(args))
	for i, p := range t.genericParams {
		mappings[p] = args[i]
	}

	mangled := ManglePath(t.path, args)
	mono := &Typedef{
		path:          mangled,
		exportName:    lib.Config().Export.Rename(mangled.Name()),
		aliased:       Specialize(t.aliased, mappings),
		cfg:           t.cfg.Clone(),
		annotations:   t.annotations.Clone(),
		documentation: t.documentation.Clone(),
	}

	// Instantiate any monomorphs for generic paths the specialization
	// just created.
	mono.AddMonomorphs(lib, out)

	out.InsertTypedef(t, mono, args)
}

func (t *Typedef) ManglePaths(m *Monomorphs, reporter diag.Reporter) {
	mangleTypeRefs(t.aliased, m, reporter)
}

func (t *Typedef) Write(cfg *config.Config, w *emit.SourceWriter) {
	t.documentation.Write(cfg, w)
	t.cfg.WriteBefore(cfg, w)
	if cfg.Language == config.LanguageC {
		w.WriteString("typedef " + cDecl(t.aliased, t.exportName))
	} else {
		w.Writef("using %s = %s", t.exportName, typeSpelling(t.aliased))
	}
	w.WriteString(";")
	w.NewLine()
	t.cfg.WriteAfter(cfg, w)
}
