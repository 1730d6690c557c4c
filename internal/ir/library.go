package ir

import (
	"fmt"

	"bindery/internal/config"
	"bindery/internal/diag"
)

// Library owns every declaration of one generation run. It is the
// sole source of truth handed read-only into the dependency and
// monomorphization passes; nothing survives the run.
type Library struct {
	config   *config.Config
	reporter diag.Reporter
	items    map[Path]Item
	order    []Path
}

// NewLibrary creates an empty library for one run.
func NewLibrary(cfg *config.Config, reporter diag.Reporter) *Library {
	if cfg == nil {
		cfg = config.Default()
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Library{
		config:   cfg,
		reporter: reporter,
		items:    make(map[Path]Item),
	}
}

// Config returns the run configuration.
func (l *Library) Config() *config.Config {
	return l.config
}

// Reporter returns the run's diagnostic sink.
func (l *Library) Reporter() diag.Reporter {
	return l.reporter
}

// Add registers a declaration. Two declarations with the same path
// are a recoverable load failure.
func (l *Library) Add(item Item) error {
	path := item.Path()
	if _, ok := l.items[path]; ok {
		return &LoadError{
			Kind:   LoadDuplicatePath,
			Path:   path,
			Reason: "a declaration with this path is already loaded",
		}
	}
	l.items[path] = item
	l.order = append(l.order, path)
	return nil
}

// Item looks a declaration up by path.
func (l *Library) Item(path Path) (Item, bool) {
	item, ok := l.items[path]
	return item, ok
}

// Len returns the number of loaded declarations.
func (l *Library) Len() int {
	return len(l.order)
}

// Paths returns every loaded path in load order.
// Do not modify the returned slice.
func (l *Library) Paths() []Path {
	return l.order
}

// Generate runs the pipeline over the loaded declarations in its
// fixed phase order and returns the finalized emission set: transfer
// annotations, simplify standard types, rename for config, resolve
// declaration types, build the dependency closure over the export
// roots, monomorphize, mangle paths.
func (l *Library) Generate() (*Bindings, error) {
	l.transferAnnotations()

	if l.config.SimplifyStandardTypes {
		for _, path := range l.order {
			if s, ok := l.items[path].(simplifier); ok {
				s.SimplifyStandardTypes()
			}
		}
	}

	for _, path := range l.order {
		l.items[path].RenameForConfig(l.config)
	}

	resolver := NewDeclarationTypeResolver(l)
	for _, path := range l.order {
		l.items[path].ResolveDeclarationTypes(resolver)
	}

	deps := NewDependencies()
	for _, root := range l.rootPaths() {
		if _, ok := l.items[root]; !ok {
			diag.Warn(l.reporter, diag.GenMissingRoot, root.String(),
				"export root is not a loaded declaration")
			continue
		}
		deps.Add(root, l)
	}

	monomorphs := NewMonomorphs(0)
	for _, path := range deps.Order() {
		l.items[path].AddMonomorphs(l, monomorphs)
	}

	for _, path := range deps.Order() {
		if item := l.items[path]; !item.IsGeneric() {
			item.ManglePaths(monomorphs, l.reporter)
		}
	}
	for _, entry := range monomorphs.Entries() {
		entry.Item.ManglePaths(monomorphs, l.reporter)
	}

	items := make([]Item, 0, deps.Len()+monomorphs.Len())
	for _, path := range deps.Order() {
		item := l.items[path]
		if item.IsGeneric() {
			// Generic declarations are never emitted directly; their
			// concrete instances stand in at the generic's position.
			for _, entry := range monomorphs.OfGeneric(path) {
				items = append(items, entry.Item)
			}
			continue
		}
		items = append(items, item)
	}
	for _, item := range items {
		invariant(!item.IsGeneric(), "%s reached emission while still generic", item.Path())
	}

	return &Bindings{config: l.config, items: items}, nil
}

// rootPaths resolves the configured export root set; an empty
// configuration exports every loaded declaration.
func (l *Library) rootPaths() []Path {
	if len(l.config.Export.Include) == 0 {
		return l.order
	}
	roots := make([]Path, 0, len(l.config.Export.Include))
	for _, name := range l.config.Export.Include {
		roots = append(roots, NewPath(name))
	}
	return roots
}

// transferAnnotations moves alias annotations onto the declarations
// their aliased types refer to, first writer wins. The accumulator is
// created here and dies here.
func (l *Library) transferAnnotations() {
	acc := NewAnnotationAccumulator()
	for _, path := range l.order {
		if td, ok := l.items[path].(*Typedef); ok {
			td.TransferAnnotations(acc, l.reporter)
		}
	}
	for _, target := range acc.Targets() {
		set, _ := acc.Get(target)
		item, ok := l.items[target]
		if !ok {
			diag.Warn(l.reporter, diag.AnnTargetMissing, target.String(),
				"annotations were transferred to a declaration that is not loaded")
			continue
		}
		if !item.Annotations().IsEmpty() {
			diag.Warn(l.reporter, diag.AnnTargetOccupied, target.String(),
				fmt.Sprintf("%s already has annotations of its own; transferred annotations are dropped", target))
			continue
		}
		*item.Annotations() = set
	}
}
