package ir

// Dependencies is the ordered set of declarations reachable from the
// export roots. It owns no items, only paths. The visited set makes
// the traversal tolerant of mutually recursive type references.
type Dependencies struct {
	order    []Path
	seen     map[Path]bool
	included map[Path]bool
}

// NewDependencies creates an empty closure.
func NewDependencies() *Dependencies {
	return &Dependencies{
		seen:     make(map[Path]bool),
		included: make(map[Path]bool),
	}
}

// Add pulls a declaration and, transitively, everything it references
// into the closure. Paths the library does not own are foreign and are
// not part of the closure. A declaration's own dependencies are
// recorded before the declaration itself, so acyclic inputs come out
// definition-before-use.
func (d *Dependencies) Add(path Path, lib *Library) {
	if d.seen[path] {
		return
	}
	d.seen[path] = true
	item, ok := lib.Item(path)
	if !ok {
		return
	}
	item.AddDependencies(lib, d)
	d.order = append(d.order, path)
	d.included[path] = true
}

// Contains reports whether a declaration is part of the closure.
func (d *Dependencies) Contains(path Path) bool {
	return d.included[path]
}

// Order returns the closure in emission order.
// Do not modify the returned slice.
func (d *Dependencies) Order() []Path {
	return d.order
}

// Len returns the number of declarations in the closure.
func (d *Dependencies) Len() int {
	return len(d.order)
}
