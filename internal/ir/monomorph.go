package ir

// defaultMaxInstantiationDepth bounds recursive instantiation. A
// well-formed input never comes close; an infinitely self-referential
// generic definition hits the bound and fails loudly instead of
// exhausting the stack.
const defaultMaxInstantiationDepth = 64

// MonomorphEntry is one recorded instantiation of a generic
// declaration.
type MonomorphEntry struct {
	// GenericPath is the path of the originating generic declaration.
	GenericPath Path
	// Args are the concrete arguments of the instantiation.
	Args []Type
	// Item is the concrete declaration built for the instantiation.
	Item Item
}

type monoKey struct {
	path Path
	args string
}

// Monomorphs is the deduplicating, insertion-ordered store of generic
// instantiations. It is the single authority deciding whether a
// (generic path, concrete args) pair has already been built; iteration
// follows insertion order so output stays deterministic.
type Monomorphs struct {
	entries   []*MonomorphEntry
	byKey     map[monoKey]*MonomorphEntry
	byGeneric map[Path][]*MonomorphEntry

	depth    int
	maxDepth int
}

// NewMonomorphs creates an empty registry. maxDepth <= 0 selects the
// default instantiation depth bound.
func NewMonomorphs(maxDepth int) *Monomorphs {
	if maxDepth <= 0 {
		maxDepth = defaultMaxInstantiationDepth
	}
	return &Monomorphs{
		byKey:     make(map[monoKey]*MonomorphEntry),
		byGeneric: make(map[Path][]*MonomorphEntry),
		maxDepth:  maxDepth,
	}
}

func (m *Monomorphs) key(path Path, args []Type) monoKey {
	return monoKey{path: path, args: mangleArgsKey(args)}
}

// Contains reports whether the instantiation is already recorded.
func (m *Monomorphs) Contains(path Path, args []Type) bool {
	_, ok := m.byKey[m.key(path, args)]
	return ok
}

// Entry returns the recorded instantiation for (path, args).
func (m *Monomorphs) Entry(path Path, args []Type) (*MonomorphEntry, bool) {
	e, ok := m.byKey[m.key(path, args)]
	return e, ok
}

// OfGeneric returns the instantiations of one generic declaration, in
// insertion order.
func (m *Monomorphs) OfGeneric(path Path) []*MonomorphEntry {
	return m.byGeneric[path]
}

// Entries returns every instantiation in insertion order.
// Do not modify the returned slice.
func (m *Monomorphs) Entries() []*MonomorphEntry {
	return m.entries
}

// Len returns the number of recorded instantiations.
func (m *Monomorphs) Len() int {
	return len(m.entries)
}

// InsertTypedef records a typedef instantiation. Re-insertion under an
// identical key is a no-op returning false.
func (m *Monomorphs) InsertTypedef(generic *Typedef, mono *Typedef, args []Type) bool {
	return m.insert(generic.path, mono, args)
}

// InsertStruct records a struct instantiation.
func (m *Monomorphs) InsertStruct(generic *Struct, mono *Struct, args []Type) bool {
	return m.insert(generic.path, mono, args)
}

// InsertUnion records a union instantiation.
func (m *Monomorphs) InsertUnion(generic *Union, mono *Union, args []Type) bool {
	return m.insert(generic.path, mono, args)
}

// InsertEnum records an enum instantiation.
func (m *Monomorphs) InsertEnum(generic *Enum, mono *Enum, args []Type) bool {
	return m.insert(generic.path, mono, args)
}

// InsertOpaque records an opaque-type instantiation.
func (m *Monomorphs) InsertOpaque(generic *OpaqueItem, mono *OpaqueItem, args []Type) bool {
	return m.insert(generic.path, mono, args)
}

func (m *Monomorphs) insert(genericPath Path, mono Item, args []Type) bool {
	key := m.key(genericPath, args)
	if _, ok := m.byKey[key]; ok {
		return false
	}
	cloned := make([]Type, len(args))
	for i, a := range args {
		cloned[i] = CloneType(a)
	}
	entry := &MonomorphEntry{GenericPath: genericPath, Args: cloned, Item: mono}
	m.byKey[key] = entry
	m.byGeneric[genericPath] = append(m.byGeneric[genericPath], entry)
	m.entries = append(m.entries, entry)
	return true
}

// enter guards one level of recursive instantiation.
func (m *Monomorphs) enter(path Path) {
	m.depth++
	invariant(m.depth <= m.maxDepth,
		"instantiation of %s exceeds the recursion bound of %d; the generic definition is infinitely self-referential",
		path, m.maxDepth)
}

// leave unwinds one level of recursive instantiation.
func (m *Monomorphs) leave() {
	m.depth--
}
