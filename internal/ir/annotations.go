package ir

// Annotation is one key/value pair of declaration metadata.
type Annotation struct {
	Key   string
	Value string
}

// AnnotationSet is ordered free-form metadata attached to a declaration.
// Order is preserved so output derived from annotations is deterministic.
type AnnotationSet struct {
	entries []Annotation
}

// NewAnnotationSet builds a set from the given entries.
func NewAnnotationSet(entries ...Annotation) AnnotationSet {
	return AnnotationSet{entries: entries}
}

// IsEmpty reports whether the set has no entries.
func (a *AnnotationSet) IsEmpty() bool {
	return len(a.entries) == 0
}

// Len returns the number of entries.
func (a *AnnotationSet) Len() int {
	return len(a.entries)
}

// Get returns the value for key.
func (a *AnnotationSet) Get(key string) (string, bool) {
	for _, e := range a.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set adds or replaces the value for key.
func (a *AnnotationSet) Set(key, value string) {
	for i := range a.entries {
		if a.entries[i].Key == key {
			a.entries[i].Value = value
			return
		}
	}
	a.entries = append(a.entries, Annotation{Key: key, Value: value})
}

// Entries returns the entries in insertion order.
// Do not modify the returned slice.
func (a *AnnotationSet) Entries() []Annotation {
	return a.entries
}

// Clone returns an independent copy of the set.
func (a *AnnotationSet) Clone() AnnotationSet {
	if len(a.entries) == 0 {
		return AnnotationSet{}
	}
	out := make([]Annotation, len(a.entries))
	copy(out, a.entries)
	return AnnotationSet{entries: out}
}

// Clear removes every entry.
func (a *AnnotationSet) Clear() {
	a.entries = nil
}

// AnnotationAccumulator collects annotation sets transferred from
// alias declarations, keyed by the root path of the aliased type.
// First writer wins: a root path can be claimed at most once. The
// accumulator is threaded explicitly through the transfer pass and
// owned by it; it is never ambient state.
type AnnotationAccumulator struct {
	order    []Path
	byTarget map[Path]*claimedAnnotations
}

type claimedAnnotations struct {
	from Path
	set  AnnotationSet
}

// NewAnnotationAccumulator creates an empty accumulator.
func NewAnnotationAccumulator() *AnnotationAccumulator {
	return &AnnotationAccumulator{byTarget: make(map[Path]*claimedAnnotations)}
}

// ClaimedBy returns the alias that already claimed a target path.
func (a *AnnotationAccumulator) ClaimedBy(target Path) (Path, bool) {
	if c, ok := a.byTarget[target]; ok {
		return c.from, true
	}
	return NoPath, false
}

// Claim records a transfer onto target. Returns false if the target
// was already claimed; the accumulator is left untouched in that case.
func (a *AnnotationAccumulator) Claim(target, from Path, set AnnotationSet) bool {
	if _, ok := a.byTarget[target]; ok {
		return false
	}
	a.byTarget[target] = &claimedAnnotations{from: from, set: set}
	a.order = append(a.order, target)
	return true
}

// Targets returns the claimed root paths in claim order.
func (a *AnnotationAccumulator) Targets() []Path {
	return a.order
}

// Get returns the annotation set claimed for a target.
func (a *AnnotationAccumulator) Get(target Path) (AnnotationSet, bool) {
	if c, ok := a.byTarget[target]; ok {
		return c.set, true
	}
	return AnnotationSet{}, false
}
