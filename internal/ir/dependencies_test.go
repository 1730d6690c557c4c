package ir

import "testing"

func mustStruct(t *testing.T, path string, generics GenericParams, fields []Field) *Struct {
	t.Helper()
	s, err := NewStruct(NewPath(path), generics, fields, nil, nil, AnnotationSet{}, Documentation{})
	if err != nil {
		t.Fatalf("failed to build struct %s: %v", path, err)
	}
	return s
}

func addAll(t *testing.T, lib *Library, items ...Item) {
	t.Helper()
	for _, item := range items {
		if err := lib.Add(item); err != nil {
			t.Fatalf("failed to add %s: %v", item.Path(), err)
		}
	}
}

func pathsEqual(got []Path, want ...Path) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDependencyClosureIsTransitive(t *testing.T) {
	lib := NewLibrary(nil, nil)
	addAll(t, lib,
		mustStruct(t, "Baz", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt8}}}),
		mustStruct(t, "Bar", nil, []Field{{Name: "baz", Ty: NewRef(NewPath("Baz"))}}),
		mustStruct(t, "Foo", nil, []Field{{Name: "bar", Ty: NewRef(NewPath("Bar"))}}),
	)

	deps := NewDependencies()
	deps.Add(NewPath("Foo"), lib)

	if !pathsEqual(deps.Order(), NewPath("Baz"), NewPath("Bar"), NewPath("Foo")) {
		t.Fatalf("unexpected closure order %v", deps.Order())
	}
}

func TestDependencyClosureExcludesGenericPlaceholders(t *testing.T) {
	lib := NewLibrary(nil, nil)
	addAll(t, lib,
		mustStruct(t, "Payload", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt8}}}),
		mustStruct(t, "Box", GenericParams{"T"}, []Field{
			{Name: "value", Ty: &Ptr{Pointee: &GenericParam{Name: "T"}}},
			{Name: "extra", Ty: NewRef(NewPath("Payload"))},
			// A bare reference spelled like the parameter must also be skipped.
			{Name: "tag", Ty: NewRef(NewPath("T"))},
		}),
	)

	deps := NewDependencies()
	deps.Add(NewPath("Box"), lib)

	if !pathsEqual(deps.Order(), NewPath("Payload"), NewPath("Box")) {
		t.Fatalf("generic placeholders leaked into the closure: %v", deps.Order())
	}
}

func TestDependencyClosureToleratesMutualRecursion(t *testing.T) {
	lib := NewLibrary(nil, nil)
	addAll(t, lib,
		mustStruct(t, "A", nil, []Field{{Name: "b", Ty: &Ptr{Pointee: NewRef(NewPath("B"))}}}),
		mustStruct(t, "B", nil, []Field{{Name: "a", Ty: &Ptr{Pointee: NewRef(NewPath("A"))}}}),
	)

	deps := NewDependencies()
	deps.Add(NewPath("A"), lib)

	if deps.Len() != 2 {
		t.Fatalf("mutual recursion must yield each declaration once, got %v", deps.Order())
	}
	if !deps.Contains(NewPath("A")) || !deps.Contains(NewPath("B")) {
		t.Fatalf("closure lost a mutually recursive member: %v", deps.Order())
	}
}

func TestDependencyClosureIgnoresForeignPaths(t *testing.T) {
	lib := NewLibrary(nil, nil)
	addAll(t, lib,
		mustStruct(t, "Holder", nil, []Field{{Name: "h", Ty: NewRef(NewPath("uv_timer_t"))}}),
	)

	deps := NewDependencies()
	deps.Add(NewPath("Holder"), lib)

	if !pathsEqual(deps.Order(), NewPath("Holder")) {
		t.Fatalf("foreign paths must not join the closure: %v", deps.Order())
	}
}
