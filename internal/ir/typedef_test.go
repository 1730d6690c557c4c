package ir

import (
	"errors"
	"testing"

	"bindery/internal/diag"
)

func mustTypedef(t *testing.T, path string, generics GenericParams, aliased Type) *Typedef {
	t.Helper()
	td, err := NewTypedef(NewPath(path), generics, aliased, nil, nil, AnnotationSet{}, Documentation{})
	if err != nil {
		t.Fatalf("failed to build typedef %s: %v", path, err)
	}
	return td
}

func TestNewTypedefRejectsZeroSizedAlias(t *testing.T) {
	_, err := NewTypedef(NewPath("Nothing"), nil, &Primitive{Kind: PrimVoid}, nil, nil, AnnotationSet{}, Documentation{})
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected a LoadError, got %v", err)
	}
	if loadErr.Kind != LoadDegenerateAlias {
		t.Fatalf("expected degenerate-alias kind, got %s", loadErr.Kind)
	}
}

func TestNewTypedefAcceptsWellFormedTypes(t *testing.T) {
	ty := &FuncPtr{
		Ret:  &Ptr{Pointee: NewRef(NewPath("Bar"))},
		Args: []FuncArg{{Name: "n", Ty: &Primitive{Kind: PrimUInt32}}},
	}
	td := mustTypedef(t, "Callback", nil, ty)
	if td.Aliased().String() != ty.String() {
		t.Fatalf("load must not lose structure: %q vs %q", td.Aliased().String(), ty.String())
	}
}

func TestInstantiateMonomorphArityMismatchPanics(t *testing.T) {
	td := mustTypedef(t, "Vec", GenericParams{"T"}, &Ptr{Pointee: &GenericParam{Name: "T"}})
	lib := NewLibrary(nil, nil)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic")
		} else if _, ok := r.(*InvariantViolation); !ok {
			t.Fatalf("expected InvariantViolation, got %v", r)
		}
	}()
	td.InstantiateMonomorph([]Type{&Primitive{Kind: PrimUInt8}, &Primitive{Kind: PrimUInt8}}, lib, NewMonomorphs(0))
}

func TestInstantiateMonomorphOnConcreteAliasPanics(t *testing.T) {
	td := mustTypedef(t, "Plain", nil, &Primitive{Kind: PrimUInt8})
	lib := NewLibrary(nil, nil)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic")
		} else if _, ok := r.(*InvariantViolation); !ok {
			t.Fatalf("expected InvariantViolation, got %v", r)
		}
	}()
	td.InstantiateMonomorph([]Type{&Primitive{Kind: PrimUInt8}}, lib, NewMonomorphs(0))
}

func TestInstantiateMonomorphIsMemoized(t *testing.T) {
	td := mustTypedef(t, "Vec", GenericParams{"T"}, &Ptr{Pointee: &GenericParam{Name: "T"}})
	lib := NewLibrary(nil, nil)
	monomorphs := NewMonomorphs(0)
	args := []Type{NewRef(NewPath("Bar"))}

	td.InstantiateMonomorph(args, lib, monomorphs)
	td.InstantiateMonomorph(args, lib, monomorphs)

	if monomorphs.Len() != 1 {
		t.Fatalf("expected a single registry entry, got %d", monomorphs.Len())
	}
	entry, ok := monomorphs.Entry(NewPath("Vec"), args)
	if !ok {
		t.Fatalf("instantiation was not recorded")
	}
	if entry.Item.Path() != NewPath("Vec_Bar") {
		t.Fatalf("unexpected mangled path %s", entry.Item.Path())
	}
	if entry.Item.IsGeneric() {
		t.Fatalf("a monomorph must be concrete")
	}
}

func TestInstantiateMonomorphNameIsOrderIndependent(t *testing.T) {
	argsA := []Type{&Primitive{Kind: PrimUInt8}}
	argsB := []Type{NewRef(NewPath("Bar"))}

	run := func(first, second []Type) Path {
		td := mustTypedef(t, "Vec", GenericParams{"T"}, &Ptr{Pointee: &GenericParam{Name: "T"}})
		lib := NewLibrary(nil, nil)
		monomorphs := NewMonomorphs(0)
		td.InstantiateMonomorph(first, lib, monomorphs)
		td.InstantiateMonomorph(second, lib, monomorphs)
		entry, ok := monomorphs.Entry(NewPath("Vec"), argsA)
		if !ok {
			t.Fatalf("missing entry for Vec<u8>")
		}
		return entry.Item.Path()
	}

	if run(argsA, argsB) != run(argsB, argsA) {
		t.Fatalf("mangled name must not depend on instantiation order")
	}
}

func TestTransferAnnotationsFirstWriterWins(t *testing.T) {
	first, err := NewTypedef(NewPath("First"), nil, NewRef(NewPath("Root")), nil, nil,
		NewAnnotationSet(Annotation{Key: "deref", Value: "true"}), Documentation{})
	if err != nil {
		t.Fatalf("failed to build alias: %v", err)
	}
	second, err := NewTypedef(NewPath("Second"), nil, &Ptr{Pointee: NewRef(NewPath("Root"))}, nil, nil,
		NewAnnotationSet(Annotation{Key: "other", Value: "1"}), Documentation{})
	if err != nil {
		t.Fatalf("failed to build alias: %v", err)
	}

	reporter := diag.NewBagReporter(10)
	acc := NewAnnotationAccumulator()
	first.TransferAnnotations(acc, reporter)
	second.TransferAnnotations(acc, reporter)

	set, ok := acc.Get(NewPath("Root"))
	if !ok {
		t.Fatalf("root was never claimed")
	}
	if v, _ := set.Get("deref"); v != "true" {
		t.Fatalf("root must hold the first alias's annotations, got %v", set.Entries())
	}
	if !first.Annotations().IsEmpty() {
		t.Fatalf("the winning alias's own set must be cleared")
	}
	if !second.Annotations().IsEmpty() {
		t.Fatalf("the losing alias's own set must be cleared too")
	}
	if reporter.Bag.Len() != 1 {
		t.Fatalf("expected exactly one conflict diagnostic, got %d", reporter.Bag.Len())
	}
	if d := reporter.Bag.Items()[0]; d.Code != diag.AnnTransferConflict || d.Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestTransferAnnotationsWithoutAnnotationsIsNoOp(t *testing.T) {
	td := mustTypedef(t, "Quiet", nil, NewRef(NewPath("Root")))
	acc := NewAnnotationAccumulator()
	td.TransferAnnotations(acc, diag.NopReporter{})
	if len(acc.Targets()) != 0 {
		t.Fatalf("an alias with no annotations must not claim anything")
	}
}
