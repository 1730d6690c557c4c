package ir

import (
	"strings"
	"testing"

	"bindery/internal/config"
	"bindery/internal/diag"
)

func generate(t *testing.T, lib *Library) string {
	t.Helper()
	bindings, err := lib.Generate()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	var sb strings.Builder
	if err := bindings.Write(&sb); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return sb.String()
}

func TestGenerateConcreteAliasC(t *testing.T) {
	lib := NewLibrary(nil, nil)
	addAll(t, lib,
		mustStruct(t, "Bar", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt32}}}),
		mustTypedef(t, "Foo", nil, NewRef(NewPath("Bar"))),
	)

	out := generate(t, lib)
	if !strings.Contains(out, "typedef Bar Foo;") {
		t.Fatalf("missing alias declaration in:\n%s", out)
	}
	if strings.Index(out, "} Bar;") > strings.Index(out, "typedef Bar Foo;") {
		t.Fatalf("alias emitted before its target definition:\n%s", out)
	}
}

func TestGenerateConcreteAliasCxx(t *testing.T) {
	cfg := config.Default()
	cfg.Language = config.LanguageCxx
	lib := NewLibrary(cfg, nil)
	addAll(t, lib,
		mustStruct(t, "Bar", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt32}}}),
		mustTypedef(t, "Foo", nil, NewRef(NewPath("Bar"))),
	)

	out := generate(t, lib)
	if !strings.Contains(out, "using Foo = Bar;") {
		t.Fatalf("missing using declaration in:\n%s", out)
	}
}

func TestGenerateGenericNeverEmitted(t *testing.T) {
	lib := NewLibrary(nil, nil)
	addAll(t, lib,
		mustStruct(t, "Bar", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt32}}}),
		mustStruct(t, "Vec", GenericParams{"T"}, []Field{
			{Name: "data", Ty: &Ptr{Pointee: &GenericParam{Name: "T"}}},
			{Name: "len", Ty: &Primitive{Kind: PrimUIntPtr}},
		}),
		mustStruct(t, "Holder", nil, []Field{
			{Name: "bars", Ty: NewRef(NewPath("Vec"), NewRef(NewPath("Bar")))},
		}),
	)

	out := generate(t, lib)
	if !strings.Contains(out, "} Vec_Bar;") {
		t.Fatalf("missing instantiated struct in:\n%s", out)
	}
	if strings.Contains(out, "} Vec;") || strings.Contains(out, "T data") {
		t.Fatalf("generic declaration leaked into output:\n%s", out)
	}
	// Definition order: the instantiation stands where the generic was
	// loaded, after its own dependencies and before its consumers.
	barAt := strings.Index(out, "} Bar;")
	vecBarAt := strings.Index(out, "} Vec_Bar;")
	holderAt := strings.Index(out, "} Holder;")
	if !(barAt < vecBarAt && vecBarAt < holderAt) {
		t.Fatalf("definitions out of order:\n%s", out)
	}
	if !strings.Contains(out, "Vec_Bar bars;") {
		t.Fatalf("reference inside Holder was not mangled:\n%s", out)
	}
}

func TestGenerateHonorsCfgGuards(t *testing.T) {
	lib := NewLibrary(nil, nil)
	guarded, err := NewTypedef(NewPath("Handle"), nil, &Ptr{Pointee: &Primitive{Kind: PrimVoid}},
		CfgDefined("unix"), CfgValue("feature", "handles"), AnnotationSet{}, Documentation{})
	if err != nil {
		t.Fatalf("failed to build typedef: %v", err)
	}
	addAll(t, lib, guarded,
		mustTypedef(t, "Plain", nil, &Primitive{Kind: PrimUInt8}))

	out := generate(t, lib)
	if !strings.Contains(out, "#if defined(UNIX) && defined(FEATURE___HANDLES)") {
		t.Fatalf("missing conjoined guard in:\n%s", out)
	}
	if !strings.Contains(out, "#endif") {
		t.Fatalf("guard left open in:\n%s", out)
	}
	if strings.Contains(out, "#if defined(PLAIN)") {
		t.Fatalf("unconditional declaration grew a guard:\n%s", out)
	}
}

func TestGenerateResolvesDefinesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Defines = map[string]string{"feature = handles": "BINDERY_HAS_HANDLES"}
	lib := NewLibrary(cfg, nil)
	guarded, err := NewTypedef(NewPath("Handle"), nil, &Ptr{Pointee: &Primitive{Kind: PrimVoid}},
		nil, CfgValue("feature", "handles"), AnnotationSet{}, Documentation{})
	if err != nil {
		t.Fatalf("failed to build typedef: %v", err)
	}
	addAll(t, lib, guarded)

	out := generate(t, lib)
	if !strings.Contains(out, "#if defined(BINDERY_HAS_HANDLES)") {
		t.Fatalf("configured define not used in:\n%s", out)
	}
}

func TestGenerateExportIncludeLimitsRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Include = []string{"Kept"}
	lib := NewLibrary(cfg, nil)
	addAll(t, lib,
		mustTypedef(t, "Kept", nil, &Primitive{Kind: PrimUInt8}),
		mustTypedef(t, "Dropped", nil, &Primitive{Kind: PrimUInt8}),
	)

	out := generate(t, lib)
	if !strings.Contains(out, "Kept") {
		t.Fatalf("export root missing from output:\n%s", out)
	}
	if strings.Contains(out, "Dropped") {
		t.Fatalf("declaration outside the root closure was emitted:\n%s", out)
	}
}

func TestGenerateWarnsOnMissingExportRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Include = []string{"Nowhere"}
	reporter := diag.NewBagReporter(10)
	lib := NewLibrary(cfg, reporter)
	addAll(t, lib, mustTypedef(t, "Kept", nil, &Primitive{Kind: PrimUInt8}))

	generate(t, lib)
	found := false
	for _, d := range reporter.Bag.Items() {
		if d.Code == diag.GenMissingRoot {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a missing-root warning, got %v", reporter.Bag.Items())
	}
}

func TestGenerateWarnsOnForeignGenericReference(t *testing.T) {
	reporter := diag.NewBagReporter(10)
	lib := NewLibrary(nil, reporter)
	addAll(t, lib, mustTypedef(t, "Foo", nil,
		NewRef(NewPath("ExternalTpl"), &Primitive{Kind: PrimUInt8})))

	out := generate(t, lib)
	if !strings.Contains(out, "typedef ExternalTpl Foo;") {
		t.Fatalf("foreign reference not emitted by its spelling in:\n%s", out)
	}
	found := false
	for _, d := range reporter.Bag.Items() {
		if d.Code == diag.GenUnresolvedRef && d.Severity == diag.SevWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unresolved-reference warning, got %v", reporter.Bag.Items())
	}
}

func TestGenerateTagStyle(t *testing.T) {
	cfg := config.Default()
	cfg.Style = config.StyleTag
	lib := NewLibrary(cfg, nil)
	addAll(t, lib,
		mustStruct(t, "Bar", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt32}}}),
		mustStruct(t, "Holder", nil, []Field{{Name: "bar", Ty: NewRef(NewPath("Bar"))}}),
		mustTypedef(t, "Foo", nil, NewRef(NewPath("Bar"))),
	)

	out := generate(t, lib)
	for _, want := range []string{
		"struct Bar {",
		"struct Bar bar;",
		"typedef struct Bar Foo;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "typedef struct {") {
		t.Fatalf("tag style still produced an anonymous record:\n%s", out)
	}
}

func TestGenerateBothStyle(t *testing.T) {
	cfg := config.Default()
	cfg.Style = config.StyleBoth
	lib := NewLibrary(cfg, nil)
	addAll(t, lib,
		mustStruct(t, "Bar", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt32}}}),
	)

	out := generate(t, lib)
	if !strings.Contains(out, "typedef struct Bar {") || !strings.Contains(out, "} Bar;") {
		t.Fatalf("both style lost its tag or its typedef name in:\n%s", out)
	}
}

func TestGenerateAppliesExportRenaming(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Prefix = "BD"
	cfg.Export.RenameRule = config.RenamePascalCase
	lib := NewLibrary(cfg, nil)
	addAll(t, lib,
		mustStruct(t, "raw_handle", nil, []Field{{Name: "fd", Ty: &Primitive{Kind: PrimInt32}}}),
		mustTypedef(t, "handle_alias", nil, NewRef(NewPath("raw_handle"))),
	)

	out := generate(t, lib)
	if !strings.Contains(out, "} BDRawHandle;") {
		t.Fatalf("struct export name not renamed in:\n%s", out)
	}
	if !strings.Contains(out, "typedef BDRawHandle BDHandleAlias;") {
		t.Fatalf("alias and reference renaming disagree in:\n%s", out)
	}
}

func TestGenerateTransfersAliasAnnotations(t *testing.T) {
	lib := NewLibrary(nil, nil)
	target := mustStruct(t, "Target", nil, []Field{{Name: "n", Ty: &Primitive{Kind: PrimUInt8}}})
	alias, err := NewTypedef(NewPath("Alias"), nil, NewRef(NewPath("Target")),
		nil, nil, NewAnnotationSet(Annotation{Key: "opaque", Value: "true"}), Documentation{})
	if err != nil {
		t.Fatalf("failed to build typedef: %v", err)
	}
	addAll(t, lib, target, alias)

	generate(t, lib)
	if v, ok := target.Annotations().Get("opaque"); !ok || v != "true" {
		t.Fatalf("annotations did not land on the aliased declaration")
	}
	if !alias.Annotations().IsEmpty() {
		t.Fatalf("alias kept annotations after transfer")
	}
}

func TestGenerateFraming(t *testing.T) {
	cfg := config.Default()
	cfg.AutogenWarning = "Generated file, do not edit."
	cfg.Header = "#include <stdint.h>"
	cfg.IncludeGuard = "BINDERY_H"
	cfg.Trailer = "/* end */"
	lib := NewLibrary(cfg, nil)
	addAll(t, lib, mustTypedef(t, "Foo", nil, &Primitive{Kind: PrimUInt8}))

	out := generate(t, lib)
	for _, want := range []string{
		"/* Generated file, do not edit. */",
		"#include <stdint.h>",
		"#ifndef BINDERY_H",
		"#define BINDERY_H",
		"#endif /* BINDERY_H */",
		"/* end */",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "#ifndef BINDERY_H") > strings.Index(out, "typedef") {
		t.Fatalf("guard opens after the body:\n%s", out)
	}
}

func TestGenerateDocumentationToggle(t *testing.T) {
	doc := Documentation{Lines: []string{"A handle.", "", "Stable."}}
	build := func(enabled bool) string {
		cfg := config.Default()
		cfg.Documentation = enabled
		lib := NewLibrary(cfg, nil)
		td, err := NewTypedef(NewPath("Foo"), nil, &Primitive{Kind: PrimUInt8},
			nil, nil, AnnotationSet{}, doc.Clone())
		if err != nil {
			t.Fatalf("failed to build typedef: %v", err)
		}
		addAll(t, lib, td)
		return generate(t, lib)
	}

	withDocs := build(true)
	if !strings.Contains(withDocs, " * A handle.") || !strings.Contains(withDocs, " *\n * Stable.") {
		t.Fatalf("doc comment not rendered:\n%s", withDocs)
	}
	if out := build(false); strings.Contains(out, "A handle.") {
		t.Fatalf("doc comment rendered while disabled:\n%s", out)
	}
}
