package ir

import "testing"

func TestManglePathIsDeterministic(t *testing.T) {
	args := []Type{&Primitive{Kind: PrimUInt8}, NewRef(NewPath("Bar"))}
	first := ManglePath(NewPath("Vec"), args)
	for i := 0; i < 16; i++ {
		if got := ManglePath(NewPath("Vec"), args); got != first {
			t.Fatalf("mangle must be pure: %s vs %s", got, first)
		}
	}
}

func TestManglePathShapes(t *testing.T) {
	cases := []struct {
		path Path
		args []Type
		want Path
	}{
		{NewPath("Vec"), []Type{&Primitive{Kind: PrimUInt8}}, "Vec_uint8_t"},
		{NewPath("Vec"), []Type{NewRef(NewPath("Vec"), &Primitive{Kind: PrimUInt8})}, "Vec_Vec_uint8_t"},
		{NewPath("Map"), []Type{NewRef(NewPath("K")), NewRef(NewPath("V"))}, "Map_K_V"},
		{NewPath("Vec"), []Type{&Ptr{Pointee: NewRef(NewPath("Bar"))}}, "Vec_Ptr_Bar"},
		{NewPath("Vec"), []Type{&Ptr{Pointee: NewRef(NewPath("Bar")), IsConst: true}}, "Vec_PtrConst_Bar"},
		{NewPath("Vec"), []Type{&Array{Elem: &Primitive{Kind: PrimBool}, Len: 4}}, "Vec_Array4_bool"},
		{NewPath("Vec"), nil, "Vec"},
	}
	for _, tc := range cases {
		if got := ManglePath(tc.path, tc.args); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.path, tc.want, got)
		}
	}
}

func TestMangleDistinctArgumentsStayDistinct(t *testing.T) {
	a := ManglePath(NewPath("Vec"), []Type{&Primitive{Kind: PrimUInt8}})
	b := ManglePath(NewPath("Vec"), []Type{&Primitive{Kind: PrimUInt16}})
	c := ManglePath(NewPath("Vec"), []Type{&Ptr{Pointee: &Primitive{Kind: PrimUInt8}}})
	if a == b || a == c || b == c {
		t.Fatalf("distinct arguments collided: %s %s %s", a, b, c)
	}
}

func TestMangleArgsKeyMatchesArguments(t *testing.T) {
	args := []Type{NewRef(NewPath("Bar"), &Primitive{Kind: PrimUInt8})}
	if mangleArgsKey(args) != mangleArgsKey([]Type{CloneType(args[0])}) {
		t.Fatalf("equal argument lists must produce equal keys")
	}
	if mangleArgsKey(args) == mangleArgsKey([]Type{NewRef(NewPath("Bar"))}) {
		t.Fatalf("different argument lists must produce different keys")
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	if got := sanitizeIdentifier("ns::Widget"); got != "ns__Widget" {
		t.Fatalf("unexpected sanitized spelling %q", got)
	}
	if got := sanitizeIdentifier("Plain_0"); got != "Plain_0" {
		t.Fatalf("clean identifiers must pass through, got %q", got)
	}
}
