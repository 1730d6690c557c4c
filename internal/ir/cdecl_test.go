package ir

import "testing"

func TestCDecl(t *testing.T) {
	cases := []struct {
		ty   Type
		name string
		want string
	}{
		{&Primitive{Kind: PrimUInt8}, "n", "uint8_t n"},
		{&Ptr{Pointee: &Primitive{Kind: PrimChar}, IsConst: true}, "s", "const char *s"},
		{&Ptr{Pointee: &Ptr{Pointee: &Primitive{Kind: PrimVoid}}}, "pp", "void **pp"},
		{&Array{Elem: &Primitive{Kind: PrimUInt8}, Len: 4}, "buf", "uint8_t buf[4]"},
		{
			&Array{Elem: &Array{Elem: &Primitive{Kind: PrimFloat32}, Len: 3}, Len: 2},
			"m", "float m[2][3]",
		},
		{
			&Ptr{Pointee: &Array{Elem: &Primitive{Kind: PrimUInt8}, Len: 4}},
			"p", "uint8_t (*p)[4]",
		},
		{
			&FuncPtr{
				Ret: &Primitive{Kind: PrimInt32},
				Args: []FuncArg{
					{Name: "a", Ty: &Primitive{Kind: PrimInt32}},
					{Name: "b", Ty: &Ptr{Pointee: &Primitive{Kind: PrimChar}, IsConst: true}},
				},
			},
			"cb", "int32_t (*cb)(int32_t a, const char *b)",
		},
		{
			&FuncPtr{Ret: &Primitive{Kind: PrimVoid}},
			"hook", "void (*hook)(void)",
		},
		{&Ref{Path: NewPath("Bar"), ExportedName: "Bar"}, "bar", "Bar bar"},
		{
			&Ref{Path: NewPath("Bar"), ExportedName: "Bar", DeclKind: DeclStruct, Tagged: true},
			"bar", "struct Bar bar",
		},
		{
			&Ptr{Pointee: &Ref{Path: NewPath("Ev"), ExportedName: "Ev", DeclKind: DeclEnum, Tagged: true}},
			"ev", "enum Ev *ev",
		},
	}
	for _, tc := range cases {
		if got := cDecl(tc.ty, tc.name); got != tc.want {
			t.Fatalf("cDecl(%s, %q) = %q, want %q", tc.ty, tc.name, got, tc.want)
		}
	}
}

func TestTypeSpelling(t *testing.T) {
	cases := []struct {
		ty   Type
		want string
	}{
		{&Primitive{Kind: PrimFloat64}, "double"},
		{&Ptr{Pointee: &Primitive{Kind: PrimVoid}}, "void *"},
		{&Ptr{Pointee: &Primitive{Kind: PrimUInt8}, IsConst: true}, "const uint8_t *"},
		{&Ref{Path: NewPath("Handle"), ExportedName: "Handle"}, "Handle"},
	}
	for _, tc := range cases {
		if got := typeSpelling(tc.ty); got != tc.want {
			t.Fatalf("typeSpelling(%s) = %q, want %q", tc.ty, got, tc.want)
		}
	}
}
