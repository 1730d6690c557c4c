package ir

import (
	"fmt"
	"strings"

	"bindery/internal/config"
	"bindery/internal/diag"
)

// PrimitiveKind enumerates the fixed-width primitives of the target
// dialect.
type PrimitiveKind uint8

const (
	PrimVoid PrimitiveKind = iota
	PrimBool
	PrimChar
	PrimInt8
	PrimInt16
	PrimInt32
	PrimInt64
	PrimUInt8
	PrimUInt16
	PrimUInt32
	PrimUInt64
	PrimIntPtr
	PrimUIntPtr
	PrimFloat32
	PrimFloat64
)

// Spelling returns the C spelling of the primitive.
func (k PrimitiveKind) Spelling() string {
	switch k {
	case PrimVoid:
		return "void"
	case PrimBool:
		return "bool"
	case PrimChar:
		return "char"
	case PrimInt8:
		return "int8_t"
	case PrimInt16:
		return "int16_t"
	case PrimInt32:
		return "int32_t"
	case PrimInt64:
		return "int64_t"
	case PrimUInt8:
		return "uint8_t"
	case PrimUInt16:
		return "uint16_t"
	case PrimUInt32:
		return "uint32_t"
	case PrimUInt64:
		return "uint64_t"
	case PrimIntPtr:
		return "intptr_t"
	case PrimUIntPtr:
		return "uintptr_t"
	case PrimFloat32:
		return "float"
	case PrimFloat64:
		return "double"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", k)
	}
}

// Type is a recursive type expression. Leaves are primitives or
// generic-parameter placeholders; interior nodes reference other
// declarations by path or nest further types. The set of variants is
// closed; passes dispatch with type switches.
type Type interface {
	isType()
	String() string
}

// Primitive is a fixed-width builtin of the target dialect.
type Primitive struct {
	Kind PrimitiveKind
}

// Ptr is a pointer to a pointee type.
type Ptr struct {
	Pointee Type
	// IsConst marks a pointer to const data.
	IsConst bool
}

// Ref is a reference to another declaration by path, optionally with
// generic arguments. ExportedName is the spelling used at emission; it
// starts as the path name and is rewritten by rename-for-config and
// path mangling. DeclKind is filled in by resolve-declaration-types
// once the whole Library is known.
type Ref struct {
	Path         Path
	ExportedName string
	GenericArgs  []Type
	DeclKind     DeclKind

	// Tagged makes the reference spell its tag keyword, as in
	// "struct Foo". Set by resolve-declaration-types when the
	// configuration asks for tag-style records.
	Tagged bool
}

// GenericParam is a placeholder for one of the enclosing declaration's
// generic parameters. It never survives monomorphization.
type GenericParam struct {
	Name string
}

// Array is a fixed-length array of an element type.
type Array struct {
	Elem Type
	Len  uint32
}

// FuncPtr is a pointer to a function with the given signature.
type FuncPtr struct {
	Ret  Type
	Args []FuncArg
}

// FuncArg is one named argument of a function or function pointer.
type FuncArg struct {
	Name string
	Ty   Type
}

func (*Primitive) isType()    {}
func (*Ptr) isType()          {}
func (*Ref) isType()          {}
func (*GenericParam) isType() {}
func (*Array) isType()        {}
func (*FuncPtr) isType()      {}

func (t *Primitive) String() string { return t.Kind.Spelling() }

func (t *Ptr) String() string {
	if t.IsConst {
		return "*const " + t.Pointee.String()
	}
	return "*" + t.Pointee.String()
}

func (t *Ref) String() string {
	if len(t.GenericArgs) == 0 {
		return t.Path.Name()
	}
	args := make([]string, len(t.GenericArgs))
	for i, a := range t.GenericArgs {
		args[i] = a.String()
	}
	return t.Path.Name() + "<" + strings.Join(args, ", ") + ">"
}

func (t *GenericParam) String() string { return t.Name }

func (t *Array) String() string {
	return fmt.Sprintf("%s[%d]", t.Elem.String(), t.Len)
}

func (t *FuncPtr) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Ty.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(args, ", "), t.Ret.String())
}

// NewRef builds a reference to a declaration.
func NewRef(path Path, args ...Type) *Ref {
	return &Ref{Path: path, ExportedName: path.Name(), GenericArgs: args}
}

// IsZeroSized reports whether the type denotes nothing the target can
// store: void itself or a zero-length array of anything.
func IsZeroSized(t Type) bool {
	switch ty := t.(type) {
	case *Primitive:
		return ty.Kind == PrimVoid
	case *Array:
		return ty.Len == 0 || IsZeroSized(ty.Elem)
	default:
		return false
	}
}

// RootPath returns the outermost named declaration a type expression
// refers to, looking through pointers. Used to locate the target of
// annotation transfer.
func RootPath(t Type) (Path, bool) {
	switch ty := t.(type) {
	case *Ref:
		return ty.Path, true
	case *Ptr:
		return RootPath(ty.Pointee)
	default:
		return NoPath, false
	}
}

// CloneType returns a deep copy of a type expression.
func CloneType(t Type) Type {
	switch ty := t.(type) {
	case *Primitive:
		out := *ty
		return &out
	case *Ptr:
		return &Ptr{Pointee: CloneType(ty.Pointee), IsConst: ty.IsConst}
	case *Ref:
		out := &Ref{Path: ty.Path, ExportedName: ty.ExportedName, DeclKind: ty.DeclKind, Tagged: ty.Tagged}
		for _, a := range ty.GenericArgs {
			out.GenericArgs = append(out.GenericArgs, CloneType(a))
		}
		return out
	case *GenericParam:
		out := *ty
		return &out
	case *Array:
		return &Array{Elem: CloneType(ty.Elem), Len: ty.Len}
	case *FuncPtr:
		out := &FuncPtr{Ret: CloneType(ty.Ret)}
		for _, a := range ty.Args {
			out.Args = append(out.Args, FuncArg{Name: a.Name, Ty: CloneType(a.Ty)})
		}
		return out
	default:
		panic(&InvariantViolation{Message: fmt.Sprintf("unknown type variant %T", t)})
	}
}

// Specialize substitutes generic-parameter placeholders using the
// given mapping and returns a new tree. Unmapped placeholders are a
// contract breach by the caller.
func Specialize(t Type, mappings map[string]Type) Type {
	switch ty := t.(type) {
	case *Primitive:
		return CloneType(ty)
	case *Ptr:
		return &Ptr{Pointee: Specialize(ty.Pointee, mappings), IsConst: ty.IsConst}
	case *Ref:
		out := &Ref{Path: ty.Path, ExportedName: ty.ExportedName, DeclKind: ty.DeclKind, Tagged: ty.Tagged}
		for _, a := range ty.GenericArgs {
			out.GenericArgs = append(out.GenericArgs, Specialize(a, mappings))
		}
		return out
	case *GenericParam:
		concrete, ok := mappings[ty.Name]
		if !ok {
			panic(&InvariantViolation{Message: fmt.Sprintf("no substitution for generic parameter %s", ty.Name)})
		}
		return CloneType(concrete)
	case *Array:
		return &Array{Elem: Specialize(ty.Elem, mappings), Len: ty.Len}
	case *FuncPtr:
		out := &FuncPtr{Ret: Specialize(ty.Ret, mappings)}
		for _, a := range ty.Args {
			out.Args = append(out.Args, FuncArg{Name: a.Name, Ty: Specialize(a.Ty, mappings)})
		}
		return out
	default:
		panic(&InvariantViolation{Message: fmt.Sprintf("unknown type variant %T", t)})
	}
}

// renameTypeForConfig rewrites the emitted spelling of every path
// reference with the export rename rule, skipping the enclosing
// declaration's generic parameters.
func renameTypeForConfig(t Type, export *config.ExportConfig, generics GenericParams) {
	switch ty := t.(type) {
	case *Ptr:
		renameTypeForConfig(ty.Pointee, export, generics)
	case *Ref:
		if !generics.Contains(ty.Path.Name()) {
			ty.ExportedName = export.Rename(ty.Path.Name())
		}
		for _, a := range ty.GenericArgs {
			renameTypeForConfig(a, export, generics)
		}
	case *Array:
		renameTypeForConfig(ty.Elem, export, generics)
	case *FuncPtr:
		renameTypeForConfig(ty.Ret, export, generics)
		for _, a := range ty.Args {
			renameTypeForConfig(a.Ty, export, generics)
		}
	}
}

// resolveTypeDeclarationTypes tags every reference with the concrete
// declaration kind it points at.
func resolveTypeDeclarationTypes(t Type, r *DeclarationTypeResolver) {
	switch ty := t.(type) {
	case *Ptr:
		resolveTypeDeclarationTypes(ty.Pointee, r)
	case *Ref:
		ty.DeclKind = r.Resolve(ty.Path)
		ty.Tagged = r.Tagged(ty.DeclKind)
		for _, a := range ty.GenericArgs {
			resolveTypeDeclarationTypes(a, r)
		}
	case *Array:
		resolveTypeDeclarationTypes(ty.Elem, r)
	case *FuncPtr:
		resolveTypeDeclarationTypes(ty.Ret, r)
		for _, a := range ty.Args {
			resolveTypeDeclarationTypes(a.Ty, r)
		}
	}
}

// addTypeDependencies records every declaration a type expression
// mentions, excluding the enclosing declaration's own generic
// parameters. Generic arguments are visited before the referenced path
// so dependency order stays definition-before-use for acyclic inputs.
func addTypeDependencies(t Type, generics GenericParams, lib *Library, out *Dependencies) {
	switch ty := t.(type) {
	case *Ptr:
		addTypeDependencies(ty.Pointee, generics, lib, out)
	case *Ref:
		for _, a := range ty.GenericArgs {
			addTypeDependencies(a, generics, lib, out)
		}
		if !generics.Contains(ty.Path.Name()) {
			out.Add(ty.Path, lib)
		}
	case *Array:
		addTypeDependencies(ty.Elem, generics, lib, out)
	case *FuncPtr:
		addTypeDependencies(ty.Ret, generics, lib, out)
		for _, a := range ty.Args {
			addTypeDependencies(a.Ty, generics, lib, out)
		}
	}
}

// addTypeMonomorphs instantiates every generic declaration a concrete
// type expression references.
func addTypeMonomorphs(t Type, lib *Library, out *Monomorphs) {
	switch ty := t.(type) {
	case *Ptr:
		addTypeMonomorphs(ty.Pointee, lib, out)
	case *Ref:
		for _, a := range ty.GenericArgs {
			addTypeMonomorphs(a, lib, out)
		}
		if len(ty.GenericArgs) > 0 && !out.Contains(ty.Path, ty.GenericArgs) {
			if item, ok := lib.Item(ty.Path); ok && item.IsGeneric() {
				item.InstantiateMonomorph(ty.GenericArgs, lib, out)
			}
		}
	case *Array:
		addTypeMonomorphs(ty.Elem, lib, out)
	case *FuncPtr:
		addTypeMonomorphs(ty.Ret, lib, out)
		for _, a := range ty.Args {
			addTypeMonomorphs(a.Ty, lib, out)
		}
	}
}

// mangleTypeRefs flattens every generic reference to the mangled path
// of its monomorphized instance. A generic reference with no recorded
// instantiation points outside the library; it is warned about and
// emitted by spelling alone.
func mangleTypeRefs(t Type, m *Monomorphs, reporter diag.Reporter) {
	switch ty := t.(type) {
	case *Ptr:
		mangleTypeRefs(ty.Pointee, m, reporter)
	case *Ref:
		if len(ty.GenericArgs) == 0 {
			return
		}
		entry, ok := m.Entry(ty.Path, ty.GenericArgs)
		if !ok {
			diag.Warn(reporter, diag.GenUnresolvedRef, ty.Path.String(),
				fmt.Sprintf("cannot find an instantiation for %s; emitting the reference by spelling alone", ty))
			return
		}
		ty.Path = entry.Item.Path()
		ty.ExportedName = entry.Item.ExportName()
		ty.GenericArgs = nil
	case *Array:
		mangleTypeRefs(ty.Elem, m, reporter)
	case *FuncPtr:
		mangleTypeRefs(ty.Ret, m, reporter)
		for _, a := range ty.Args {
			mangleTypeRefs(a.Ty, m, reporter)
		}
	}
}
