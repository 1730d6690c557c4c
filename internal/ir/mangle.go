package ir

import (
	"fmt"
	"strings"
)

// ManglePath flattens a generic declaration's path plus its concrete
// arguments into one identifier valid in a target without native
// generics. It is a pure function of its inputs: identical (path,
// args) pairs always produce the identical name, independent of call
// order, and distinct pairs stay distinct for any input the loader
// can produce.
//
// Encoding: the path name, then each argument, joined with "_".
// Composite arguments contribute fixed spellings: pointers "Ptr",
// const pointers "PtrConst", arrays "Array<len>", function pointers
// "Fn".
//
//	Vec<u8>        -> Vec_uint8_t
//	Map<K, Vec<V>> -> Map_K_Vec_V (after substitution of K and V)
func ManglePath(path Path, args []Type) Path {
	if len(args) == 0 {
		return path
	}
	var b strings.Builder
	b.WriteString(path.Name())
	for _, a := range args {
		b.WriteByte('_')
		mangleType(&b, a)
	}
	return NewPath(b.String())
}

// mangleArgsKey is the flattened argument spelling used as the
// monomorph registry key. Go maps cannot use slices as keys, so the
// arguments are folded to this stable string.
func mangleArgsKey(args []Type) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte('_')
		}
		mangleType(&b, a)
	}
	return b.String()
}

func mangleType(b *strings.Builder, t Type) {
	switch ty := t.(type) {
	case *Primitive:
		b.WriteString(sanitizeIdentifier(ty.Kind.Spelling()))
	case *Ref:
		b.WriteString(sanitizeIdentifier(ty.Path.Name()))
		for _, a := range ty.GenericArgs {
			b.WriteByte('_')
			mangleType(b, a)
		}
	case *GenericParam:
		b.WriteString(sanitizeIdentifier(ty.Name))
	case *Ptr:
		if ty.IsConst {
			b.WriteString("PtrConst_")
		} else {
			b.WriteString("Ptr_")
		}
		mangleType(b, ty.Pointee)
	case *Array:
		fmt.Fprintf(b, "Array%d_", ty.Len)
		mangleType(b, ty.Elem)
	case *FuncPtr:
		b.WriteString("Fn")
		for _, a := range ty.Args {
			b.WriteByte('_')
			mangleType(b, a.Ty)
		}
		b.WriteString("_To_")
		mangleType(b, ty.Ret)
	default:
		panic(&InvariantViolation{Message: fmt.Sprintf("unknown type variant %T", t)})
	}
}

// sanitizeIdentifier folds characters that cannot appear in a
// top-level identifier.
func sanitizeIdentifier(name string) string {
	if !strings.ContainsFunc(name, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
