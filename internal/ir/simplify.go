package ir

// standardTypeSpellings maps size-named library spellings to the
// fixed-width primitives the target dialect understands.
var standardTypeSpellings = map[string]PrimitiveKind{
	"u8":    PrimUInt8,
	"u16":   PrimUInt16,
	"u32":   PrimUInt32,
	"u64":   PrimUInt64,
	"i8":    PrimInt8,
	"i16":   PrimInt16,
	"i32":   PrimInt32,
	"i64":   PrimInt64,
	"usize": PrimUIntPtr,
	"isize": PrimIntPtr,
	"f32":   PrimFloat32,
	"f64":   PrimFloat64,

	"uint8_t":   PrimUInt8,
	"uint16_t":  PrimUInt16,
	"uint32_t":  PrimUInt32,
	"uint64_t":  PrimUInt64,
	"int8_t":    PrimInt8,
	"int16_t":   PrimInt16,
	"int32_t":   PrimInt32,
	"int64_t":   PrimInt64,
	"uintptr_t": PrimUIntPtr,
	"intptr_t":  PrimIntPtr,

	"c_char": PrimChar,
	"c_void": PrimVoid,
}

// simplifyStandardTypes canonicalizes size-named library spellings into
// fixed-width primitives, and folds the standard pointer wrappers
// (NonNull<T>, Unique<T>, Option over a pointer) into plain pointers.
// The pass is idempotent: its outputs never match its inputs again.
func simplifyStandardTypes(t Type) Type {
	switch ty := t.(type) {
	case *Ptr:
		ty.Pointee = simplifyStandardTypes(ty.Pointee)
		return ty
	case *Ref:
		for i, a := range ty.GenericArgs {
			ty.GenericArgs[i] = simplifyStandardTypes(a)
		}
		name := ty.Path.Name()
		if len(ty.GenericArgs) == 0 {
			if kind, ok := standardTypeSpellings[name]; ok {
				return &Primitive{Kind: kind}
			}
			return ty
		}
		if len(ty.GenericArgs) == 1 {
			switch name {
			case "NonNull", "Unique":
				return &Ptr{Pointee: ty.GenericArgs[0]}
			case "Option":
				if ptr, ok := ty.GenericArgs[0].(*Ptr); ok {
					return ptr
				}
			}
		}
		return ty
	case *Array:
		ty.Elem = simplifyStandardTypes(ty.Elem)
		return ty
	case *FuncPtr:
		ty.Ret = simplifyStandardTypes(ty.Ret)
		for i := range ty.Args {
			ty.Args[i].Ty = simplifyStandardTypes(ty.Args[i].Ty)
		}
		return ty
	default:
		return t
	}
}
