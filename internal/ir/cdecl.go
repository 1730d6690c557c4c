package ir

import (
	"fmt"
	"strings"
)

// declParts splits a type into the text left and right of the
// declared name, following C declarator syntax. Arrays and function
// pointers put structure on the right; everything else stays on the
// left.
func declParts(t Type) (left, right string) {
	switch ty := t.(type) {
	case *Primitive:
		return ty.Kind.Spelling(), ""
	case *Ref:
		if ty.Tagged {
			if kw, ok := tagKeyword(ty.DeclKind); ok {
				return kw + " " + ty.ExportedName, ""
			}
		}
		return ty.ExportedName, ""
	case *GenericParam:
		return ty.Name, ""
	case *Ptr:
		l, r := declParts(ty.Pointee)
		if ty.IsConst {
			l = "const " + l
		}
		switch ty.Pointee.(type) {
		case *Array, *FuncPtr:
			return l + " (*", ")" + r
		}
		if strings.HasSuffix(l, "*") {
			return l + "*", r
		}
		return l + " *", r
	case *Array:
		l, r := declParts(ty.Elem)
		return l, fmt.Sprintf("[%d]%s", ty.Len, r)
	case *FuncPtr:
		l, r := declParts(ty.Ret)
		return l + " (*", ")(" + funcArgList(ty.Args) + ")" + r
	default:
		panic(&InvariantViolation{Message: fmt.Sprintf("unknown type variant %T", t)})
	}
}

// cDecl renders a C declaration of name with the given type, without
// the terminator: "uint8_t foo", "const char *foo", "uint8_t foo[4]",
// "int32_t (*foo)(int32_t a)".
func cDecl(t Type, name string) string {
	left, right := declParts(t)
	if name == "" {
		return strings.TrimRight(left, " ") + right
	}
	if strings.HasSuffix(left, "*") || strings.HasSuffix(left, "(") {
		return left + name + right
	}
	return left + " " + name + right
}

// typeSpelling renders a bare type for alias-style output.
func typeSpelling(t Type) string {
	return cDecl(t, "")
}

// funcArgList renders a signature's arguments, "void" when empty.
func funcArgList(args []FuncArg) string {
	if len(args) == 0 {
		return "void"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = cDecl(a.Ty, a.Name)
	}
	return strings.Join(parts, ", ")
}
