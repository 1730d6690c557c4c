package ir

import (
	"fmt"

	"bindery/internal/config"
)

// DeclKind is the concrete kind a raw path reference resolves to once
// the whole Library is known.
type DeclKind uint8

const (
	// DeclNone marks a reference to something outside the Library
	// (a foreign type emitted by spelling alone).
	DeclNone DeclKind = iota
	DeclTypedef
	DeclStruct
	DeclEnum
	DeclUnion
	DeclOpaque
	DeclFunction
	DeclStatic
)

func (k DeclKind) String() string {
	switch k {
	case DeclNone:
		return "none"
	case DeclTypedef:
		return "typedef"
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	case DeclUnion:
		return "union"
	case DeclOpaque:
		return "opaque"
	case DeclFunction:
		return "function"
	case DeclStatic:
		return "static"
	default:
		return fmt.Sprintf("DeclKind(%d)", k)
	}
}

// tagKeyword returns the C keyword a declaration of the given kind is
// tagged with, if any. Opaque declarations are emitted as structs.
func tagKeyword(kind DeclKind) (string, bool) {
	switch kind {
	case DeclStruct, DeclOpaque:
		return "struct", true
	case DeclUnion:
		return "union", true
	case DeclEnum:
		return "enum", true
	default:
		return "", false
	}
}

// DeclarationTypeResolver disambiguates raw path references into
// concrete declaration kinds. Built from a fully loaded Library,
// before any monomorphization.
type DeclarationTypeResolver struct {
	kinds    map[Path]DeclKind
	tagStyle bool
}

// NewDeclarationTypeResolver indexes every declaration of the library.
func NewDeclarationTypeResolver(lib *Library) *DeclarationTypeResolver {
	cfg := lib.Config()
	r := &DeclarationTypeResolver{
		kinds:    make(map[Path]DeclKind, len(lib.order)),
		tagStyle: cfg.Style == config.StyleTag && cfg.Language == config.LanguageC,
	}
	for _, path := range lib.order {
		r.kinds[path] = lib.items[path].Kind()
	}
	return r
}

// Resolve returns the declaration kind for a path, or DeclNone for
// paths the library does not own.
func (r *DeclarationTypeResolver) Resolve(path Path) DeclKind {
	return r.kinds[path]
}

// Tagged reports whether references of the given kind carry their tag
// keyword in the output.
func (r *DeclarationTypeResolver) Tagged(kind DeclKind) bool {
	if !r.tagStyle {
		return false
	}
	_, ok := tagKeyword(kind)
	return ok
}
