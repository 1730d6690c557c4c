package ir

import (
	"fmt"

	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/emit"
)

// Item is the contract every declaration kind implements. The
// Typedef, Struct, Enum, Union, OpaqueItem, Function and Static kinds
// form a closed set; pipeline passes dispatch through this interface
// and never need to know the concrete kind.
type Item interface {
	// Path is the canonical identity of the declaration.
	Path() Path
	// ExportName is the identifier emitted for the declaration.
	ExportName() string
	// Cfg is the declaration's conditional predicate; nil means
	// unconditional.
	Cfg() *Cfg
	// Annotations gives read and mutable access to the metadata set.
	Annotations() *AnnotationSet
	// Kind is the self-describing dispatch tag.
	Kind() DeclKind
	// RenameForConfig applies the export rewrite rule to the export
	// name and, recursively, to the payload types.
	RenameForConfig(cfg *config.Config)
	// ResolveDeclarationTypes disambiguates raw path references in the
	// payload once all declarations are loaded.
	ResolveDeclarationTypes(r *DeclarationTypeResolver)
	// AddDependencies records the declarations the payload mentions,
	// excluding the item's own generic parameters.
	AddDependencies(lib *Library, out *Dependencies)
	// IsGeneric reports whether the declaration has generic parameters.
	IsGeneric() bool
	// AddMonomorphs registers the instantiations a concrete
	// declaration's payload requires. Generic declarations contribute
	// nothing; their instances are produced by InstantiateMonomorph.
	AddMonomorphs(lib *Library, out *Monomorphs)
	// InstantiateMonomorph builds the concrete instance of a generic
	// declaration for the given arguments and records it in the
	// registry. Calling it on a non-generic declaration, or with a
	// mismatched argument count, is a contract breach and panics.
	InstantiateMonomorph(args []Type, lib *Library, out *Monomorphs)
	// ManglePaths flattens generic references in the payload to their
	// monomorphized names. References with no recorded instantiation
	// are reported and left as they are.
	ManglePaths(m *Monomorphs, reporter diag.Reporter)
	// Write renders the finalized declaration in the configured dialect.
	Write(cfg *config.Config, w *emit.SourceWriter)
}

// simplifier is implemented by items whose payload types take part in
// standard-type simplification.
type simplifier interface {
	SimplifyStandardTypes()
}

// LoadErrorKind classifies recoverable per-declaration load failures.
type LoadErrorKind uint8

const (
	LoadDegenerateAlias LoadErrorKind = iota
	LoadUnknownPrimitive
	LoadMalformedDecl
	LoadDuplicatePath
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadDegenerateAlias:
		return "degenerate-alias"
	case LoadUnknownPrimitive:
		return "unknown-primitive"
	case LoadMalformedDecl:
		return "malformed-declaration"
	case LoadDuplicatePath:
		return "duplicate-path"
	default:
		return fmt.Sprintf("LoadErrorKind(%d)", k)
	}
}

// LoadError is a recoverable failure to load one declaration. The
// caller decides whether to drop the declaration or abort the run.
type LoadError struct {
	Kind   LoadErrorKind
	Path   Path
	Reason string
}

func (e *LoadError) Error() string {
	if e.Path.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// InvariantViolation is a contract breach by an upstream pass. It is
// raised as a panic and never recovered: it indicates a defect, not
// bad input.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Message
}

// invariant panics with an InvariantViolation when cond does not hold.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(&InvariantViolation{Message: fmt.Sprintf(format, args...)})
	}
}
