// Package load turns the external loader's pre-parsed declaration
// stream into a Library. Parsing of the source language happens
// upstream; this package only validates and converts.
package load

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"bindery/internal/diag"
	"bindery/internal/ir"
)

// Options configures Read.
type Options struct {
	// Strict promotes per-declaration load failures to run failures.
	// Without it a malformed declaration is reported and dropped.
	Strict   bool
	Reporter diag.Reporter
}

// Option configures Read.
type Option func(*Options)

// WithStrict makes per-declaration failures abort the run.
func WithStrict() Option {
	return func(o *Options) { o.Strict = true }
}

// WithReporter sets the diagnostic sink for dropped declarations.
func WithReporter(r diag.Reporter) Option {
	return func(o *Options) { o.Reporter = r }
}

// Read decodes a declaration payload and loads it into the library.
func Read(r io.Reader, lib *ir.Library, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Reporter == nil {
		o.Reporter = lib.Reporter()
	}

	var payload Payload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode declaration payload: %w", err)
	}
	if payload.Schema != Schema {
		return fmt.Errorf("unsupported declaration schema %d (expected %d)", payload.Schema, Schema)
	}

	for i := range payload.Decls {
		item, err := buildItem(&payload.Decls[i])
		if err == nil {
			err = lib.Add(item)
		}
		if err != nil {
			var loadErr *ir.LoadError
			if errors.As(err, &loadErr) {
				if !o.Strict {
					diag.Warn(o.Reporter, loadErrCode(loadErr.Kind), loadErr.Path.String(),
						"declaration dropped: "+loadErr.Reason)
					continue
				}
				diag.Error(o.Reporter, loadErrCode(loadErr.Kind), loadErr.Path.String(),
					"declaration rejected: "+loadErr.Reason)
			}
			return err
		}
	}
	return nil
}

// ReadFile loads a declaration payload from disk.
func ReadFile(path string, lib *ir.Library, opts ...Option) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()
	return Read(f, lib, opts...)
}

func loadErrCode(kind ir.LoadErrorKind) diag.Code {
	switch kind {
	case ir.LoadDegenerateAlias:
		return diag.LoadDegenerateAlias
	case ir.LoadUnknownPrimitive:
		return diag.LoadUnknownPrimitive
	case ir.LoadDuplicatePath:
		return diag.LoadDuplicatePath
	default:
		return diag.LoadMalformedDecl
	}
}

func buildItem(d *Decl) (ir.Item, error) {
	path := ir.NewPath(d.Path)
	if !path.IsValid() {
		return nil, &ir.LoadError{Kind: ir.LoadMalformedDecl, Reason: "declaration has no path"}
	}
	scopeCfg, err := buildCfg(path, d.ScopeCfg)
	if err != nil {
		return nil, err
	}
	ownCfg, err := buildCfg(path, d.Cfg)
	if err != nil {
		return nil, err
	}
	annotations := buildAnnotations(d.Annotations)
	doc := ir.Documentation{Lines: d.Doc}
	generics := ir.GenericParams(d.GenericParams)

	switch d.Kind {
	case KindTypedef:
		aliased, err := buildType(path, d.Aliased)
		if err != nil {
			return nil, err
		}
		return ir.NewTypedef(path, generics, aliased, scopeCfg, ownCfg, annotations, doc)
	case KindStruct:
		fields, err := buildFields(path, d.Fields)
		if err != nil {
			return nil, err
		}
		return ir.NewStruct(path, generics, fields, scopeCfg, ownCfg, annotations, doc)
	case KindUnion:
		fields, err := buildFields(path, d.Fields)
		if err != nil {
			return nil, err
		}
		return ir.NewUnion(path, generics, fields, scopeCfg, ownCfg, annotations, doc)
	case KindEnum:
		variants := make([]ir.EnumVariant, len(d.Variants))
		for i, v := range d.Variants {
			variants[i] = ir.EnumVariant{Name: v.Name, Value: v.Value}
		}
		return ir.NewEnum(path, generics, variants, scopeCfg, ownCfg, annotations, doc)
	case KindOpaque:
		return ir.NewOpaqueItem(path, generics, scopeCfg, ownCfg, annotations, doc), nil
	case KindFunction:
		var ret ir.Type
		if d.Ret != nil {
			if ret, err = buildType(path, d.Ret); err != nil {
				return nil, err
			}
		}
		args, err := buildArgs(path, d.Args)
		if err != nil {
			return nil, err
		}
		return ir.NewFunction(path, ret, args, scopeCfg, ownCfg, annotations, doc)
	case KindStatic:
		ty, err := buildType(path, d.Ty)
		if err != nil {
			return nil, err
		}
		return ir.NewStatic(path, ty, scopeCfg, ownCfg, annotations, doc)
	default:
		return nil, &ir.LoadError{
			Kind:   ir.LoadMalformedDecl,
			Path:   path,
			Reason: fmt.Sprintf("unknown declaration kind %q", d.Kind),
		}
	}
}

func buildAnnotations(nodes []AnnotationNode) ir.AnnotationSet {
	entries := make([]ir.Annotation, len(nodes))
	for i, n := range nodes {
		entries[i] = ir.Annotation{Key: n.Key, Value: n.Value}
	}
	return ir.NewAnnotationSet(entries...)
}

func buildFields(path ir.Path, nodes []FieldNode) ([]ir.Field, error) {
	fields := make([]ir.Field, len(nodes))
	for i, n := range nodes {
		ty, err := buildType(path, n.Ty)
		if err != nil {
			return nil, err
		}
		fields[i] = ir.Field{Name: n.Name, Ty: ty}
	}
	return fields, nil
}

func buildArgs(path ir.Path, nodes []FieldNode) ([]ir.FuncArg, error) {
	args := make([]ir.FuncArg, len(nodes))
	for i, n := range nodes {
		ty, err := buildType(path, n.Ty)
		if err != nil {
			return nil, err
		}
		args[i] = ir.FuncArg{Name: n.Name, Ty: ty}
	}
	return args, nil
}

// wirePrimitives maps the loader's primitive spellings onto the
// engine's fixed-width kinds.
var wirePrimitives = map[string]ir.PrimitiveKind{
	"void":  ir.PrimVoid,
	"bool":  ir.PrimBool,
	"char":  ir.PrimChar,
	"i8":    ir.PrimInt8,
	"i16":   ir.PrimInt16,
	"i32":   ir.PrimInt32,
	"i64":   ir.PrimInt64,
	"u8":    ir.PrimUInt8,
	"u16":   ir.PrimUInt16,
	"u32":   ir.PrimUInt32,
	"u64":   ir.PrimUInt64,
	"isize": ir.PrimIntPtr,
	"usize": ir.PrimUIntPtr,
	"f32":   ir.PrimFloat32,
	"f64":   ir.PrimFloat64,
}

func buildType(path ir.Path, n *TypeNode) (ir.Type, error) {
	if n == nil {
		return nil, &ir.LoadError{Kind: ir.LoadMalformedDecl, Path: path, Reason: "missing type expression"}
	}
	switch n.Kind {
	case "primitive":
		kind, ok := wirePrimitives[n.Name]
		if !ok {
			return nil, &ir.LoadError{
				Kind:   ir.LoadUnknownPrimitive,
				Path:   path,
				Reason: fmt.Sprintf("unknown primitive %q", n.Name),
			}
		}
		return &ir.Primitive{Kind: kind}, nil
	case "ptr":
		pointee, err := buildType(path, n.Elem)
		if err != nil {
			return nil, err
		}
		return &ir.Ptr{Pointee: pointee, IsConst: n.Const}, nil
	case "ref":
		if n.Name == "" {
			return nil, &ir.LoadError{Kind: ir.LoadMalformedDecl, Path: path, Reason: "reference has no path"}
		}
		args := make([]ir.Type, len(n.Args))
		for i, a := range n.Args {
			ty, err := buildType(path, a)
			if err != nil {
				return nil, err
			}
			args[i] = ty
		}
		return ir.NewRef(ir.NewPath(n.Name), args...), nil
	case "param":
		if n.Name == "" {
			return nil, &ir.LoadError{Kind: ir.LoadMalformedDecl, Path: path, Reason: "generic parameter has no name"}
		}
		return &ir.GenericParam{Name: n.Name}, nil
	case "array":
		elem, err := buildType(path, n.Elem)
		if err != nil {
			return nil, err
		}
		length, err := safecast.Conv[uint32](n.Len)
		if err != nil {
			return nil, &ir.LoadError{
				Kind:   ir.LoadMalformedDecl,
				Path:   path,
				Reason: fmt.Sprintf("bad array length %d: %v", n.Len, err),
			}
		}
		return &ir.Array{Elem: elem, Len: length}, nil
	case "funcptr":
		var ret ir.Type = &ir.Primitive{Kind: ir.PrimVoid}
		if n.Ret != nil {
			var err error
			if ret, err = buildType(path, n.Ret); err != nil {
				return nil, err
			}
		}
		params, err := buildArgs(path, n.Params)
		if err != nil {
			return nil, err
		}
		return &ir.FuncPtr{Ret: ret, Args: params}, nil
	default:
		return nil, &ir.LoadError{
			Kind:   ir.LoadMalformedDecl,
			Path:   path,
			Reason: fmt.Sprintf("unknown type kind %q", n.Kind),
		}
	}
}

func buildCfg(path ir.Path, n *CfgNode) (*ir.Cfg, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case "define":
		return ir.CfgDefined(n.Name), nil
	case "keyvalue":
		return ir.CfgValue(n.Name, n.Value), nil
	case "all", "any":
		children := make([]*ir.Cfg, len(n.Children))
		for i, c := range n.Children {
			child, err := buildCfg(path, c)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		if n.Kind == "all" {
			return ir.CfgAllOf(children...), nil
		}
		return ir.CfgAnyOf(children...), nil
	case "not":
		if len(n.Children) != 1 {
			return nil, &ir.LoadError{Kind: ir.LoadMalformedDecl, Path: path, Reason: "cfg not() takes exactly one predicate"}
		}
		child, err := buildCfg(path, n.Children[0])
		if err != nil {
			return nil, err
		}
		return ir.CfgNotOf(child), nil
	default:
		return nil, &ir.LoadError{
			Kind:   ir.LoadMalformedDecl,
			Path:   path,
			Reason: fmt.Sprintf("unknown cfg kind %q", n.Kind),
		}
	}
}
