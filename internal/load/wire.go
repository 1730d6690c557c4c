package load

// Current schema version - increment when the payload format changes.
const Schema uint16 = 1

// Payload is the handoff format between the external loader and this
// engine: one schema-versioned msgpack document holding every
// pre-parsed declaration of a run.
type Payload struct {
	Schema uint16 `msgpack:"schema"`
	Decls  []Decl `msgpack:"decls"`
}

// Decl is one pre-parsed declaration. Kind selects which of the
// payload fields are meaningful.
type Decl struct {
	Kind          string           `msgpack:"kind"`
	Path          string           `msgpack:"path"`
	GenericParams []string         `msgpack:"generic_params"`
	ScopeCfg      *CfgNode         `msgpack:"scope_cfg"`
	Cfg           *CfgNode         `msgpack:"cfg"`
	Annotations   []AnnotationNode `msgpack:"annotations"`
	Doc           []string         `msgpack:"doc"`

	// typedef
	Aliased *TypeNode `msgpack:"aliased"`
	// struct, union
	Fields []FieldNode `msgpack:"fields"`
	// enum
	Variants []VariantNode `msgpack:"variants"`
	// function
	Ret  *TypeNode   `msgpack:"ret"`
	Args []FieldNode `msgpack:"args"`
	// static
	Ty *TypeNode `msgpack:"ty"`
}

// Declaration kind spellings.
const (
	KindTypedef  = "typedef"
	KindStruct   = "struct"
	KindEnum     = "enum"
	KindUnion    = "union"
	KindOpaque   = "opaque"
	KindFunction = "function"
	KindStatic   = "static"
)

// TypeNode is the wire form of a type expression.
type TypeNode struct {
	Kind   string      `msgpack:"kind"` // primitive|ptr|ref|param|array|funcptr
	Name   string      `msgpack:"name"` // primitive spelling, ref path, param name
	Const  bool        `msgpack:"const"`
	Elem   *TypeNode   `msgpack:"elem"`
	Args   []*TypeNode `msgpack:"args"`
	Ret    *TypeNode   `msgpack:"ret"`
	Params []FieldNode `msgpack:"params"`
	Len    int64       `msgpack:"len"`
}

// CfgNode is the wire form of a conditional-compilation predicate.
type CfgNode struct {
	Kind     string     `msgpack:"kind"` // define|keyvalue|all|any|not
	Name     string     `msgpack:"name"`
	Value    string     `msgpack:"value"`
	Children []*CfgNode `msgpack:"children"`
}

// AnnotationNode is one key/value annotation on the wire.
type AnnotationNode struct {
	Key   string `msgpack:"key"`
	Value string `msgpack:"value"`
}

// FieldNode is a named member or argument on the wire.
type FieldNode struct {
	Name string    `msgpack:"name"`
	Ty   *TypeNode `msgpack:"ty"`
}

// VariantNode is one enum constant on the wire.
type VariantNode struct {
	Name  string `msgpack:"name"`
	Value int64  `msgpack:"value"`
}
