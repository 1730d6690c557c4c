package ir

// Path is the canonical name of a declaration. After mangling every
// concrete declaration has a globally unique Path.
type Path string

// NoPath marks the absence of a path.
const NoPath Path = ""

// NewPath builds a path from its canonical spelling.
func NewPath(name string) Path {
	return Path(name)
}

// Name returns the identifier spelling of the path.
func (p Path) Name() string {
	return string(p)
}

func (p Path) String() string {
	return string(p)
}

// IsValid reports whether the path is non-empty.
func (p Path) IsValid() bool {
	return p != NoPath
}
