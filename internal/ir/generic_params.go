package ir

// GenericParams is the ordered list of a declaration's generic
// parameter names. An empty list means the declaration is concrete.
type GenericParams []string

// Len returns the number of generic parameters.
func (g GenericParams) Len() int {
	return len(g)
}

// Contains reports whether name is one of the parameters.
func (g GenericParams) Contains(name string) bool {
	for _, p := range g {
		if p == name {
			return true
		}
	}
	return false
}
