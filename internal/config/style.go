package config

import "fmt"

// Style selects how record declarations are spelled in the C dialect:
// as anonymous typedefs, as bare tags, or as named typedefs. Under tag
// style every reference to a record carries its tag keyword. The alias
// dialect ignores the style.
type Style uint8

const (
	// StyleType emits `typedef struct { ... } Name;`; references are
	// plain identifiers.
	StyleType Style = iota
	// StyleTag emits `struct Name { ... };`; references are spelled
	// `struct Name`.
	StyleTag
	// StyleBoth emits `typedef struct Name { ... } Name;`; references
	// are plain identifiers.
	StyleBoth
)

func (s Style) String() string {
	switch s {
	case StyleType:
		return "type"
	case StyleTag:
		return "tag"
	case StyleBoth:
		return "both"
	default:
		return fmt.Sprintf("Style(%d)", s)
	}
}

// ParseStyle maps a config spelling to a Style.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "type":
		return StyleType, nil
	case "tag":
		return StyleTag, nil
	case "both":
		return StyleBoth, nil
	default:
		return StyleType, fmt.Errorf("unknown style %q (expected type, tag or both)", s)
	}
}
