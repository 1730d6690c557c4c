package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RenameRule is the case transform applied to every export name and
// type reference.
type RenameRule uint8

const (
	RenameNone RenameRule = iota
	RenameLowercase
	RenameUppercase
	RenamePascalCase
)

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
	titleCaser = cases.Title(language.Und, cases.NoLower)
)

// ParseRenameRule maps a config spelling to a RenameRule.
func ParseRenameRule(s string) (RenameRule, error) {
	switch s {
	case "", "none":
		return RenameNone, nil
	case "lowercase":
		return RenameLowercase, nil
	case "uppercase":
		return RenameUppercase, nil
	case "pascalcase":
		return RenamePascalCase, nil
	default:
		return RenameNone, fmt.Errorf("unknown rename_rule %q", s)
	}
}

// Apply transforms an identifier according to the rule.
func (r RenameRule) Apply(name string) string {
	switch r {
	case RenameLowercase:
		return lowerCaser.String(name)
	case RenameUppercase:
		return upperCaser.String(name)
	case RenamePascalCase:
		parts := strings.Split(name, "_")
		for i, p := range parts {
			parts[i] = titleCaser.String(p)
		}
		return strings.Join(parts, "")
	default:
		return name
	}
}
