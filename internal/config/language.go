package config

import "fmt"

// Language selects the output dialect.
type Language uint8

const (
	// LanguageC emits C-style declarations (typedef <type> <name>;).
	LanguageC Language = iota
	// LanguageCxx emits alias-style declarations (using <name> = <type>;).
	LanguageCxx
)

func (l Language) String() string {
	switch l {
	case LanguageC:
		return "c"
	case LanguageCxx:
		return "cxx"
	default:
		return fmt.Sprintf("Language(%d)", l)
	}
}

// ParseLanguage maps a config spelling to a Language.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "c", "C":
		return LanguageC, nil
	case "cxx", "c++", "cpp":
		return LanguageCxx, nil
	default:
		return LanguageC, fmt.Errorf("unknown language %q (expected c or cxx)", s)
	}
}
