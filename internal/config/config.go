package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config controls one generation run.
type Config struct {
	// Language selects the output dialect.
	Language Language
	// Style selects the record declaration spelling in the C dialect.
	Style Style
	// Header and Trailer are verbatim text around the generated body.
	Header  string
	Trailer string
	// IncludeGuard, when non-empty, wraps the output in #ifndef/#define/#endif.
	IncludeGuard string
	// AutogenWarning is an optional comment emitted at the very top.
	AutogenWarning string
	// Documentation enables doc comment rendering.
	Documentation bool
	// SimplifyStandardTypes folds size-named library spellings into
	// fixed-width primitives before anything else looks at the types.
	SimplifyStandardTypes bool
	// Export controls naming and the export root set.
	Export ExportConfig
	// Defines maps cfg predicate spellings ("feature = foo", "unix") to
	// C defines used in emitted guards.
	Defines map[string]string
}

// ExportConfig controls export naming and the root set.
type ExportConfig struct {
	// Prefix is prepended to every export name and type reference.
	Prefix string
	// RenameRule is the case transform applied before prefixing.
	RenameRule RenameRule
	// Include lists the export roots, in output order. Empty means
	// every loaded declaration is a root.
	Include []string
}

// Rename applies the case rule and prefix to an identifier.
// It is used for declaration export names and for every path
// reference inside type expressions, so the two always agree.
func (e *ExportConfig) Rename(name string) string {
	return e.Prefix + e.RenameRule.Apply(name)
}

// Default returns the configuration used when no bindery.toml exists.
func Default() *Config {
	return &Config{
		Language:              LanguageC,
		Documentation:         true,
		SimplifyStandardTypes: true,
	}
}

type tomlConfig struct {
	Language              string            `toml:"language"`
	Style                 string            `toml:"style"`
	Header                string            `toml:"header"`
	Trailer               string            `toml:"trailer"`
	IncludeGuard          string            `toml:"include_guard"`
	AutogenWarning        string            `toml:"autogen_warning"`
	Documentation         *bool             `toml:"documentation"`
	SimplifyStandardTypes *bool             `toml:"simplify_standard_types"`
	Export                tomlExportConfig  `toml:"export"`
	Defines               map[string]string `toml:"defines"`
}

type tomlExportConfig struct {
	Prefix     string   `toml:"prefix"`
	RenameRule string   `toml:"rename_rule"`
	Include    []string `toml:"include"`
}

// Load reads and validates a bindery.toml.
func Load(path string) (*Config, error) {
	var raw tomlConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		return nil, fmt.Errorf("%s: unknown configuration key %q", path, key)
	}

	cfg := Default()
	if meta.IsDefined("language") {
		lang, err := ParseLanguage(raw.Language)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.Language = lang
	}
	style, err := ParseStyle(raw.Style)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Style = style
	cfg.Header = raw.Header
	cfg.Trailer = raw.Trailer
	cfg.IncludeGuard = raw.IncludeGuard
	cfg.AutogenWarning = raw.AutogenWarning
	if raw.Documentation != nil {
		cfg.Documentation = *raw.Documentation
	}
	if raw.SimplifyStandardTypes != nil {
		cfg.SimplifyStandardTypes = *raw.SimplifyStandardTypes
	}
	cfg.Export.Prefix = raw.Export.Prefix
	rule, err := ParseRenameRule(raw.Export.RenameRule)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Export.RenameRule = rule
	cfg.Export.Include = raw.Export.Include
	cfg.Defines = raw.Defines
	return cfg, nil
}

// LoadOrDefault loads the given config path if set, otherwise looks for
// bindery.toml in the working directory and falls back to defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat("bindery.toml"); err == nil {
		return Load("bindery.toml")
	}
	return Default(), nil
}
