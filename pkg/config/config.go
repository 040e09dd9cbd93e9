// Package config defines the configuration types for gomdtree.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

// TabMode selects how the line normalizer expands literal tabs.
type TabMode string

const (
	// TabsAll expands every tab.
	TabsAll TabMode = "all"

	// TabsFirst expands only the first tab of a document.
	TabsFirst TabMode = "first"
)

// IsValid reports whether m is a known tab mode.
func (m TabMode) IsValid() bool {
	switch m {
	case TabsAll, TabsFirst:
		return true
	default:
		return false
	}
}

// OutputFormat selects what the render command writes.
type OutputFormat string

const (
	FormatHTML OutputFormat = "html"
	FormatJSON OutputFormat = "json"
	FormatAST  OutputFormat = "ast" // compact tree dump
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatJSON, FormatAST:
		return true
	default:
		return false
	}
}

// Default values.
const (
	DefaultTabWidth   = 4
	DefaultMaxNesting = 64
	DefaultExtension  = ".html"
)

// ParserConfig configures document parsing.
type ParserConfig struct {
	// Tabs selects tab expansion: "all" or "first".
	Tabs TabMode `mapstructure:"tabs" yaml:"tabs,omitempty"`

	// TabWidth is the number of spaces a tab expands to.
	TabWidth int `mapstructure:"tab_width" yaml:"tab_width,omitempty"`

	// HeadingIDs adds slug ids to headings.
	HeadingIDs *bool `mapstructure:"heading_ids" yaml:"heading_ids,omitempty"`

	// DetectLanguages guesses the language of untagged fenced code.
	DetectLanguages *bool `mapstructure:"detect_languages" yaml:"detect_languages,omitempty"`

	// MaxNesting bounds block recursion; deeper content is kept as text.
	MaxNesting int `mapstructure:"max_nesting" yaml:"max_nesting,omitempty"`
}

// OutputConfig configures what is written and where.
type OutputConfig struct {
	Format OutputFormat `mapstructure:"format" yaml:"format,omitempty"`

	// Extension replaces the source extension of written files.
	Extension string `mapstructure:"extension" yaml:"extension,omitempty"`

	// Dir receives one output file per input. Empty means stdout.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`

	// Standalone wraps HTML output in a complete page.
	Standalone *bool `mapstructure:"standalone" yaml:"standalone,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Tabs:            TabsAll,
			TabWidth:        DefaultTabWidth,
			HeadingIDs:      Bool(false),
			DetectLanguages: Bool(false),
			MaxNesting:      DefaultMaxNesting,
		},
		Output: OutputConfig{
			Format:     FormatHTML,
			Extension:  DefaultExtension,
			Standalone: Bool(false),
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Enabled dereferences an optional flag; nil is false.
func Enabled(b *bool) bool {
	return b != nil && *b
}
