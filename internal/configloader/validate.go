package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdtree/pkg/config"
)

// maxTabWidth bounds parser.tab_width.
const maxTabWidth = 16

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "parser.tabs").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings. Zero values
// are accepted everywhere since they mean "not set".
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	p := cfg.Parser
	if p.Tabs != "" && !p.Tabs.IsValid() {
		result.fail("parser.tabs", p.Tabs, "invalid tab mode %q; must be one of: all, first", p.Tabs)
	}
	if p.TabWidth < 0 || p.TabWidth > maxTabWidth {
		result.fail("parser.tab_width", p.TabWidth, "tab_width must be between 1 and %d", maxTabWidth)
	}
	if p.MaxNesting < 0 {
		result.fail("parser.max_nesting", p.MaxNesting, "max_nesting must be >= 1")
	}

	out := cfg.Output
	if out.Format != "" && !out.Format.IsValid() {
		result.fail("output.format", out.Format, "invalid format %q; must be one of: html, json, ast", out.Format)
	}
	if out.Extension != "" && !strings.HasPrefix(out.Extension, ".") {
		result.fail("output.extension", out.Extension, "extension %q must start with a dot", out.Extension)
	}
	if config.Enabled(out.Standalone) && out.Format != "" && out.Format != config.FormatHTML {
		result.warn("output.standalone", true, "standalone only applies to html output; ignored for %s", out.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
