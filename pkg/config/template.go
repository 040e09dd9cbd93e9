package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width of wrapped template comments.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting and lists the registered grammars.
	Full bool

	// Format is "yaml" (default) or "json". JSON drops the comments.
	Format string

	// Grammars describes the registered grammars for the full template.
	Grammars []GrammarInfo
}

// GrammarInfo describes one registered grammar for documentation.
type GrammarInfo struct {
	// Kind is "block", "inline" or "fence".
	Kind string
	Name string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	if opts.Full {
		writeFullTemplate(&buf, opts.Grammars)
	} else {
		buf.WriteString(minimalTemplate)
	}

	if opts.Format == "json" {
		return templateToJSON(buf.Bytes())
	}
	return buf.Bytes(), nil
}

const minimalTemplate = `parser:
  # Tab expansion: all, or first (only the first tab of a document)
  tabs: all
  # Add slug ids to headings
  # heading_ids: false

output:
  # html, json or ast
  format: html
  # Write files here instead of stdout
  # dir: site

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
`

func writeFullTemplate(buf *bytes.Buffer, grammars []GrammarInfo) {
	buf.WriteString(`parser:
  # Tab expansion: all, or first (only the first tab of a document)
  tabs: all
  # Spaces per tab
  tab_width: 4
  # Add slug ids to headings, with -1, -2 suffixes for repeats
  heading_ids: false
  # Guess the language of fenced code blocks that carry no tag
  detect_languages: false
  # Deeper block nesting is kept as plain text
  max_nesting: 64

output:
  # html, json or ast
  format: html
  # Extension of written files
  extension: .html
  # Write files here instead of stdout
  dir: ""
  # Wrap HTML in a complete page titled from the document's config fence
  standalone: false

# File patterns to skip (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"
`)

	if len(grammars) == 0 {
		return
	}
	buf.WriteString("\n# Registered grammars, in precedence order:\n")
	for _, kind := range []string{"block", "inline", "fence"} {
		var names []string
		for _, g := range grammars {
			if g.Kind == kind {
				names = append(names, g.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(buf, "#   %s: %s\n", kind, wrapComment(strings.Join(names, ", "), commentWrapWidth))
	}
}

// wrapComment wraps text to maxWidth, continuing lines as comments.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n#     ")
}

// templateToJSON re-encodes the uncommented settings of a YAML template.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var settings map[string]any
	if err := yaml.Unmarshal(yamlContent, &settings); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// DefaultTemplateHeader returns the header of generated configuration files.
func DefaultTemplateHeader() string {
	return `# gomdtree configuration
# See: https://github.com/yaklabco/gomdtree`
}
