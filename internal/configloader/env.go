package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/config"
)

// envVarPrefix is the prefix for all gomdtree environment variables.
const envVarPrefix = "GOMDTREE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TABS":             {field: "parser.tabs", typ: envTypeString, help: "Tab expansion: all or first"},
	"TAB_WIDTH":        {field: "parser.tab_width", typ: envTypeInt, help: "Spaces per tab"},
	"HEADING_IDS":      {field: "parser.heading_ids", typ: envTypeBool, help: "Add slug ids to headings: true or false"},
	"DETECT_LANGUAGES": {field: "parser.detect_languages", typ: envTypeBool, help: "Guess the language of untagged code: true or false"},
	"MAX_NESTING":      {field: "parser.max_nesting", typ: envTypeInt, help: "Maximum block nesting depth"},
	"FORMAT":           {field: "output.format", typ: envTypeString, help: "Output format: html, json or ast"},
	"EXTENSION":        {field: "output.extension", typ: envTypeString, help: "Extension of written files"},
	"OUTPUT_DIR":       {field: "output.dir", typ: envTypeString, help: "Directory receiving output files"},
	"STANDALONE":       {field: "output.standalone", typ: envTypeBool, help: "Wrap HTML in a complete page: true or false"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore patterns"},
	"JOBS":             {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with GOMDTREE_ (e.g., GOMDTREE_FORMAT) and read
// in name order, so the first invalid one is reported.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated value, trimming each element
// and dropping empty ones.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "parser.tabs":
		cfg.Parser.Tabs = config.TabMode(value)
	case "output.format":
		cfg.Output.Format = config.OutputFormat(value)
	case "output.extension":
		cfg.Output.Extension = value
	case "output.dir":
		cfg.Output.Dir = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "parser.heading_ids":
		cfg.Parser.HeadingIDs = config.Bool(value)
	case "parser.detect_languages":
		cfg.Parser.DetectLanguages = config.Bool(value)
	case "output.standalone":
		cfg.Output.Standalone = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "parser.tab_width":
		cfg.Parser.TabWidth = value
	case "parser.max_nesting":
		cfg.Parser.MaxNesting = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
