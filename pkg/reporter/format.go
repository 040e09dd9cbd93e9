package reporter

import "fmt"

// Format represents a report format.
type Format string

// Report formats supported by the reporter.
const (
	// FormatText writes rendered bodies to the output writer, or one line
	// per written file when rendering to a directory.
	FormatText Format = "text"

	// FormatJSON writes one JSON document describing every file.
	FormatJSON Format = "json"

	// FormatSummary writes only the run statistics.
	FormatSummary Format = "summary"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "summary":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unknown report format %q; valid formats: text, json, summary", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}
