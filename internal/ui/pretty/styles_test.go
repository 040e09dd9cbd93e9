package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
)

func allStyles(s *pretty.Styles) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"Error":        s.Error,
		"Warning":      s.Warning,
		"Success":      s.Success,
		"Failure":      s.Failure,
		"FilePath":     s.FilePath,
		"Arrow":        s.Arrow,
		"SummaryTitle": s.SummaryTitle,
		"SummaryValue": s.SummaryValue,
		"Element":      s.Element,
		"Attr":         s.Attr,
		"Text":         s.Text,
		"Enumerator":   s.Enumerator,
		"Dim":          s.Dim,
		"Bold":         s.Bold,
	}
}

func TestNewStyles_Plain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, style := range allStyles(styles) {
		assert.Equal(t, "node", style.Render("node"), name)
	}
}

func TestNewStyles_Color(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	for name, style := range allStyles(styles) {
		assert.Contains(t, style.Render("node"), "node", name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode   string
		writer *bytes.Buffer
		want   bool
	}{
		{mode: "always", writer: &buf, want: true},
		{mode: "never", writer: &buf, want: false},
		{mode: "auto", writer: &buf, want: false},
		{mode: "", writer: &buf, want: false},
		{mode: "sometimes", writer: &buf, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer), tt.mode)
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}
