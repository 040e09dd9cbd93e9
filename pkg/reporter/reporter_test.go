package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/parser"
	"github.com/yaklabco/gomdtree/pkg/reporter"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/a.md", Output: &parser.Output{Body: "<p>a</p>\n", Config: map[string]any{"title": "A"}}},
			{Path: "/work/b.md", Error: errors.New("read /work/b.md: permission denied")},
			{Path: "/work/c.md", Output: &parser.Output{Body: "c"}},
		},
		Stats: runner.Stats{FilesDiscovered: 3, FilesRendered: 2, FilesFailed: 1},
	}
}

func newReporter(t *testing.T, opts reporter.Options) (reporter.Reporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	opts.Color = "never"
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &out, &errOut
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
	assert.False(t, reporter.Format("xml").IsValid())
}

func TestTextReporter_Bodies(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true})
	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Equal(t, 1, failed)
	assert.Equal(t, "<p>a</p>\nc\n", out.String())
	assert.Equal(t,
		"error: read /work/b.md: permission denied\nRendered 2 files, 1 failed\n",
		errOut.String())
}

func TestTextReporter_WrittenFiles(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/a.md", OutputPath: "/work/out/a.html", Written: true, Output: &parser.Output{Body: "x"}},
			{Path: "/work/b.md", OutputPath: "/work/out/b.html", Output: &parser.Output{Body: "y"}},
		},
		Stats: runner.Stats{FilesDiscovered: 2, FilesRendered: 2, FilesWritten: 1, FilesUnchanged: 1},
	}

	rep, out, errOut := newReporter(t, reporter.Options{WorkingDir: "/work"})
	failed, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Zero(t, failed)
	assert.Equal(t,
		"a.md -> out/a.html (written)\nb.md -> out/b.html (unchanged)\n",
		out.String())
	assert.Empty(t, errOut.String())
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	rep, out, errOut := newReporter(t, reporter.Options{ShowSummary: true})
	failed, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, failed)
	assert.Empty(t, out.String())
	assert.Equal(t, "No markdown files found\n", errOut.String())
}

func TestTextReporter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, _, _ := newReporter(t, reporter.Options{})
	_, err := rep.Report(ctx, sampleResult())
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: "/work"})
	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	require.Len(t, decoded.Files, 3)

	first := decoded.Files[0]
	assert.Equal(t, "a.md", first.Path)
	require.NotNil(t, first.Body)
	assert.Equal(t, "<p>a</p>\n", *first.Body)
	assert.Equal(t, map[string]any{"title": "A"}, first.Config)

	assert.Equal(t, "read /work/b.md: permission denied", decoded.Files[1].Error)
	assert.Nil(t, decoded.Files[1].Body)

	assert.Equal(t, reporter.JSONSummary{FilesDiscovered: 3, FilesRendered: 2, FilesFailed: 1}, decoded.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatJSON, Compact: true})
	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"version":"1.0.0","files":[],"summary":{"filesDiscovered":0,"filesRendered":0,"filesWritten":0,"filesUnchanged":0,"filesFailed":0}}`,
		out.String())
	assert.NotContains(t, out.String(), "\n  ")
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	rep, out, _ := newReporter(t, reporter.Options{Format: reporter.FormatSummary})
	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "Files found:     3")
	assert.Contains(t, out.String(), "Render failed")
}
