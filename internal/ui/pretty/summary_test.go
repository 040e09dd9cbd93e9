package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stats      runner.Stats
		contains   []string
		notContain []string
	}{
		{
			name:       "stdout run",
			stats:      runner.Stats{FilesDiscovered: 3, FilesRendered: 3},
			contains:   []string{"Summary", "Files found:     3", "Files rendered:  3", "Render complete"},
			notContain: []string{"Files written:", "Files failed:"},
		},
		{
			name:     "output directory",
			stats:    runner.Stats{FilesDiscovered: 4, FilesRendered: 4, FilesWritten: 1, FilesUnchanged: 3},
			contains: []string{"Files written:   1", "Files unchanged: 3", "Render complete"},
		},
		{
			name:       "failures",
			stats:      runner.Stats{FilesDiscovered: 2, FilesRendered: 1, FilesFailed: 1},
			contains:   []string{"Files failed:    1", "Render failed"},
			notContain: []string{"Render complete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := pretty.NewStyles(false).FormatSummary(tt.stats)
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
			for _, unwanted := range tt.notContain {
				assert.NotContains(t, result, unwanted)
			}
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no files",
			stats: runner.Stats{},
			want:  "No markdown files found\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesRendered: 1},
			want:  "Rendered 1 file\n",
		},
		{
			name:  "written and unchanged",
			stats: runner.Stats{FilesDiscovered: 5, FilesRendered: 5, FilesWritten: 2, FilesUnchanged: 3},
			want:  "Rendered 5 files, 2 written, 3 unchanged\n",
		},
		{
			name:  "failed",
			stats: runner.Stats{FilesDiscovered: 3, FilesRendered: 2, FilesFailed: 1},
			want:  "Rendered 2 files, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.NewStyles(false).FormatSummaryOneLine(tt.stats))
		})
	}
}
