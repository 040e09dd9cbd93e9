package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// SummaryReporter writes only the run statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}
	if _, err := fmt.Fprint(r.opts.Writer, r.styles.FormatSummary(stats)); err != nil {
		return stats.FilesFailed, fmt.Errorf("write summary: %w", err)
	}
	return stats.FilesFailed, nil
}
