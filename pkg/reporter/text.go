package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// TextReporter writes rendered output for terminals and pipes.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Bodies held in memory go to Writer in
// discovery order; files written to disk are listed instead. Errors and
// the summary go to ErrorWriter so that piped output stays clean.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	var failed int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return failed, fmt.Errorf("report cancelled: %w", err)
		}

		switch {
		case file.Error != nil:
			failed++
			// Keep errors ordered relative to bodies already written.
			if err := r.bw.Flush(); err != nil {
				return failed, fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(r.opts.ErrorWriter, "%s %v\n", r.styles.Error.Render("error:"), file.Error)
		case file.OutputPath != "":
			status := r.styles.Success.Render("written")
			if !file.Written {
				status = r.styles.Dim.Render("unchanged")
			}
			fmt.Fprintf(r.bw, "%s %s %s (%s)\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Arrow.Render("->"),
				displayPath(file.OutputPath, r.opts.WorkingDir),
				status,
			)
		case file.Output != nil:
			r.bw.WriteString(file.Output.Body)
			if file.Output.Body != "" && !strings.HasSuffix(file.Output.Body, "\n") {
				r.bw.WriteByte('\n')
			}
		}
	}

	if r.opts.ShowSummary {
		if err := r.bw.Flush(); err != nil {
			return failed, fmt.Errorf("write output: %w", err)
		}
		fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}
