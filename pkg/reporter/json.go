package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdtree/pkg/runner"
)

// jsonReportVersion is bumped when the report layout changes.
const jsonReportVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome. Body is set only for
// output kept in memory.
type JSONFileResult struct {
	Path       string         `json:"path"`
	OutputPath string         `json:"outputPath,omitempty"`
	Written    bool           `json:"written,omitempty"`
	Config     map[string]any `json:"config,omitempty"`
	Body       *string        `json:"body,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesRendered   int `json:"filesRendered"`
	FilesWritten    int `json:"filesWritten"`
	FilesUnchanged  int `json:"filesUnchanged"`
	FilesFailed     int `json:"filesFailed"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonReportVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:       displayPath(file.Path, r.opts.WorkingDir),
			OutputPath: displayPath(file.OutputPath, r.opts.WorkingDir),
			Written:    file.Written,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		if file.Output != nil {
			entry.Config = file.Output.Config
			if file.OutputPath == "" {
				body := file.Output.Body
				entry.Body = &body
			}
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesRendered:   stats.FilesRendered,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesFailed:     stats.FilesFailed,
	}
	return output
}
