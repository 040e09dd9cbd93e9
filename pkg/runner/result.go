package runner

import "github.com/yaklabco/gomdtree/pkg/parser"

// FileOutcome is the result of processing one source file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Output is the rendered document. Nil when Error is set.
	Output *parser.Output

	// OutputPath is where the output was written, when writing to a
	// directory.
	OutputPath string

	// Written is false when an output file already held identical content.
	Written bool

	// Error is set if the file could not be read, rendered or written.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesWritten    int
	FilesUnchanged  int
	FilesFailed     int
}

// Result is the outcome of a run, in the sorted order of discovery.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesFailed > 0
}

// Errors returns the per-file errors in order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}
	r.Stats.FilesRendered++

	switch {
	case outcome.OutputPath == "":
	case outcome.Written:
		r.Stats.FilesWritten++
	default:
		r.Stats.FilesUnchanged++
	}
}
