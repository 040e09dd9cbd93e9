package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/fsutil"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

// Runner renders files with a shared Parser and Renderer. Each document
// is parsed with its own parse context, so workers share no state.
type Runner struct {
	Parser   *parser.Parser
	Renderer parser.Renderer
}

// New creates a Runner.
func New(p *parser.Parser, r parser.Renderer) *Runner {
	return &Runner{Parser: p, Renderer: r}
}

// Run discovers the files named by opts and processes them on a worker
// pool. Outcomes come back in discovery order regardless of completion
// order. Per-file failures are reported on the outcomes, not as an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	root, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				outcome := r.process(ctx, path, root, opts)
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// process reads, renders and optionally writes one file.
func (r *Runner) process(ctx context.Context, path, root string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}
	start := time.Now()

	source, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	out, err := r.Parser.Render(string(source), r.Renderer)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	outcome.Output = out

	if opts.OutputDir != "" {
		target := fsutil.OutputPath(path, root, opts.OutputDir, opts.OutputExt)
		written, err := fsutil.WriteIfChanged(ctx, target, []byte(out.Body), 0)
		if err != nil {
			outcome.Error = fmt.Errorf("write %s: %w", target, err)
			return outcome
		}
		outcome.OutputPath = target
		outcome.Written = written
	}

	logger.Debug("rendered",
		logging.FieldPath, path,
		logging.FieldBytes, len(out.Body),
		logging.FieldOutput, outcome.OutputPath,
		logging.FieldDuration, time.Since(start),
	)
	return outcome
}
