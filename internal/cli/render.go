package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/parser"
	"github.com/yaklabco/gomdtree/pkg/render/html"
	"github.com/yaklabco/gomdtree/pkg/reporter"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

type renderFlags struct {
	parserFlags

	format     string
	outputDir  string
	extension  string
	standalone bool
	ignore     []string
	jobs       int
	report     string
	compact    bool
	summary    bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addParserFlags(cmd, &flags.parserFlags)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: html, json, ast")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "",
		"write one file per input under this directory instead of stdout")
	cmd.Flags().StringVar(&flags.extension, "ext", "", "extension of written files (default depends on format)")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", false, "wrap HTML output in a complete page")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.report, "report", "text", "report format: text, json, summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a one-line summary to stderr")

	return cmd
}

const renderLongDescription = `Render Markdown files as HTML, JSON or a compact tree dump.

By default, renders all .md and .markdown files in the current directory
and subdirectories to stdout. Specify paths to render specific files or
directories, and --output-dir to write one file per input.

Examples:
  gomdtree render README.md                 # HTML to stdout
  gomdtree render docs/ -o site             # docs/**/*.md to site/**/*.html
  gomdtree render --standalone README.md    # Complete HTML page
  gomdtree render --format json notes.md    # Document tree as JSON
  gomdtree render --report json -o out .    # Machine-readable run report`

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	reportFormat, err := reporter.ParseFormat(flags.report)
	if err != nil {
		return errors.Join(errUsage, err)
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	cliCfg := &config.Config{
		Output: config.OutputConfig{
			Format:    config.OutputFormat(flags.format),
			Dir:       flags.outputDir,
			Extension: flags.extension,
		},
		Ignore: flags.ignore,
		Jobs:   flags.jobs,
	}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("standalone") {
		cliCfg.Output.Standalone = config.Bool(flags.standalone)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir
	if cfg.Output.Dir != "" {
		runOpts.OutputDir = resolveDir(workDir, cfg.Output.Dir)
		runOpts.OutputExt = outputExtension(cfg, cmd.Flags().Changed("ext"))
	}

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	start := time.Now()
	result, err := runner.New(newParser(cfg), renderer).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}
	logger.Debug("render run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, time.Since(start),
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      reportFormat,
		Color:       colorMode(cmd),
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrRenderFailures
	}
	return nil
}

// newRenderer returns the renderer for the configured output format.
func newRenderer(cfg *config.Config) (parser.Renderer, error) {
	switch cfg.Output.Format {
	case config.FormatHTML, "":
		return html.New(html.WithStandalone(config.Enabled(cfg.Output.Standalone))), nil
	case config.FormatJSON:
		return parser.RenderFunc(renderJSON), nil
	case config.FormatAST:
		return parser.RenderFunc(renderDump), nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", errUsage, cfg.Output.Format)
	}
}

func renderJSON(doc *mdast.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func renderDump(doc *mdast.Document) (string, error) {
	return doc.Dump() + "\n", nil
}

// formatExtensions are the written-file extensions per format when the
// configured extension is still the HTML default.
var formatExtensions = map[config.OutputFormat]string{
	config.FormatHTML: ".html",
	config.FormatJSON: ".json",
	config.FormatAST:  ".ast",
}

// outputExtension keeps an explicit --ext or a configured non-default
// extension, and otherwise follows the output format.
func outputExtension(cfg *config.Config, explicit bool) string {
	if explicit || cfg.Output.Extension != config.DefaultExtension {
		return cfg.Output.Extension
	}
	if ext, ok := formatExtensions[cfg.Output.Format]; ok {
		return ext
	}
	return cfg.Output.Extension
}
