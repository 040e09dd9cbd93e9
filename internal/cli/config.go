package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

var (
	errConfigLoad = errors.New("failed to load configuration")
	errUsage      = errors.New("invalid usage")
)

// parserFlags are the parser settings shared by render and ast.
type parserFlags struct {
	tabs            string
	tabWidth        int
	headingIDs      bool
	detectLanguages bool
	maxNesting      int
}

func addParserFlags(cmd *cobra.Command, flags *parserFlags) {
	cmd.Flags().StringVar(&flags.tabs, "tabs", "", "tab expansion: all, first")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "spaces per tab")
	cmd.Flags().BoolVar(&flags.headingIDs, "heading-ids", false, "add slug ids to headings")
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false,
		"guess the language of untagged fenced code")
	cmd.Flags().IntVar(&flags.maxNesting, "max-nesting", 0, "block nesting limit")
}

// apply copies the parser flags the user set into cfg.
func (f *parserFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	cfg.Parser.Tabs = config.TabMode(f.tabs)
	cfg.Parser.TabWidth = f.tabWidth
	cfg.Parser.MaxNesting = f.maxNesting
	if cmd.Flags().Changed("heading-ids") {
		cfg.Parser.HeadingIDs = config.Bool(f.headingIDs)
	}
	if cmd.Flags().Changed("detect-languages") {
		cfg.Parser.DetectLanguages = config.Bool(f.detectLanguages)
	}
}

// workingDir returns the --chdir directory, or the process working directory.
func workingDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString(flagChdir)
	if err != nil {
		return "", fmt.Errorf("get %s flag: %w", flagChdir, err)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		return "auto"
	}
	return mode
}

// loadConfig merges every configuration layer with the flags in cliCfg.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get %s flag: %w", flagConfig, err)
	}
	if configPath != "" {
		configPath = resolveDir(workDir, configPath)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errConfigLoad, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldTabs, cfg.Parser.Tabs,
		logging.FieldFormat, cfg.Output.Format,
		logging.FieldJobs, cfg.Jobs,
	)
	return cfg, nil
}

// commandContext returns the command context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

func newParser(cfg *config.Config) *parser.Parser {
	return parser.New(parser.WithConfig(cfg.Parser))
}

// resolveDir makes dir absolute against workDir.
func resolveDir(workDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(workDir, dir)
}
