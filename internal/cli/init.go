package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdtree configuration file",
		Long: `Create a new .gomdtree.yml configuration file in the current directory
with the default parser and output settings.

Examples:
  gomdtree init                      Create minimal .gomdtree.yml
  gomdtree init --full               Document every setting and grammar
  gomdtree init --format json        Create .gomdtree.json instead
  gomdtree init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every setting and registered grammar")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .gomdtree.yml or .gomdtree.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", errUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gomdtree.yml"
		if flags.format == "json" {
			outputPath = ".gomdtree.json"
		}
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	absPath := resolveDir(workDir, outputPath)

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:     flags.full,
		Format:   flags.format,
		Grammars: parser.New().GrammarInfo(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.format == "json" {
		logger.Info("JSON files are loaded with --config; only YAML files are discovered automatically")
	}
	return nil
}
