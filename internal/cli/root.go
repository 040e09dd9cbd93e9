// Package cli provides the Cobra command structure for gomdtree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names shared by subcommands.
const (
	flagConfig = "config"
	flagColor  = "color"
	flagChdir  = "chdir"
)

// NewRootCommand creates the root gomdtree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdtree",
		Short: "Parse Markdown into a document tree and render it",
		Long: `gomdtree parses Markdown into an abstract syntax tree and renders it as
HTML, as JSON, or as a compact tree dump.

Block grammars (headings, lists, tables, fenced code, footnotes, reference
links) and inline grammars (emphasis, code, links, images) are applied in a
fixed precedence order. Fenced blocks can carry per-document configuration,
verbatim HTML, or content to omit from the output.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringP(flagChdir, "C", "",
		"run as if started in this directory")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newASTCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd, color, os.Stdout)

	return rootCmd
}
