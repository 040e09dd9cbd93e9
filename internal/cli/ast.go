package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/internal/ui/pretty"
	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/fsutil"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// treeIndentAllowance is reserved for tree branches when truncating text
// leaves to the terminal width.
const treeIndentAllowance = 16

type astFlags struct {
	parserFlags

	format string
	width  int
}

// astExport is the JSON and YAML shape of a document.
type astExport struct {
	Config map[string]any   `json:"config,omitempty" yaml:"config,omitempty"`
	Nodes  []*mdast.Element `json:"nodes" yaml:"nodes"`
}

func newASTCommand() *cobra.Command {
	flags := &astFlags{}

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the document tree of a Markdown file",
		Long: `Parse a Markdown file and print its document tree.

Reads standard input when no file is given or the file is "-".

Examples:
  gomdtree ast README.md                 # Styled tree
  gomdtree ast --format yaml README.md   # Tree as YAML
  echo '*hi*' | gomdtree ast --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, args, flags)
		},
	}

	addParserFlags(cmd, &flags.parserFlags)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "tree", "output format: tree, json, yaml")
	cmd.Flags().IntVar(&flags.width, "width", 0,
		"truncate tree text to this width (0 = terminal width, -1 = never)")

	return cmd
}

func runAST(cmd *cobra.Command, args []string, flags *astFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	switch flags.format {
	case "tree", "json", "yaml":
	default:
		return fmt.Errorf("%w: invalid format %q: must be tree, json or yaml", errUsage, flags.format)
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)
	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	var source []byte
	if len(args) == 0 || args[0] == "-" {
		source, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		source, err = fsutil.ReadSource(ctx, resolveDir(workDir, args[0]))
		if err != nil {
			return err
		}
	}

	doc := newParser(cfg).Parse(string(source))
	logger.Debug("parsed document", logging.FieldNodes, doc.Tree.Len(), logging.FieldBytes, len(source))

	out := cmd.OutOrStdout()
	switch flags.format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(astExport{Config: doc.Config, Nodes: doc.Export()}); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(astExport{Config: doc.Config, Nodes: doc.Export()}); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
	default:
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
		if _, err := io.WriteString(out, styles.FormatTree(doc, treeWidth(flags.width, out))); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
	}
	return nil
}

// treeWidth resolves the --width flag. Auto width applies only when out is
// a terminal.
func treeWidth(width int, out io.Writer) int {
	if width != 0 {
		return max(width, 0)
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= treeIndentAllowance {
		return 0
	}
	return cols - treeIndentAllowance
}
