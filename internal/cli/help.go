package cli

import (
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtree/internal/ui/pretty"
)

// helpTheme holds the styles used by command help.
type helpTheme struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	example    lipgloss.Style
	dim        lipgloss.Style
}

func newHelpTheme(colorEnabled bool) helpTheme {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpTheme{plain, plain, plain, plain, plain, plain}
	}
	return helpTheme{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// flagLine splits a pflag usage line into indent, flag names with type,
// and description. pflag pads the gap to at least two spaces.
var flagLine = regexp.MustCompile(`^(\s*)(\S.*?)\s{2,}(\S.*)$`)

// styleFlags styles the FlagUsages of a flag set line by line.
func (h helpTheme) styleFlags(flags interface{ FlagUsages() string }) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		m := flagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tokens := strings.Fields(m[2])
		for j, token := range tokens {
			if name, comma := strings.CutSuffix(token, ","); strings.HasPrefix(name, "-") {
				tokens[j] = h.flag.Render(name)
				if comma {
					tokens[j] += ","
				}
			} else {
				tokens[j] = h.dim.Render(token)
			}
		}
		lines[i] = m[1] + strings.Join(tokens, " ") + "   " + m[3]
	}
	return strings.Join(lines, "\n")
}

const usageTemplate = `{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}{{if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}{{end}}{{if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}{{if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}{{if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

// applyHelp installs styled help and usage output on cmd and, through
// inheritance, its subcommands.
func applyHelp(cmd *cobra.Command, colorMode string, w io.Writer) {
	theme := newHelpTheme(pretty.IsColorEnabled(colorMode, w))
	funcs := template.FuncMap{
		"heading":    theme.heading.Render,
		"command":    theme.command.Render,
		"subcommand": theme.subcommand.Render,
		"example":    theme.example.Render,
		"flags":      theme.styleFlags,
		"rpad":       rpad,
		"trimRight":  trimRightLines,
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage.Execute(c.OutOrStderr(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimRightLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
