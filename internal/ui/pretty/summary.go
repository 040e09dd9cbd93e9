package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 12 files, 3 written, 9 unchanged, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No markdown files found") + "\n"
	}

	parts := []string{fmt.Sprintf("Rendered %d %s", stats.FilesRendered, plural(stats.FilesRendered))}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files rendered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)) + "\n")

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:   " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesUnchanged > 0 {
		builder.WriteString("  Files unchanged: " +
			s.Dim.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")
	}
	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:    " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	builder.WriteString("\n")

	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Render failed"))
	} else {
		builder.WriteString(s.Success.Render("Render complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
