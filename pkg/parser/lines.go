package parser

import (
	"regexp"
	"strings"
)

// TabMode selects how literal tabs are expanded before parsing.
type TabMode string

const (
	// TabsAll expands every tab.
	TabsAll TabMode = "all"

	// TabsFirst expands only the first tab of the whole document and leaves
	// the rest untouched. Kept for documents written against the older
	// behavior.
	TabsFirst TabMode = "first"
)

// DefaultTabWidth is the number of spaces a tab expands to.
const DefaultTabWidth = 4

var lineBreak = regexp.MustCompile(`\r?\n`)

// NormalizeLines turns raw document text into the right-trimmed line
// sequence consumed by the block engine:
//
//  1. expand tabs according to mode,
//  2. split on \n or \r\n,
//  3. right-trim every line,
//  4. join every line ending in an unescaped backslash with its successor,
//     dropping the backslash, and right-trim the result again.
func NormalizeLines(text string, mode TabMode, tabWidth int) []string {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	spaces := strings.Repeat(" ", tabWidth)

	if mode == TabsFirst {
		text = strings.Replace(text, "\t", spaces, 1)
	} else {
		text = strings.ReplaceAll(text, "\t", spaces)
	}

	raw := lineBreak.Split(text, -1)
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimRight(line, " \t\r\f\v"))
	}

	joined := lines[:0]
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		for endsWithContinuation(line) && i+1 < len(lines) {
			i++
			line = strings.TrimRight(line[:len(line)-1]+lines[i], " \t\r\f\v")
		}
		joined = append(joined, line)
	}
	return joined
}

// endsWithContinuation reports whether line ends in an odd run of backslashes.
func endsWithContinuation(line string) bool {
	count := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// leadingSpaces counts the spaces at the start of line.
func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// stripSpaces removes up to n leading spaces from line.
func stripSpaces(line string, n int) string {
	if s := leadingSpaces(line); s < n {
		n = s
	}
	return line[n:]
}

// dedent strips from every line the smallest indentation found among the
// non-blank lines, or fallback when all lines are blank.
func dedent(lines []string, fallback int) []string {
	minIndent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if n := leadingSpaces(line); minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		minIndent = fallback
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if isBlank(line) {
			out[i] = ""
			continue
		}
		out[i] = stripSpaces(line, minIndent)
	}
	return out
}
