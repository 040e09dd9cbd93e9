package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Column alignments.
const (
	AlignNone   = ""
	AlignLeft   = "left"
	AlignRight  = "right"
	AlignCenter = "center"
)

var alignCell = regexp.MustCompile(`^\s*:?-+:?\s*$`)

// TableParser parses pipe tables.
//
// Rows keep the number of cells they were written with; alignments apply
// by column index and cells beyond the alignment row get none.
type TableParser struct{}

// Name implements Named.
func (TableParser) Name() string { return "table" }

// ParseBlock implements BlockParser.
func (TableParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	var rows [][]string
	for _, line := range lines {
		if !strings.HasPrefix(line, "|") {
			break
		}
		rows = append(rows, SplitRow(line))
	}
	consumed := len(rows)
	if consumed == 0 {
		return mdast.NoNode, 0
	}

	var (
		header []string
		aligns []string
		data   = rows
	)
	switch {
	case isAlignRow(rows[0]):
		aligns = parseAligns(rows[0])
		data = rows[1:]
	case len(rows) > 1 && isAlignRow(rows[1]):
		header = rows[0]
		aligns = parseAligns(rows[1])
		data = rows[2:]
	}
	if len(data) == 0 {
		return mdast.NoNode, 0
	}

	table := ctx.element("table")
	if header != nil {
		head := ctx.element("thead", tableRow(ctx, "th", header, aligns))
		ctx.Tree.Append(table, head)
	}
	body := ctx.element("tbody")
	for _, row := range data {
		ctx.Tree.Append(body, tableRow(ctx, "td", row, aligns))
	}
	ctx.Tree.Append(table, body)
	return table, consumed
}

func tableRow(ctx *Context, cellName string, cells, aligns []string) mdast.NodeID {
	row := ctx.element("tr")
	for i, cell := range cells {
		node := ctx.element(cellName, ctx.ParseInline(cell)...)
		if i < len(aligns) && aligns[i] != AlignNone {
			ctx.Tree.Node(node).SetAttr("style", "text-align: "+aligns[i])
		}
		ctx.Tree.Append(row, node)
	}
	return row
}

// SplitRow splits a table line into trimmed cell texts, dropping the empty
// fields produced by the bounding pipes. Escaped pipes do not split.
func SplitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !isEscaped(line, len(line)-1) {
		line = line[:len(line)-1]
	}

	var cells []string
	for {
		at := IndexUnescaped(line, 0, "|")
		if at < 0 {
			cells = append(cells, strings.TrimSpace(line))
			return cells
		}
		cells = append(cells, strings.TrimSpace(line[:at]))
		line = line[at+1:]
	}
}

func isAlignRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !alignCell.MatchString(cell) {
			return false
		}
	}
	return true
}

func parseAligns(cells []string) []string {
	aligns := make([]string, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case left:
			aligns[i] = AlignLeft
		case right:
			aligns[i] = AlignRight
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns
}
