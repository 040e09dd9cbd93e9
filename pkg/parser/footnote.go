package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

var footnoteDefLine = regexp.MustCompile(`^\[\^([^\]]+)\]:(?: (.*))?$`)

// FootnotePrefix prefixes the generated footnote anchors.
const FootnotePrefix = "footnote_"

// FootnoteDefinitionParser records "[^label]: text" definitions, including
// the indented or blank lines that follow, and numbers footnotes once the
// document is complete.
type FootnoteDefinitionParser struct{}

// Name implements Named.
func (FootnoteDefinitionParser) Name() string { return "footnotedef" }

// ParseBlock implements BlockParser.
func (FootnoteDefinitionParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	m := footnoteDefLine.FindStringSubmatch(lines[0])
	if m == nil {
		return mdast.NoNode, 0
	}

	consumed := 1
	for consumed < len(lines) && (isBlank(lines[consumed]) || strings.HasPrefix(lines[consumed], " ")) {
		consumed++
	}
	for consumed > 1 && isBlank(lines[consumed-1]) {
		consumed--
	}

	body := append([]string{m[2]}, dedent(lines[1:consumed], 0)...)
	ctx.DefineFootnote(m[1], body)
	return ctx.Tree.Omit(), consumed
}

// Postprocess numbers footnotes and appends their definitions.
//
// Distinct labels are numbered from 1 in the order they are first cited;
// each citation then links to #footnote_<n> and shows <n>. The definitions
// of cited labels are emitted in number order as an ordered list inside a
// "footnotes" div at the end of the document. Labels never cited are
// dropped. Citations inside footnote bodies are numbered as they appear.
func (FootnoteDefinitionParser) Postprocess(ctx *Context) {
	numbers := make(map[string]int)
	var order []string

	next := 0
	numberPending := func() {
		for ; next < len(ctx.citations); next++ {
			cite := ctx.citations[next]
			n, ok := numbers[cite.Label]
			if !ok {
				order = append(order, cite.Label)
				n = len(order)
				numbers[cite.Label] = n
			}

			link := ctx.Tree.Node(cite.Link)
			link.SetAttr("href", "#"+FootnotePrefix+strconv.Itoa(n))
			if len(link.Children) > 0 {
				ctx.Tree.Node(link.Children[0]).Text = strconv.Itoa(n)
			}
		}
	}

	numberPending()
	if len(order) == 0 {
		return
	}

	list := ctx.element("ol")
	for i := 0; i < len(order); i++ {
		body, _ := ctx.Footnote(order[i])
		children := ctx.ParseBlocks(body)
		numberPending()

		item := ctx.element("li", children...)
		ctx.Tree.Node(item).SetAttr("id", FootnotePrefix+strconv.Itoa(i+1))
		ctx.Tree.Append(list, item)
	}

	wrapper := ctx.element("div", list)
	ctx.Tree.Node(wrapper).SetAttr("class", "footnotes")
	ctx.AppendRoot(wrapper)
}
