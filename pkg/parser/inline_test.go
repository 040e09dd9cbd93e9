package parser_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtree/pkg/parser"
)

func TestParse_Inline(t *testing.T) {
	t.Parallel()

	runDumpCases(t, []dumpCase{
		{name: "strong with nested em", src: "**bold *it* bold**", want: `strong["bold " em["it"] " bold"]`},
		{name: "em with nested strong", src: "*a **b** c*", want: `em["a " strong["b"] " c"]`},
		{name: "strong closing inside em", src: "*em inside **strong***", want: `em["em inside " strong["strong"]]`},
		{name: "triple star", src: "a ***bold***", want: `"a " strong[em["bold"]]`},
		{name: "unclosed strong inside em is em text", src: "*x **y*", want: `em["x "] em["y"]`},
		{name: "unclosed span runs to end", src: "a *open", want: `"a " em["open"]`},
		{name: "escaped delimiters", src: `\*not em\*`, want: `"*not em*"`},
		{name: "code keeps escapes", src: "`a\\*b`", want: `code["a\\*b"]`},
		{name: "code hides markup", src: "`*x*` *y*", want: `code["*x*"] " " em["y"]`},
		{name: "strikethrough beats subscript", src: "a ~~b~~ ~c~", want: `"a " del["b"] " " sub["c"]`},
		{name: "superscript", src: "x^2^", want: `"x" sup["2"]`},
		{name: "link", src: `[text](http://x.com "T")`, want: `a{href=http://x.com,title=T}["text"]`},
		{name: "link label markup", src: "[*a*](u)", want: `a{href=u}[em["a"]]`},
		{name: "empty label uses target", src: "[](u)", want: `a{href=u}["u"]`},
		{name: "image", src: "![alt](i.png)", want: `img{alt=alt,src=i.png}[]`},
		{name: "link inside em", src: "*[a](u)*", want: `em[a{href=u}["a"]]`},
		{name: "bracket without target is text", src: "[not a link] ok", want: `"[not a link] ok"`},
		{name: "link after bare brackets", src: "[a] [[b](u)", want: `"[a] " a{href=u}["[b"]`},
		{name: "unclosed parenthesis is text", src: "[a](u [b](v", want: `"[a](u [b](v"`},
		{name: "unicode text", src: "héllo *wörld*", want: `"héllo " em["wörld"]`},
	})
}

func TestParse_BracketRunsStayText(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		strings.Repeat("[", 5000),
		strings.TrimSpace(strings.Repeat("[a] ", 5000)),
		strings.Repeat("[a](", 5000),
	} {
		assert.Equal(t, strconv.Quote(src), dump(t, src))
	}
}

func TestParse_InlineNodesAreMarked(t *testing.T) {
	t.Parallel()

	doc := parser.New().Parse("# *a* b\n")
	is := assert.New(t)

	h1 := doc.Node(doc.Roots[0])
	is.False(h1.Inline)
	for _, child := range h1.Children {
		is.True(doc.Node(child).Inline)
	}
	em := doc.Node(h1.Children[0])
	is.True(doc.Node(em.Children[0]).Inline)
}

func TestIndexUnescaped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, parser.IndexUnescaped(`\**x*`, 0, "*"))
	assert.Equal(t, 3, parser.IndexUnescaped(`a\\*`, 0, "*"))
	assert.Equal(t, -1, parser.IndexUnescaped(`a\*`, 0, "*"))
	assert.Equal(t, 2, parser.IndexUnescaped("a**", 2, "*"))
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*x* [y]", parser.Unescape(`\*x\* \[y\]`))
	assert.Equal(t, `\a`, parser.Unescape(`\a`))
	assert.Equal(t, `\`, parser.Unescape(`\\`))
	assert.Equal(t, "plain", parser.Unescape("plain"))
}
