package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtree/pkg/parser"
)

func dump(t *testing.T, src string, opts ...parser.Option) string {
	t.Helper()
	return parser.New(opts...).Parse(src).Dump()
}

type dumpCase struct {
	name string
	src  string
	want string
}

func runDumpCases(t *testing.T, tests []dumpCase, opts ...parser.Option) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dump(t, tt.src, opts...))
		})
	}
}

func TestParse_Blocks(t *testing.T) {
	t.Parallel()

	runDumpCases(t, []dumpCase{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nHello *world*.\n",
			want: `h1["Title"] p["Hello " em["world"] "."]`,
		},
		{
			name: "heading levels and closing hashes",
			src:  "### Three ###\n###### Six\n",
			want: `h3["Three"] h6["Six"]`,
		},
		{
			name: "seven hashes is text",
			src:  "####### no\n\n",
			want: `p["####### no"]`,
		},
		{
			name: "text without closing blank is not a paragraph",
			src:  "plain",
			want: `"plain"`,
		},
		{
			name: "paragraph lines join",
			src:  "one\ntwo\n\n",
			want: `p["one\ntwo"]`,
		},
		{
			name: "blank lines produce nothing",
			src:  "\n\n\n",
			want: ``,
		},
		{
			name: "blockquote",
			src:  "> a\n> b\n",
			want: `blockquote["a\nb"]`,
		},
		{
			name: "blockquote with nested blocks",
			src:  "> # T\n>\n> body\n",
			want: `blockquote[h1["T"] "body"]`,
		},
		{
			name: "indented code",
			src:  "    x := 1\n    y\n",
			want: `codeblock["x := 1" "y"]`,
		},
		{
			name: "horizontal rules",
			src:  "---\n***\n___  \n",
			want: `hr[] hr[] hr[]`,
		},
		{
			name: "rule marker starts the line",
			src:  "--- trailing\n***bold***\n____\n",
			want: `hr[] hr[] hr[]`,
		},
		{
			name: "mixed rule characters are text",
			src:  "-_-\n\n",
			want: `p["-_-"]`,
		},
		{
			name: "html comment",
			src:  "<!-- note -->\n",
			want: `verbatim["<!-- note -->"]`,
		},
		{
			name: "multi-line script",
			src:  "<script>\nvar a;\n</script>\nafter\n",
			want: `verbatim["<script>" "var a;" "</script>"] p["after"]`,
		},
		{
			name: "tag-only line",
			src:  "<div class=\"x\">\n",
			want: `verbatim["<div class=\"x\">"]`,
		},
		{
			name: "unclosed comment runs to end",
			src:  "<!-- a\nb",
			want: `verbatim["<!-- a" "b"]`,
		},
	})
}

func TestParse_Fences(t *testing.T) {
	t.Parallel()

	runDumpCases(t, []dumpCase{
		{
			name: "code with language",
			src:  "```go\nx := 1\n```\n",
			want: `codeblock{lang=go}["x := 1"]`,
		},
		{
			name: "info words after the type are ignored",
			src:  "```python title=demo\npass\n```\n",
			want: `codeblock{lang=python}["pass"]`,
		},
		{
			name: "escaped fence line",
			src:  "```\n\\```\n```\n",
			want: `codeblock["` + "```" + `"]`,
		},
		{
			name: "unterminated fence runs to end",
			src:  "```\na\nb",
			want: `codeblock["a" "b"]`,
		},
		{
			name: "verbatim",
			src:  "```verbatim\n<b>x</b>\n```\n",
			want: `verbatim["<b>x</b>"]`,
		},
		{
			name: "omit",
			src:  "```omit\nsecret\n```\nshown\n",
			want: `p["shown"]`,
		},
		{
			name: "fence interrupts paragraph",
			src:  "text\n```\ncode\n```\n",
			want: `"text" codeblock["code"]`,
		},
	})
}

func TestParse_ConfigFence(t *testing.T) {
	t.Parallel()

	doc := parser.New().Parse("```config\ntitle: Hello: World\ncount: 3\nratio: 1.5\nbad line\n: empty\n```\n")

	assert.Empty(t, doc.Roots)
	assert.Equal(t, map[string]any{
		"title": "Hello: World",
		"count": int64(3),
		"ratio": 1.5,
	}, doc.Config)
}

func TestParse_NoConfig(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parser.New().Parse("# x\n").Config)
}

func TestParse_LanguageDetection(t *testing.T) {
	t.Parallel()

	src := "```\npackage main\n```\n"
	assert.Equal(t, `codeblock["package main"]`, dump(t, src))
	assert.Equal(t, `codeblock{lang=go}["package main"]`, dump(t, src, parser.WithLanguageDetection(true)))
	assert.Equal(t, `codeblock["plain words"]`,
		dump(t, "```\nplain words\n```\n", parser.WithLanguageDetection(true)))
}

func TestParse_HeadingIDs(t *testing.T) {
	t.Parallel()

	src := "# Hello World\n## Hello World\n### !!!\n"
	assert.Equal(t,
		`h1{id=hello-world}["Hello World"] h2{id=hello-world-1}["Hello World"] h3["!!!"]`,
		dump(t, src, parser.WithHeadingIDs(true)))
	assert.Equal(t, `h1["Hello World"] h2["Hello World"] h3["!!!"]`, dump(t, src))
}

func TestParse_MaxNesting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `blockquote[blockquote["> deep"]]`,
		dump(t, "> > > deep", parser.WithMaxNesting(2)))
	assert.Equal(t, `blockquote[blockquote[blockquote["deep"]]]`,
		dump(t, "> > > deep"))
}

func TestParse_Tabs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `codeblock["a" "b"]`, dump(t, "\ta\n\tb"))
	assert.Equal(t, `codeblock["a"] "\tb"`, dump(t, "\ta\n\tb", parser.WithTabMode(parser.TabsFirst)))
}
