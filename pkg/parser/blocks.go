package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/anchor"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// HeadingParser parses "# Title" through "###### Title".
type HeadingParser struct{}

var headingLine = regexp.MustCompile(`^(#{1,6}) (.*)$`)

// headingsKey stores the headings of a document for id assignment.
type headingsKey struct{}

// Name implements Named.
func (HeadingParser) Name() string { return "heading" }

// Init implements Initializer.
func (HeadingParser) Init(ctx *Context) {
	ctx.SetValue(headingsKey{}, &[]mdast.NodeID{})
}

// ParseBlock implements BlockParser.
func (HeadingParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	m := headingLine.FindStringSubmatch(lines[0])
	if m == nil {
		return mdast.NoNode, 0
	}

	text := strings.TrimRight(strings.TrimRight(m[2], "#"), " ")
	node := ctx.element("h"+strconv.Itoa(len(m[1])), ctx.ParseInline(text)...)

	if headings, ok := ctx.Value(headingsKey{}).(*[]mdast.NodeID); ok {
		*headings = append(*headings, node)
	}
	return node, 1
}

// Postprocess assigns unique slug ids to headings when enabled.
func (HeadingParser) Postprocess(ctx *Context) {
	if !ctx.Options().HeadingIDs {
		return
	}
	headings, ok := ctx.Value(headingsKey{}).(*[]mdast.NodeID)
	if !ok {
		return
	}

	slugs := anchor.NewSlugger()
	for _, id := range *headings {
		node := ctx.Tree.Node(id)
		if node.Attr("id") != "" {
			continue
		}
		if slug := slugs.Slug(ctx.Tree.TextContent(id)); slug != "" {
			node.SetAttr("id", slug)
		}
	}
}

// BlockquoteParser parses runs of ">"-prefixed lines.
type BlockquoteParser struct{}

// Name implements Named.
func (BlockquoteParser) Name() string { return "blockquote" }

// ParseBlock implements BlockParser.
func (BlockquoteParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	var inner []string
	for _, line := range lines {
		if !strings.HasPrefix(line, ">") {
			break
		}
		line = line[1:]
		inner = append(inner, strings.TrimPrefix(line, " "))
	}
	if len(inner) == 0 {
		return mdast.NoNode, 0
	}
	return ctx.element("blockquote", ctx.ParseBlocks(inner)...), len(inner)
}

// IndentedCodeParser parses runs of lines indented by four or more spaces.
type IndentedCodeParser struct{}

const codeIndent = "    "

// Name implements Named.
func (IndentedCodeParser) Name() string { return "code" }

// ParseBlock implements BlockParser.
func (IndentedCodeParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	var code []string
	for _, line := range lines {
		if !strings.HasPrefix(line, codeIndent) {
			break
		}
		code = append(code, line[len(codeIndent):])
	}
	if len(code) == 0 {
		return mdast.NoNode, 0
	}
	return ctx.element(mdast.NameCodeBlock, ctx.textLines(code)...), len(code)
}

// RuleParser parses horizontal rules: a line starting with ---, *** or ___.
// Whatever follows the marker on that line is dropped.
type RuleParser struct{}

var ruleLine = regexp.MustCompile(`^(?:---|\*\*\*|___)`)

// Name implements Named.
func (RuleParser) Name() string { return "hr" }

// ParseBlock implements BlockParser.
func (RuleParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	if !ruleLine.MatchString(lines[0]) {
		return mdast.NoNode, 0
	}
	return ctx.element("hr"), 1
}

// LinkDefinitionParser records "[id]: target" lines for reference links.
type LinkDefinitionParser struct{}

var linkDefLine = regexp.MustCompile(`^\[([^\]^][^\]]*)\]: (.*)$`)

// Name implements Named.
func (LinkDefinitionParser) Name() string { return "linkdef" }

// ParseBlock implements BlockParser.
func (LinkDefinitionParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	m := linkDefLine.FindStringSubmatch(lines[0])
	if m == nil {
		return mdast.NoNode, 0
	}
	ctx.DefineLink(m[1], strings.TrimSpace(m[2]))
	return ctx.Tree.Omit(), 1
}

// htmlBlock pairs a raw HTML opener with the text that closes it.
type htmlBlock struct {
	open     string
	close    string
	boundary bool
}

var htmlBlocks = []htmlBlock{
	{open: "<script", close: "</script>", boundary: true},
	{open: "<head", close: "</head>", boundary: true},
	{open: "<!--", close: "-->"},
	{open: "<!doctype", close: ">"},
}

// HTMLBlockParser passes script, head, comment and doctype blocks through.
type HTMLBlockParser struct{}

// Name implements Named.
func (HTMLBlockParser) Name() string { return "html" }

// ParseBlock implements BlockParser.
func (HTMLBlockParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	first := strings.ToLower(lines[0])
	for _, block := range htmlBlocks {
		if !strings.HasPrefix(first, block.open) {
			continue
		}
		if block.boundary && !tagBoundary(first[len(block.open):]) {
			continue
		}

		consumed := len(lines)
		offset := len(block.open)
		for i, line := range lines {
			if strings.Contains(strings.ToLower(line[min(offset, len(line)):]), block.close) {
				consumed = i + 1
				break
			}
			offset = 0
		}
		return ctx.element(mdast.NameVerbatim, ctx.textLines(lines[:consumed])...), consumed
	}
	return mdast.NoNode, 0
}

// tagBoundary reports whether rest may follow a tag name.
func tagBoundary(rest string) bool {
	return rest == "" || rest[0] == '>' || rest[0] == ' ' || rest[0] == '/'
}

// HTMLTagParser passes through lines consisting only of HTML tags.
type HTMLTagParser struct{}

var tagOnlyLine = regexp.MustCompile(`^(?:\s*</?[A-Za-z][A-Za-z0-9-]*(?:\s+[^<>]*)?/?>)+$`)

// Name implements Named.
func (HTMLTagParser) Name() string { return "htmltag" }

// ParseBlock implements BlockParser.
func (HTMLTagParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	if !tagOnlyLine.MatchString(lines[0]) {
		return mdast.NoNode, 0
	}
	return ctx.element(mdast.NameVerbatim, ctx.Tree.NewText(lines[0])), 1
}
