package parser

import (
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// BlockParser recognizes one block-level grammar.
//
// ParseBlock inspects lines (the unconsumed remainder of the current block
// sequence). On a match it returns the produced node and the number of
// lines consumed; it declines by returning consumed == 0, in which case it
// must not have recorded anything in ctx.
type BlockParser interface {
	Named
	ParseBlock(ctx *Context, lines []string) (node mdast.NodeID, consumed int)
}

// Initializer is implemented by parsers that keep document-scoped state.
// Init runs once when the Context for a document is created.
type Initializer interface {
	Init(ctx *Context)
}

// Postprocessor is implemented by parsers that rewrite the finished tree.
// Postprocess runs after the whole document has been parsed, for block
// parsers first and then inline parsers, each in registry order.
type Postprocessor interface {
	Postprocess(ctx *Context)
}

// ParseBlocks runs the block engine over lines and returns the produced
// nodes in order. Block parsers call it recursively for nested content.
func (c *Context) ParseBlocks(lines []string) []mdast.NodeID {
	if c.depth >= c.opts.MaxNesting {
		return c.ParseInline(strings.Join(lines, "\n"))
	}
	c.depth++
	defer func() { c.depth-- }()

	var (
		out  []mdast.NodeID
		text []string
	)

	for pos := 0; pos < len(lines); {
		if node, consumed := c.tryBlocks(lines[pos:]); consumed > 0 {
			out = c.pushText(out, text, false)
			text = nil
			if c.Tree.Node(node).Name != mdast.NameOmit {
				out = append(out, node)
			}
			pos += consumed
			continue
		}

		line := lines[pos]
		if isBlank(line) {
			if len(text) > 0 {
				// The blank closes the paragraph and is looked at again
				// on the next round with nothing accumulated.
				out = c.pushText(out, text, true)
				text = nil
				continue
			}
			// A blank with nothing accumulated produces no node.
			pos++
			continue
		}

		text = append(text, line)
		pos++
	}

	return c.pushText(out, text, false)
}

// tryBlocks offers lines to each block parser in precedence order.
func (c *Context) tryBlocks(lines []string) (mdast.NodeID, int) {
	for _, bp := range c.blocks {
		if node, consumed := bp.ParseBlock(c, lines); consumed > 0 {
			return node, consumed
		}
	}
	return mdast.NoNode, 0
}

// pushText flushes accumulated plain-text lines into out. As a paragraph the
// inline result is wrapped in a single p node; otherwise the inline nodes
// are spliced in directly.
func (c *Context) pushText(out []mdast.NodeID, text []string, paragraph bool) []mdast.NodeID {
	if len(text) == 0 {
		return out
	}

	inline := c.ParseInline(strings.Join(text, "\n"))
	if paragraph {
		return append(out, c.element("p", inline...))
	}
	return append(out, inline...)
}
