package parser

import (
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Citation is a footnote reference recorded by the inline engine.
type Citation struct {
	// Label is the footnote label as written, without "[^" and "]".
	Label string

	// Link is the anchor node whose href and text resolution rewrites.
	Link mdast.NodeID
}

// LinkUse is a link or image whose target may name a reference definition.
type LinkUse struct {
	Node mdast.NodeID

	// Attr is the attribute holding the target ("href" or "src").
	Attr string
}

// Context carries everything scoped to a single parse: the node arena, the
// parser snapshot in effect, and the definitions and uses collected along
// the way. A Context is created per document and discarded afterwards, so
// concurrent parses sharing one Parser never share state.
type Context struct {
	// Tree is the arena every node of this document is allocated in.
	Tree *mdast.Tree

	opts    Options
	blocks  []BlockParser
	inlines []InlineParser
	fences  *Registry[FenceHandler]

	depth int
	roots []mdast.NodeID

	footnotes map[string][]string
	citations []Citation
	linkDefs  map[string]string
	linkUses  []LinkUse
	config    map[string]any
	values    map[any]any
}

func newContext(p *Parser) *Context {
	ctx := &Context{
		Tree:      mdast.NewTree(),
		opts:      p.opts,
		blocks:    p.Blocks.All(),
		inlines:   p.Inlines.All(),
		fences:    p.Fences,
		footnotes: make(map[string][]string),
		linkDefs:  make(map[string]string),
		values:    make(map[any]any),
	}

	for _, bp := range ctx.blocks {
		if initializer, ok := bp.(Initializer); ok {
			initializer.Init(ctx)
		}
	}
	for _, ip := range ctx.inlines {
		if initializer, ok := ip.(Initializer); ok {
			initializer.Init(ctx)
		}
	}
	return ctx
}

// Options returns the options the parse runs with.
func (c *Context) Options() Options {
	return c.opts
}

// Roots returns the document's top-level nodes. It is populated once the
// block engine has finished and is what postprocessors operate on.
func (c *Context) Roots() []mdast.NodeID {
	return c.roots
}

// AppendRoot adds a top-level node after the existing ones.
func (c *Context) AppendRoot(id mdast.NodeID) {
	c.roots = append(c.roots, id)
}

// Value returns document-scoped state stored by an extension under key.
func (c *Context) Value(key any) any {
	return c.values[key]
}

// SetValue stores document-scoped state for an extension.
func (c *Context) SetValue(key, value any) {
	c.values[key] = value
}

// DefineFootnote records the body lines of footnote label.
// The first definition of a label wins.
func (c *Context) DefineFootnote(label string, lines []string) {
	if _, exists := c.footnotes[label]; exists {
		return
	}
	c.footnotes[label] = lines
}

// Footnote returns the body lines recorded for label.
func (c *Context) Footnote(label string) ([]string, bool) {
	lines, ok := c.footnotes[label]
	return lines, ok
}

// Cite records a footnote citation in document order.
func (c *Context) Cite(label string, link mdast.NodeID) {
	c.citations = append(c.citations, Citation{Label: label, Link: link})
}

// Citations returns the citations recorded so far.
func (c *Context) Citations() []Citation {
	return c.citations
}

// DefineLink records a reference definition. The first definition wins.
func (c *Context) DefineLink(id, target string) {
	if _, exists := c.linkDefs[id]; exists {
		return
	}
	c.linkDefs[id] = target
}

// LinkTarget returns the target defined for id.
func (c *Context) LinkTarget(id string) (string, bool) {
	target, ok := c.linkDefs[id]
	return target, ok
}

// UseLink records a link or image for reference resolution.
func (c *Context) UseLink(node mdast.NodeID, attr string) {
	c.linkUses = append(c.linkUses, LinkUse{Node: node, Attr: attr})
}

// LinkUses returns the link and image uses recorded so far.
func (c *Context) LinkUses() []LinkUse {
	return c.linkUses
}

// SetConfig stores a document-wide configuration value.
func (c *Context) SetConfig(key string, value any) {
	if c.config == nil {
		c.config = make(map[string]any)
	}
	c.config[key] = value
}

// Config returns the document-wide configuration, or nil if none was set.
func (c *Context) Config() map[string]any {
	return c.config
}

// element allocates a block-level element.
func (c *Context) element(name string, children ...mdast.NodeID) mdast.NodeID {
	return c.Tree.NewElement(name, children...)
}

// textLines allocates one text leaf per line.
func (c *Context) textLines(lines []string) []mdast.NodeID {
	ids := make([]mdast.NodeID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, c.Tree.NewText(line))
	}
	return ids
}
