package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Delimited is a span whose interior is itself inline-parsed, so delimited
// spans nest: **strong *em* strong**. A missing closing delimiter extends
// the span to the end of the enclosing text.
type Delimited struct {
	name  string
	node  string
	start string
	end   string
}

// NewDelimited builds a delimited grammar producing node elements.
func NewDelimited(name, node, start, end string) *Delimited {
	return &Delimited{name: name, node: node, start: start, end: end}
}

// Name implements Named.
func (d *Delimited) Name() string { return d.name }

// Match implements InlineParser.
func (d *Delimited) Match(src string, from int) int {
	return IndexUnescaped(src, from, d.start)
}

// Delimiters implements Delimiters.
func (d *Delimited) Delimiters() (string, string) { return d.start, d.end }

// ParseInline implements InlineParser.
func (d *Delimited) ParseInline(ctx *Context, sc *Scanner) (mdast.NodeID, bool) {
	if !sc.HasPrefix(d.start) {
		return mdast.NoNode, false
	}
	sc.Skip(len(d.start))
	children := ctx.ParseInlineUntil(sc, d.end)
	if sc.HasPrefix(d.end) {
		sc.Skip(len(d.end))
	}
	return ctx.Tree.NewElement(d.node, children...), true
}

// Capture is a span whose interior is taken literally up to the next
// unescaped end delimiter (or the end of the text).
type Capture struct {
	name  string
	node  string
	start string
	end   string

	// keepEscapes leaves backslashes in the captured text.
	keepEscapes bool
}

// NewCapture builds a capture grammar producing node elements with a
// single text child.
func NewCapture(name, node, start, end string, keepEscapes bool) *Capture {
	return &Capture{name: name, node: node, start: start, end: end, keepEscapes: keepEscapes}
}

// Name implements Named.
func (c *Capture) Name() string { return c.name }

// Match implements InlineParser.
func (c *Capture) Match(src string, from int) int {
	return IndexUnescaped(src, from, c.start)
}

// ParseInline implements InlineParser.
func (c *Capture) ParseInline(ctx *Context, sc *Scanner) (mdast.NodeID, bool) {
	text, ok := c.capture(sc)
	if !ok {
		return mdast.NoNode, false
	}
	return ctx.Tree.NewElement(c.node, ctx.Tree.NewText(text)), true
}

func (c *Capture) capture(sc *Scanner) (string, bool) {
	if !sc.HasPrefix(c.start) {
		return "", false
	}
	sc.Skip(len(c.start))

	src := sc.Src()
	begin := sc.Pos()
	stop := IndexUnescaped(src, begin, c.end)
	if stop < 0 {
		stop = len(src)
		sc.SetPos(stop)
	} else {
		sc.SetPos(stop + len(c.end))
	}

	text := src[begin:stop]
	if !c.keepEscapes {
		text = Unescape(text)
	}
	return text, true
}

// CitationParser parses footnote references: [^label].
type CitationParser struct {
	capture *Capture
}

// NewCitationParser returns the footnote citation grammar.
func NewCitationParser() *CitationParser {
	return &CitationParser{capture: NewCapture("footnote", "sup", "[^", "]", false)}
}

// Name implements Named.
func (p *CitationParser) Name() string { return "footnote" }

// Match implements InlineParser.
func (p *CitationParser) Match(src string, from int) int {
	return p.capture.Match(src, from)
}

// ParseInline implements InlineParser. The produced link is numbered during
// postprocessing; until then its text is the label.
func (p *CitationParser) ParseInline(ctx *Context, sc *Scanner) (mdast.NodeID, bool) {
	label, ok := p.capture.capture(sc)
	if !ok {
		return mdast.NoNode, false
	}

	link := ctx.Tree.NewElement("a", ctx.Tree.NewText(label))
	ctx.Tree.Node(link).SetAttr("class", "footnote-ref")
	ctx.Cite(label, link)
	return ctx.Tree.NewElement("sup", link), true
}

// linkTitle splits `url "title"` targets.
var linkTitle = regexp.MustCompile(`^(\S+)\s+"(.*)"$`)

func splitTarget(target string) (string, string) {
	target = strings.TrimSpace(target)
	if m := linkTitle.FindStringSubmatch(target); m != nil {
		return m[1], m[2]
	}
	return target, ""
}

// LinkParser parses [text](target) and, with image set, ![alt](target).
type LinkParser struct {
	image bool
}

// NewLinkParser returns the link grammar.
func NewLinkParser() *LinkParser { return &LinkParser{} }

// NewImageParser returns the image grammar.
func NewImageParser() *LinkParser { return &LinkParser{image: true} }

// Name implements Named.
func (p *LinkParser) Name() string {
	if p.image {
		return "image"
	}
	return "link"
}

func (p *LinkParser) opener() string {
	if p.image {
		return "!["
	}
	return "["
}

// Match implements InlineParser. Openers between a failed opener and its
// closing bracket share that bracket and fail the same way, so the search
// resumes after it; a missing bracket or parenthesis fails every later
// opener too.
func (p *LinkParser) Match(src string, from int) int {
	for {
		at := IndexUnescaped(src, from, p.opener())
		if at < 0 {
			return -1
		}
		labelEnd := IndexUnescaped(src, at+len(p.opener()), "]")
		if labelEnd < 0 {
			return -1
		}
		if !strings.HasPrefix(src[labelEnd:], "](") {
			from = labelEnd + 1
			continue
		}
		if IndexUnescaped(src, labelEnd+2, ")") < 0 {
			return -1
		}
		return at
	}
}

// scan locates the parts of a link starting at at: the label, the target
// and the position just past the closing parenthesis.
func (p *LinkParser) scan(src string, at int) (string, string, int, bool) {
	labelStart := at + len(p.opener())
	labelEnd := IndexUnescaped(src, labelStart, "]")
	if labelEnd < 0 || !strings.HasPrefix(src[labelEnd:], "](") {
		return "", "", 0, false
	}
	targetEnd := IndexUnescaped(src, labelEnd+2, ")")
	if targetEnd < 0 {
		return "", "", 0, false
	}
	return src[labelStart:labelEnd], src[labelEnd+2 : targetEnd], targetEnd + 1, true
}

// ParseInline implements InlineParser.
func (p *LinkParser) ParseInline(ctx *Context, sc *Scanner) (mdast.NodeID, bool) {
	label, target, next, ok := p.scan(sc.Src(), sc.Pos())
	if !ok {
		return mdast.NoNode, false
	}
	sc.SetPos(next)

	url, title := splitTarget(target)
	if strings.TrimSpace(label) == "" {
		label = url
	}

	var node mdast.NodeID
	if p.image {
		node = ctx.Tree.NewElement("img")
		n := ctx.Tree.Node(node)
		n.SetAttr("src", url)
		n.SetAttr("alt", Unescape(label))
		ctx.UseLink(node, "src")
	} else {
		node = ctx.Tree.NewElement("a", ctx.ParseInline(label)...)
		ctx.Tree.Node(node).SetAttr("href", url)
		ctx.UseLink(node, "href")
	}
	if title != "" {
		ctx.Tree.Node(node).SetAttr("title", title)
	}
	return node, true
}

// Postprocess substitutes link and image targets that name a reference
// definition. Targets that name nothing are left as written.
func (p *LinkParser) Postprocess(ctx *Context) {
	if p.image {
		return // uses of both grammars are resolved by the link grammar
	}
	resolveLinks(ctx)
}

func resolveLinks(ctx *Context) {
	for _, use := range ctx.LinkUses() {
		node := ctx.Tree.Node(use.Node)
		def, ok := ctx.LinkTarget(node.Attr(use.Attr))
		if !ok {
			continue
		}
		url, title := splitTarget(def)
		node.SetAttr(use.Attr, url)
		if title != "" && node.Attr("title") == "" {
			node.SetAttr("title", title)
		}
	}
}
