// Package html renders mdast documents as HTML.
//
// Every element name maps to a print function. Names without a registered
// function print as a generic element carrying the node's attributes, so
// extension grammars render without changes here.
package html

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// ErrInvalidElement is returned for node names that are not valid tag names.
var ErrInvalidElement = errors.New("invalid element name")

var tagName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// voidElements print without a closing tag.
var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true, "link": true, "wbr": true,
}

// urlAttrs hold URLs and are percent-escaped.
var urlAttrs = map[string]bool{"href": true, "src": true}

// PrintFunc writes node id. It may call w.Children or w.Node to print
// descendants.
type PrintFunc func(w *Writer, id mdast.NodeID, n *mdast.Node) error

// Options control rendering.
type Options struct {
	// Standalone wraps the body in a complete HTML page.
	Standalone bool

	// Title is the page title when Standalone is set and the document
	// configuration has no "title".
	Title string
}

// Option configures a Renderer.
type Option func(*Options)

// WithStandalone wraps output in a complete page.
func WithStandalone(enabled bool) Option {
	return func(o *Options) { o.Standalone = enabled }
}

// WithTitle sets the fallback page title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// Renderer renders documents. It is safe for concurrent use.
type Renderer struct {
	mu       sync.RWMutex
	printers map[string]PrintFunc
	opts     Options
}

// New returns a Renderer with the built-in print functions.
func New(opts ...Option) *Renderer {
	r := &Renderer{printers: make(map[string]PrintFunc)}
	for _, opt := range opts {
		opt(&r.opts)
	}

	r.Register(mdast.NameText, printText)
	r.Register(mdast.NameOmit, printOmit)
	r.Register(mdast.NameVerbatim, printVerbatim)
	r.Register(mdast.NameCodeBlock, printCodeBlock)
	r.Register("ol", printOrderedList)
	return r
}

// Register installs the print function for name, replacing any existing one.
func (r *Renderer) Register(name string, fn PrintFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printers[name] = fn
}

func (r *Renderer) printer(name string) (PrintFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.printers[name]
	return fn, ok
}

// Render implements parser.Renderer.
func (r *Renderer) Render(doc *mdast.Document) (string, error) {
	w := &Writer{r: r, tree: doc.Tree}
	for _, root := range doc.Roots {
		if err := w.Node(root); err != nil {
			return "", err
		}
	}

	if !r.opts.Standalone {
		return w.buf.String(), nil
	}
	return page(pageTitle(doc.Config, r.opts.Title), w.buf.String()), nil
}

// Writer accumulates the output of one Render call.
type Writer struct {
	r    *Renderer
	tree *mdast.Tree
	buf  strings.Builder
}

// Tree returns the arena of the document being rendered.
func (w *Writer) Tree() *mdast.Tree { return w.tree }

// WriteString writes raw text.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// WriteEscaped writes text with HTML special characters escaped.
func (w *Writer) WriteEscaped(s string) {
	w.buf.Write(util.EscapeHTML([]byte(s)))
}

// Node prints id with its registered print function or as a generic element.
func (w *Writer) Node(id mdast.NodeID) error {
	n := w.tree.Node(id)
	if fn, ok := w.r.printer(n.Name); ok {
		return fn(w, id, n)
	}
	return w.Element(id, n, n.Attrs)
}

// Children prints the children of id in order.
func (w *Writer) Children(id mdast.NodeID) error {
	for _, child := range w.tree.Node(id).Children {
		if err := w.Node(child); err != nil {
			return err
		}
	}
	return nil
}

// Element prints n as a tag with attrs around its children. Block-level
// elements end with a newline.
func (w *Writer) Element(id mdast.NodeID, n *mdast.Node, attrs map[string]string) error {
	if !tagName.MatchString(n.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidElement, n.Name)
	}
	inline := n.Inline
	name := n.Name

	w.OpenTag(name, attrs)
	if voidElements[name] {
		if !inline {
			w.buf.WriteByte('\n')
		}
		return nil
	}
	if !inline && hasBlockChild(w.tree, n) {
		w.buf.WriteByte('\n')
	}
	if err := w.Children(id); err != nil {
		return err
	}
	w.buf.WriteString("</" + name + ">")
	if !inline {
		w.buf.WriteByte('\n')
	}
	return nil
}

// OpenTag writes <name attrs>, with attributes in sorted order.
func (w *Writer) OpenTag(name string, attrs map[string]string) {
	w.buf.WriteString("<" + name)
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		value := []byte(attrs[key])
		if urlAttrs[key] {
			value = util.URLEscape(value, false)
		}
		w.buf.WriteString(" " + key + `="`)
		w.buf.Write(util.EscapeHTML(value))
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('>')
}

func hasBlockChild(tree *mdast.Tree, n *mdast.Node) bool {
	for _, child := range n.Children {
		c := tree.Node(child)
		if !c.Inline && !c.IsText() && c.Name != mdast.NameOmit {
			return true
		}
	}
	return false
}

func printText(w *Writer, _ mdast.NodeID, n *mdast.Node) error {
	w.WriteEscaped(n.Text)
	if !n.Inline {
		w.buf.WriteByte('\n')
	}
	return nil
}

func printOmit(*Writer, mdast.NodeID, *mdast.Node) error {
	return nil
}

func printVerbatim(w *Writer, _ mdast.NodeID, n *mdast.Node) error {
	for _, child := range n.Children {
		w.buf.WriteString(w.tree.TextContent(child))
		w.buf.WriteByte('\n')
	}
	return nil
}

func printCodeBlock(w *Writer, _ mdast.NodeID, n *mdast.Node) error {
	w.buf.WriteString("<pre><code")
	if lang := n.Attr("lang"); lang != "" {
		w.buf.WriteString(` class="language-`)
		w.WriteEscaped(lang)
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('>')
	for _, child := range n.Children {
		w.WriteEscaped(w.tree.TextContent(child))
		w.buf.WriteByte('\n')
	}
	w.buf.WriteString("</code></pre>\n")
	return nil
}

// printOrderedList converts the literal start marker to the numeric start
// attribute HTML expects and keeps type only when it is not decimal.
func printOrderedList(w *Writer, id mdast.NodeID, n *mdast.Node) error {
	attrs := maps.Clone(n.Attrs)
	if attrs == nil {
		attrs = make(map[string]string)
	}

	class := attrs["type"]
	delete(attrs, "type")
	delete(attrs, "start")
	if class != "" && class != "1" {
		attrs["type"] = class
	}
	if start := ListStart(class, n.Attr("start")); start > 1 {
		attrs["start"] = fmt.Sprint(start)
	}
	return w.Element(id, n, attrs)
}

func pageTitle(cfg map[string]any, fallback string) string {
	if title, ok := cfg["title"]; ok {
		return fmt.Sprint(title)
	}
	return fallback
}

func page(title, body string) string {
	var buf strings.Builder
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	buf.Write(util.EscapeHTML([]byte(title)))
	buf.WriteString("</title>\n</head>\n<body>\n")
	buf.WriteString(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.String()
}
