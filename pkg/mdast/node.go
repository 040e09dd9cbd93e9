// Package mdast defines the document tree produced by the parser.
//
// Nodes live in an arena (Tree) and refer to each other by NodeID, so that
// later passes can rewrite a node in place through its ID without holding
// aliased pointers into the tree.
package mdast

// Reserved node names.
const (
	// NameText marks a text leaf; its content is in Node.Text.
	NameText = "text"

	// NameOmit marks a node that contributes nothing to the output.
	NameOmit = "omit"

	// NameVerbatim marks raw lines passed through to the output unmodified.
	NameVerbatim = "verbatim"

	// NameCodeBlock marks preformatted code; children are one text leaf per line.
	NameCodeBlock = "codeblock"
)

// NodeID identifies a node within its Tree.
type NodeID int32

// NoNode is the zero reference; it never identifies a node.
const NoNode NodeID = -1

// Node is a single element of the document tree.
//
// A node carries either children or text. A nil Children slice on a
// non-text node is not allowed; an empty, non-nil slice marks a void
// element such as hr or img.
type Node struct {
	// Name selects how the node renders ("h1", "p", "em", "text", ...).
	Name string

	// Attrs holds optional attributes. Nil means none.
	Attrs map[string]string

	// Children lists child nodes in order. Nil for text leaves.
	Children []NodeID

	// Text is the content of a text leaf, with escapes already processed.
	Text string

	// Inline is set on every node produced by the inline engine.
	Inline bool
}

// IsText reports whether the node is a text leaf.
func (n *Node) IsText() bool {
	return n.Name == NameText
}

// IsVoid reports whether the node is an element with no content.
func (n *Node) IsVoid() bool {
	return !n.IsText() && n.Children != nil && len(n.Children) == 0
}

// Attr returns the named attribute, or "" if absent.
func (n *Node) Attr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}
