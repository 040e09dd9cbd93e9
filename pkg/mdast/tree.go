package mdast

import "strings"

// Tree is the arena owning every node of one parsed document.
type Tree struct {
	nodes []Node
}

// NewTree returns an empty arena.
func NewTree() *Tree {
	return &Tree{nodes: make([]Node, 0, 64)}
}

// Len returns the number of nodes allocated in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node stored under id. The pointer stays valid only
// until the next allocation; callers must not retain it across Add calls.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Add stores node in the arena and returns its ID.
func (t *Tree) Add(node Node) NodeID {
	t.nodes = append(t.nodes, node)
	return NodeID(len(t.nodes) - 1)
}

// NewText allocates a text leaf.
func (t *Tree) NewText(text string) NodeID {
	return t.Add(Node{Name: NameText, Text: text})
}

// NewElement allocates an element with the given children.
// A nil children slice is normalized to an empty one (a void element).
func (t *Tree) NewElement(name string, children ...NodeID) NodeID {
	if children == nil {
		children = []NodeID{}
	}
	return t.Add(Node{Name: name, Children: children})
}

// Omit allocates a node that renders as nothing.
func (t *Tree) Omit() NodeID {
	return t.Add(Node{Name: NameOmit, Children: []NodeID{}})
}

// Append adds children to the end of parent's child list.
func (t *Tree) Append(parent NodeID, children ...NodeID) {
	node := &t.nodes[parent]
	node.Children = append(node.Children, children...)
}

// SetInline marks id as produced by the inline engine.
func (t *Tree) SetInline(id NodeID) {
	t.nodes[id].Inline = true
}

// TextContent concatenates the text of every text leaf beneath id.
func (t *Tree) TextContent(id NodeID) string {
	var buf strings.Builder
	t.textContent(id, &buf)
	return buf.String()
}

func (t *Tree) textContent(id NodeID, buf *strings.Builder) {
	node := &t.nodes[id]
	if node.IsText() {
		buf.WriteString(node.Text)
		return
	}
	for _, child := range node.Children {
		t.textContent(child, buf)
	}
}

// Document is the result of one parse: the arena plus its top-level nodes.
type Document struct {
	Tree *Tree

	// Roots lists the top-level nodes in document order.
	Roots []NodeID

	// Config holds key/value pairs collected from config fences.
	// Nil when the document declared none.
	Config map[string]any
}

// Node is a convenience accessor for d.Tree.Node.
func (d *Document) Node(id NodeID) *Node {
	return d.Tree.Node(id)
}
