package mdast

import (
	"sort"
	"strconv"
	"strings"
)

// Dump renders the document in a compact, deterministic notation:
//
//	h1["Title"] p["Hello " em["world"] "."]
//
// Text leaves are quoted, attributes appear sorted in braces and omit
// nodes are included. Intended for tests and debugging.
func (d *Document) Dump() string {
	var buf strings.Builder
	for i, root := range d.Roots {
		if i > 0 {
			buf.WriteByte(' ')
		}
		d.Tree.dump(root, &buf)
	}
	return buf.String()
}

// Dump renders the subtree rooted at id; see Document.Dump.
func (t *Tree) Dump(id NodeID) string {
	var buf strings.Builder
	t.dump(id, &buf)
	return buf.String()
}

func (t *Tree) dump(id NodeID, buf *strings.Builder) {
	node := &t.nodes[id]
	if node.IsText() {
		buf.WriteString(strconv.Quote(node.Text))
		return
	}

	buf.WriteString(node.Name)
	if len(node.Attrs) > 0 {
		keys := make([]string, 0, len(node.Attrs))
		for k := range node.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(k)
			buf.WriteByte('=')
			buf.WriteString(node.Attrs[k])
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('[')
	for i, child := range node.Children {
		if i > 0 {
			buf.WriteByte(' ')
		}
		t.dump(child, buf)
	}
	buf.WriteByte(']')
}
