package pretty

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

const (
	treeRootLabel = "document"
	ellipsis      = "…"
)

// FormatTree renders a parsed document as an indented tree, one node per
// line. Quoted text leaves wider than maxText cells are truncated; a
// maxText of zero or less keeps them whole.
func (s *Styles) FormatTree(doc *mdast.Document, maxText int) string {
	root := tree.Root(s.Bold.Render(treeRootLabel)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.Enumerator)

	for _, id := range doc.Roots {
		root.Child(s.treeItem(doc.Tree, id, maxText))
	}
	return root.String() + "\n"
}

// treeItem returns a string for leaves and a subtree for elements with
// children.
func (s *Styles) treeItem(t *mdast.Tree, id mdast.NodeID, maxText int) any {
	node := t.Node(id)
	if node.IsText() {
		text := strconv.Quote(node.Text)
		if maxText > 0 {
			text = ansi.Truncate(text, maxText, ellipsis)
		}
		return s.Text.Render(text)
	}

	label := s.nodeLabel(node)
	if len(node.Children) == 0 {
		return label
	}

	sub := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.Enumerator)
	for _, child := range node.Children {
		sub.Child(s.treeItem(t, child, maxText))
	}
	return sub
}

func (s *Styles) nodeLabel(node *mdast.Node) string {
	if len(node.Attrs) == 0 {
		return s.Element.Render(node.Name)
	}

	keys := make([]string, 0, len(node.Attrs))
	for k := range node.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]string, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, k+"="+strconv.Quote(node.Attrs[k]))
	}
	return s.Element.Render(node.Name) + " " + s.Attr.Render(strings.Join(attrs, " "))
}
