package mdast

import (
	"encoding/json"
	"fmt"
)

// Element is the nested, pointer-based form of a node used for export.
type Element struct {
	Name     string            `json:"name" yaml:"name"`
	Attrs    map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children []*Element        `json:"children,omitempty" yaml:"children,omitempty"`
	Text     *string           `json:"text,omitempty" yaml:"text,omitempty"`
	Inline   bool              `json:"inline,omitempty" yaml:"inline,omitempty"`
}

// Export converts the subtree rooted at id into nested Elements.
func (t *Tree) Export(id NodeID) *Element {
	node := &t.nodes[id]
	elem := &Element{
		Name:   node.Name,
		Attrs:  node.Attrs,
		Inline: node.Inline,
	}
	if node.IsText() {
		text := node.Text
		elem.Text = &text
		return elem
	}
	elem.Children = make([]*Element, 0, len(node.Children))
	for _, child := range node.Children {
		elem.Children = append(elem.Children, t.Export(child))
	}
	return elem
}

// Export converts every top-level node into nested Elements.
func (d *Document) Export() []*Element {
	out := make([]*Element, 0, len(d.Roots))
	for _, root := range d.Roots {
		out = append(out, d.Tree.Export(root))
	}
	return out
}

// jsonDocument is the wire shape of a Document.
type jsonDocument struct {
	Config map[string]any `json:"config,omitempty"`
	Nodes  []*Element     `json:"nodes"`
}

// MarshalJSON encodes the document as {"config": ..., "nodes": [...]}.
func (d *Document) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(jsonDocument{Config: d.Config, Nodes: d.Export()})
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
