package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(id NodeID, n *Node) error

// Walk performs a pre-order traversal of the subtree rooted at root.
// The callback walkFunc is called for each node. If walkFunc returns a non-nil error,
// the walk stops immediately and returns that error.
func (t *Tree) Walk(root NodeID, walkFunc WalkFunc) error {
	if root == NoNode {
		return nil
	}

	if err := walkFunc(root, &t.nodes[root]); err != nil {
		return err
	}

	// Index-based loop: the callback may grow the arena.
	for i := 0; i < len(t.nodes[root].Children); i++ {
		if err := t.Walk(t.nodes[root].Children[i], walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// Walk walks every top-level node of d in order.
func (d *Document) Walk(walkFunc WalkFunc) error {
	for _, root := range d.Roots {
		if err := d.Tree.Walk(root, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns the IDs of all nodes beneath the roots matching the predicate.
func (d *Document) FindAll(predicate func(n *Node) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck // the callback never fails
	d.Walk(func(id NodeID, n *Node) error {
		if predicate(n) {
			result = append(result, id)
		}
		return nil
	})

	return result
}

// FindByName returns the IDs of all nodes with the given name.
func (d *Document) FindByName(name string) []NodeID {
	return d.FindAll(func(n *Node) bool {
		return n.Name == name
	})
}
