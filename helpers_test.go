package lowdown

// findFirst returns the first node of the given type in a depth-first
// walk of root, or nil.
func findFirst(root *Node, t NodeType) *Node {
	var found *Node
	root.Walk(func(n *Node) {
		if found == nil && n.Type == t {
			found = n
		}
	})
	return found
}

// findAll returns every node of the given type in depth-first order.
func findAll(root *Node, t NodeType) []*Node {
	var found []*Node
	root.Walk(func(n *Node) {
		if n.Type == t {
			found = append(found, n)
		}
	})
	return found
}
