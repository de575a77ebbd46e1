package detect

// Node is one node of an observed document. A node may carry an attached,
// encapsulated subtree (a shadow root) that is not part of its children.
type Node interface {
	// Text returns the character data of a text node; ok is false otherwise.
	Text() (text string, ok bool)
	// Children returns the direct children in document order.
	Children() []Node
	// ShadowRoot returns the attached subtree, or nil.
	ShadowRoot() Node
}

// textNodes collects the text nodes under root in document order, without
// descending into attached subtrees.
func textNodes(root Node, keep func(string) bool) []Node {
	var out []Node
	var walk func(n Node)
	walk = func(n Node) {
		for _, c := range n.Children() {
			if txt, ok := c.Text(); ok {
				if keep(txt) {
					out = append(out, c)
				}
				continue
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// shadowHosts collects the nodes under root that carry an attached subtree,
// in document order, without descending into those subtrees.
func shadowHosts(root Node) []Node {
	var out []Node
	var walk func(n Node)
	walk = func(n Node) {
		for _, c := range n.Children() {
			if c.ShadowRoot() != nil {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}
