package topic

// node is one word of a registered pattern.
//
// count holds the registrations that pass through or end at this node. The
// part of count not accounted for by the children is the number of
// registrations ending here.
type node struct {
	word     string
	children []*node
	count    int
}

func newNode(word string) *node {
	return &node{word: word}
}

// surplus returns the number of registrations that terminate at n.
func (n *node) surplus() int {
	sum := 0
	for _, child := range n.children {
		sum += child.count
	}
	return n.count - sum
}

// childIndex returns the index of the child holding word, or -1.
func (n *node) childIndex(word string) int {
	for i, child := range n.children {
		if child.word == word {
			return i
		}
	}
	return -1
}

// detach removes the child at index i, keeping the order of the rest.
func (n *node) detach(i int) {
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
}
