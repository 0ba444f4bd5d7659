package topic

// Traverse calls visit with every registered pattern matching the concrete
// topic. Each matching pattern is reported once, spelled as it was added, in
// insertion order of the branches. visit runs synchronously and cannot stop
// the traversal.
//
// Traverse returns a ValidationError if topic is malformed or contains a
// wildcard token.
func (t *Tree) Traverse(topic string, visit func(pattern string)) error {
	words, err := t.concreteWords(topic)
	if err != nil {
		return err
	}

	w := &walker{
		tree:  t,
		visit: visit,
		seen:  make(map[*node]struct{}),
	}
	for _, child := range t.root.children {
		w.step(child, words, nil)
	}
	return nil
}

// Match returns the patterns matching topic in the order Traverse reports
// them.
func (t *Tree) Match(topic string) ([]string, error) {
	var matches []string
	err := t.Traverse(topic, func(pattern string) {
		matches = append(matches, pattern)
	})
	return matches, err
}

// walker holds the state of one traversal.
type walker struct {
	tree  *Tree
	visit func(pattern string)

	// seen holds the terminal nodes already reported. A multi wildcard can
	// reach the same node through several suffixes.
	seen map[*node]struct{}
}

// step enters n if it matches the first of the remaining words. Literal and
// single wildcard nodes consume that word, a multi wildcard consumes none.
func (w *walker) step(n *node, words []string, path []string) {
	switch {
	case n.word == w.tree.config.multi:
		w.enter(n, words, append(path, n.word))
	case len(words) == 0:
		return
	case n.word == w.tree.config.single || n.word == words[0]:
		w.enter(n, words[1:], append(path, n.word))
	}
}

// enter handles a node that matched, with words left to consume.
func (w *walker) enter(n *node, words []string, path []string) {
	if n.word == w.tree.config.multi {
		// Terminal absorber: the wildcard takes every remaining word.
		if n.surplus() > 0 {
			w.report(n, path)
		}
		// Otherwise the wildcard takes some prefix of the words and the
		// children have to match the rest.
		for _, child := range n.children {
			if child.word == w.tree.config.multi {
				w.step(child, words, path)
				continue
			}
			for i := 0; i < len(words); i++ {
				w.step(child, words[i:], path)
			}
		}
		return
	}

	if len(words) == 0 {
		if n.surplus() > 0 {
			w.report(n, path)
		}
		// A trailing multi wildcard also matches zero words.
		for _, child := range n.children {
			if child.word == w.tree.config.multi {
				w.step(child, words, path)
			}
		}
		return
	}

	for _, child := range n.children {
		w.step(child, words, path)
	}
}

func (w *walker) report(n *node, path []string) {
	if _, ok := w.seen[n]; ok {
		return
	}
	w.seen[n] = struct{}{}
	w.visit(Join(path, w.tree.delimiter))
}
