package topic

import (
	"strconv"
	"strings"
)

// Tree stores wildcard patterns and finds the ones matching a concrete topic.
//
// Patterns are stored word by word. Each node counts the registrations that
// pass through or end at it, so a pattern added twice must be removed twice.
// Tree is not safe for concurrent use.
type Tree struct {
	delimiter string
	config    treeConfig
	root      *node
}

// NewTree creates an empty tree splitting topics on delimiter.
func NewTree(delimiter string, opts ...Option) (*Tree, error) {
	config := defaultTreeConfig()
	for _, opt := range opts {
		opt(&config)
	}

	switch {
	case delimiter == "":
		return nil, &configError{reason: "delimiter must not be empty"}
	case config.single == "" || config.multi == "":
		return nil, &configError{reason: "wildcard tokens must not be empty"}
	case config.single == config.multi:
		return nil, &configError{reason: "single and multi wildcard must differ"}
	case strings.Contains(config.single, delimiter) || strings.Contains(config.multi, delimiter):
		return nil, &configError{reason: "wildcard tokens must not contain the delimiter"}
	}

	return &Tree{
		delimiter: delimiter,
		config:    config,
		root:      newNode(""),
	}, nil
}

// configError reports a rejected NewTree configuration.
type configError struct {
	reason string
}

func (e *configError) Error() string {
	return ErrInvalidConfig.Error() + ": " + e.reason
}

func (e *configError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Delimiter returns the word delimiter.
func (t *Tree) Delimiter() string {
	return t.delimiter
}

// SingleWildcard returns the token matching exactly one word.
func (t *Tree) SingleWildcard() string {
	return t.config.single
}

// MultiWildcard returns the token matching zero or more words.
func (t *Tree) MultiWildcard() string {
	return t.config.multi
}

// Add registers pattern. Adding the same pattern again adds another
// registration of it.
func (t *Tree) Add(pattern string) error {
	words, err := t.words(pattern)
	if err != nil {
		return err
	}

	current := t.root
	for _, word := range words {
		i := current.childIndex(word)
		if i < 0 {
			current.children = append(current.children, newNode(word))
			i = len(current.children) - 1
		}
		current = current.children[i]
		current.count++
	}
	t.root.count++

	return nil
}

// Remove removes one registration of the exact pattern. Wildcard tokens in
// pattern are compared literally.
//
// It returns a NotFoundError if the pattern holds no registration, unless the
// tree ignores missing patterns.
func (t *Tree) Remove(pattern string) error {
	_, err := t.remove(pattern, false)
	return err
}

// RemoveAll removes every registration of the exact pattern and returns how
// many were removed.
func (t *Tree) RemoveAll(pattern string) (int, error) {
	return t.remove(pattern, true)
}

func (t *Tree) remove(pattern string, all bool) (int, error) {
	words, err := t.words(pattern)
	if err != nil {
		return 0, err
	}

	removed, found := removeFrom(t.root, words, all)
	if !found {
		if t.config.ignoreMissing {
			return 0, nil
		}
		return 0, &NotFoundError{Pattern: pattern}
	}
	t.root.count -= removed

	return removed, nil
}

// removeFrom removes registrations of words below parent. Counts are only
// touched on the way back up, so a miss leaves the tree unchanged.
func removeFrom(parent *node, words []string, all bool) (int, bool) {
	i := parent.childIndex(words[0])
	if i < 0 {
		return 0, false
	}
	child := parent.children[i]

	var removed int
	if len(words) == 1 {
		surplus := child.surplus()
		if surplus <= 0 {
			return 0, false
		}
		removed = 1
		if all {
			removed = surplus
		}
	} else {
		var found bool
		removed, found = removeFrom(child, words[1:], all)
		if !found {
			return 0, false
		}
	}

	child.count -= removed
	if child.count == 0 {
		parent.detach(i)
	}
	return removed, true
}

// Count returns the number of registrations of the exact pattern.
func (t *Tree) Count(pattern string) int {
	words, err := t.words(pattern)
	if err != nil {
		return 0
	}

	current := t.root
	for _, word := range words {
		i := current.childIndex(word)
		if i < 0 {
			return 0
		}
		current = current.children[i]
	}
	return current.surplus()
}

// Size returns the number of registrations held by the tree.
func (t *Tree) Size() int {
	return t.root.count
}

// NodeCount returns the number of nodes below the root.
func (t *Tree) NodeCount() int {
	count := 0
	t.walk(t.root, nil, func(_ []string, _ *node) {
		count++
	})
	return count - 1
}

// Patterns returns every registered pattern once, in insertion order of the
// branches.
func (t *Tree) Patterns() []string {
	var patterns []string
	t.walk(t.root, nil, func(path []string, n *node) {
		if n != t.root && n.surplus() > 0 {
			patterns = append(patterns, Join(path, t.delimiter))
		}
	})
	return patterns
}

// String renders the tree one node per line, indented by depth, with the
// node's registration count.
func (t *Tree) String() string {
	var b strings.Builder
	t.walk(t.root, nil, func(path []string, n *node) {
		if n == t.root {
			return
		}
		b.WriteString(strings.Repeat("  ", len(path)-1))
		b.WriteString(n.word)
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(n.count))
		b.WriteString(")\n")
	})
	return b.String()
}

// walk visits n and its descendants depth first, parents before children.
func (t *Tree) walk(n *node, path []string, f func(path []string, n *node)) {
	f(path, n)
	for _, child := range n.children {
		t.walk(child, append(path, child.word), f)
	}
}
