// Package topic provides the pattern tree used to route published topics to
// wildcard subscriptions.
//
// # Topic Format
//
// Topics and patterns are sequences of words joined by a delimiter chosen when
// the tree is created. With "." as the delimiter:
//
//	quick.orange.rabbit
//	lazy.brown.fox
//	device.gear-001.state
//
// Empty topics and empty words ("a..b", ".a", "a.") are rejected.
//
// # Wildcards
//
// Two wildcard tokens are recognised in patterns (configurable, defaults shown):
//
//   - "*" matches exactly one word
//   - "#" matches zero or more words, anywhere in the pattern
//
// Examples:
//
//	*.orange.*        matches quick.orange.rabbit (not orange, not a.b.orange.c)
//	lazy.#            matches lazy, lazy.orange, lazy.orange.elephant
//	#.rabbit          matches rabbit, quick.rabbit, a.b.c.rabbit
//	first.#.three     matches first.three, first.x.three, first.x.y.three
//
// Published topics must be concrete: a topic containing a wildcard token is a
// validation error.
//
// # Registrations
//
// Every node counts the registrations passing through or ending at it, so the
// same pattern may be added several times and removed one registration at a
// time (Remove) or all at once (RemoveAll). Removal is by exact spelling:
// removing "a.*" removes the "a.*" registration, it never expands the
// wildcard. Branches whose count drops to zero are pruned.
//
// # Usage
//
//	tree, err := topic.NewTree(".")
//	if err != nil {
//	    return err
//	}
//	_ = tree.Add("*.orange.*")
//	_ = tree.Add("lazy.#")
//
//	err = tree.Traverse("lazy.orange.elephant", func(pattern string) {
//	    fmt.Println(pattern) // "*.orange.*", then "lazy.#"
//	})
//
// # Thread Safety
//
// Tree is not safe for concurrent use. Callers sharing a tree between
// goroutines must guard every call, including Traverse, with one lock.
package topic
