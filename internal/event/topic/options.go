package topic

// Default wildcard tokens.
const (
	// DefaultSingleWildcard matches exactly one word.
	DefaultSingleWildcard = "*"

	// DefaultMultiWildcard matches zero or more words.
	DefaultMultiWildcard = "#"
)

// Option configures a Tree.
type Option func(*treeConfig)

// treeConfig contains the configuration fixed at tree creation.
type treeConfig struct {
	// single is the single-word wildcard token.
	single string

	// multi is the multi-word wildcard token.
	multi string

	// ignoreMissing turns NotFound errors from removals into no-ops.
	ignoreMissing bool
}

func defaultTreeConfig() treeConfig {
	return treeConfig{
		single: DefaultSingleWildcard,
		multi:  DefaultMultiWildcard,
	}
}

// WithSingleWildcard sets the token that matches exactly one word.
func WithSingleWildcard(token string) Option {
	return func(c *treeConfig) {
		c.single = token
	}
}

// WithMultiWildcard sets the token that matches zero or more words.
func WithMultiWildcard(token string) Option {
	return func(c *treeConfig) {
		c.multi = token
	}
}

// WithIgnoreMissing makes Remove and RemoveAll return nil instead of a
// NotFoundError when the pattern is not registered.
func WithIgnoreMissing(ignore bool) Option {
	return func(c *treeConfig) {
		c.ignoreMissing = ignore
	}
}
