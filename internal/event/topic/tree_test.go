package topic

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T, opts ...Option) *Tree {
	t.Helper()

	tree, err := NewTree(".", opts...)
	require.NoError(t, err)

	return tree
}

func mustAdd(t *testing.T, tree *Tree, patterns ...string) {
	t.Helper()

	for _, p := range patterns {
		require.NoError(t, tree.Add(p))
	}
}

// collect traverses topic and returns the reported patterns.
func collect(t *testing.T, tree *Tree, topic string) []string {
	t.Helper()

	var got []string
	require.NoError(t, tree.Traverse(topic, func(pattern string) {
		got = append(got, pattern)
	}))

	return got
}

func TestNewTree(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		delimiter string
		opts      []Option
		wantErr   bool
	}{
		"defaults":                {delimiter: "."},
		"custom tokens":           {delimiter: "/", opts: []Option{WithSingleWildcard("+"), WithMultiWildcard("**")}},
		"multi char delimiter":    {delimiter: "::"},
		"empty delimiter":         {delimiter: "", wantErr: true},
		"empty single wildcard":   {delimiter: ".", opts: []Option{WithSingleWildcard("")}, wantErr: true},
		"empty multi wildcard":    {delimiter: ".", opts: []Option{WithMultiWildcard("")}, wantErr: true},
		"identical wildcards":     {delimiter: ".", opts: []Option{WithSingleWildcard("#")}, wantErr: true},
		"wildcard with delimiter": {delimiter: ".", opts: []Option{WithMultiWildcard(".#")}, wantErr: true},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			tree, err := NewTree(tc.delimiter, tc.opts...)
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrInvalidConfig)
				assert.Nil(t, tree)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.delimiter, tree.Delimiter())
			assert.Equal(t, 0, tree.Size())
			assert.Equal(t, 0, tree.NodeCount())
		})
	}
}

func TestTreeValidation(t *testing.T) {
	t.Parallel()

	for uc, input := range map[string]string{
		"empty":           "",
		"delimiters only": "...",
		"leading":         ".a",
		"trailing":        "a.",
		"doubled":         "a..b",
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			tree := newTestTree(t)
			mustAdd(t, tree, "a.b")

			var verr *ValidationError

			err := tree.Add(input)
			require.ErrorIs(t, err, ErrInvalidTopic)
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, input, verr.Topic)

			require.ErrorIs(t, tree.Remove(input), ErrInvalidTopic)

			n, err := tree.RemoveAll(input)
			require.ErrorIs(t, err, ErrInvalidTopic)
			assert.Zero(t, n)

			err = tree.Traverse(input, func(string) { t.Fatal("unexpected visit") })
			require.ErrorIs(t, err, ErrInvalidTopic)

			// nothing changed
			assert.Equal(t, 1, tree.Size())
			assert.Equal(t, 2, tree.NodeCount())
		})
	}
}

func TestTreeValidationIgnoresIgnoreMissing(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, WithIgnoreMissing(true))

	require.ErrorIs(t, tree.Remove(""), ErrInvalidTopic)

	_, err := tree.RemoveAll("a..b")
	require.ErrorIs(t, err, ErrInvalidTopic)
}

func TestTreeAddCounts(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "a.b.c", "a.b", "a.b", "a.x")

	assert.Equal(t, 4, tree.Size())
	assert.Equal(t, 4, tree.NodeCount())
	assert.Equal(t, 2, tree.Count("a.b"))
	assert.Equal(t, 1, tree.Count("a.b.c"))
	assert.Equal(t, 0, tree.Count("a"))
	assert.Equal(t, 0, tree.Count("nope"))
	assert.Equal(t, 0, tree.Count(""))

	// root count never exceeds the sum of its children
	assert.Equal(t, 0, tree.root.surplus())
	assert.Equal(t, 4, tree.root.children[0].count)
}

func TestTreeRemoveRestoresCounts(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "one.two")
	before := tree.String()

	mustAdd(t, tree, "one.two.three.four")
	require.NoError(t, tree.Remove("one.two.three.four"))

	assert.Equal(t, before, tree.String())
	assert.Equal(t, 1, tree.Size())
	assert.Equal(t, 2, tree.NodeCount())
	assert.Empty(t, collect(t, tree, "one.two.three.four"))
}

func TestTreeRemoveOneOfTwoRegistrations(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "a.b", "a.b")

	require.NoError(t, tree.Remove("a.b"))
	assert.Equal(t, []string{"a.b"}, collect(t, tree, "a.b"))

	require.NoError(t, tree.Remove("a.b"))
	assert.Empty(t, collect(t, tree, "a.b"))
	assert.Equal(t, 0, tree.NodeCount())
	assert.Equal(t, 0, tree.Size())

	require.ErrorIs(t, tree.Remove("a.b"), ErrNotFound)
}

func TestTreeRemoveAll(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "a.*", "a.*", "a.*", "a.*.c")

	n, err := tree.RemoveAll("a.*")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, tree.Size())
	assert.Equal(t, 0, tree.Count("a.*"))
	assert.Empty(t, collect(t, tree, "a.x"))
	assert.Equal(t, []string{"a.*.c"}, collect(t, tree, "a.x.c"))

	n, err = tree.RemoveAll("a.*.c")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, tree.NodeCount())

	n, err = tree.RemoveAll("a.*")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, n)
}

func TestTreeRemoveIsExactSpelling(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "a.b")

	// the wildcard is not expanded on removal
	require.ErrorIs(t, tree.Remove("a.*"), ErrNotFound)
	require.ErrorIs(t, tree.Remove("#"), ErrNotFound)
	assert.Equal(t, 1, tree.Count("a.b"))

	mustAdd(t, tree, "a.*")
	require.NoError(t, tree.Remove("a.*"))
	assert.Equal(t, 1, tree.Count("a.b"))
	assert.Equal(t, []string{"a.b"}, tree.Patterns())
}

func TestTreeRemoveNotFound(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		patterns []string
		remove   string
	}{
		"empty tree":           {remove: "*"},
		"not found with nodes": {patterns: []string{"one", "one.two", "#"}, remove: "*"},
		"extra word":           {patterns: []string{"one", "two"}, remove: "one.three"},
		"extra word on branch": {patterns: []string{"one.two", "one.three"}, remove: "one.three.four"},
		"pass through root":    {patterns: []string{"one.two", "one.three"}, remove: "one"},
		"pass through parent": {
			patterns: []string{"one.two.three", "one.two.four", "one.two.five", "two.one"},
			remove:   "one.two",
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			tree := newTestTree(t)
			mustAdd(t, tree, tc.patterns...)
			before := tree.String()

			var nferr *NotFoundError

			err := tree.Remove(tc.remove)
			require.ErrorIs(t, err, ErrNotFound)
			require.ErrorAs(t, err, &nferr)
			assert.Equal(t, tc.remove, nferr.Pattern)
			assert.Equal(t, before, tree.String())

			n, err := tree.RemoveAll(tc.remove)
			require.ErrorIs(t, err, ErrNotFound)
			assert.Zero(t, n)
			assert.Equal(t, before, tree.String())
		})
	}
}

func TestTreeRemoveIgnoreMissing(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, WithIgnoreMissing(true))
	mustAdd(t, tree, "one.two")

	require.NoError(t, tree.Remove("one"))
	require.NoError(t, tree.Remove("three"))

	n, err := tree.RemoveAll("one.two.three")
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, 1, tree.Count("one.two"))
}

func TestTreeRemovePrunesOnlyEmptyBranches(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "one.two.three", "one.two.four", "one.two")

	require.NoError(t, tree.Remove("one.two"))
	assert.Equal(t, 4, tree.NodeCount())
	assert.Equal(t, []string{"one.two.three"}, collect(t, tree, "one.two.three"))

	require.NoError(t, tree.Remove("one.two.three"))
	assert.Equal(t, 3, tree.NodeCount())
	assert.Equal(t, []string{"one.two.four"}, tree.Patterns())
}

func TestTreePatterns(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "b.x", "a", "a.b", "a.b", "#.a")

	assert.Equal(t, []string{"b.x", "a", "a.b", "#.a"}, tree.Patterns())
	assert.Equal(t, 5, tree.Size())
}

func TestTreeCustomTokens(t *testing.T) {
	t.Parallel()

	tree, err := NewTree("/", WithSingleWildcard("+"), WithMultiWildcard("**"))
	require.NoError(t, err)
	mustAdd(t, tree, "device/+/state", "device/**", "*/x")

	assert.Equal(t, []string{"device/+/state", "device/**"}, collect(t, tree, "device/gear-001/state"))
	assert.Equal(t, []string{"*/x"}, collect(t, tree, "*/x"))
	assert.Equal(t, "+", tree.SingleWildcard())
	assert.Equal(t, "**", tree.MultiWildcard())
	assert.True(t, tree.IsWildcard("+"))
	assert.False(t, tree.IsWildcard("*"))

	err = tree.Traverse("device/+/state", func(string) {})
	require.ErrorIs(t, err, ErrInvalidTopic)
}

func TestTreeString(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t)
	mustAdd(t, tree, "*.orange.*", "*.*.rabbit", "lazy.#", "lazy.#", "quick.orange")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tree_dump", []byte(tree.String()))
}

func TestErrorsMatchSentinels(t *testing.T) {
	t.Parallel()

	var err error = &ValidationError{Topic: "a..b", Reason: "topic must not contain empty words"}
	assert.True(t, errors.Is(err, ErrInvalidTopic))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, `invalid topic "a..b": topic must not contain empty words`, err.Error())

	err = &NotFoundError{Pattern: "a.b"}
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidTopic))
	assert.Equal(t, `couldn't find topic "a.b"`, err.Error())
}
