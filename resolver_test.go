package cosmo

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(entries ...TableEntry) *Node {
	return TableNode(entries...)
}

func entry(key string, value *Node) TableEntry {
	return TableEntry{Key: key, Value: value}
}

func newTestLoader() *MapLoader {
	return NewMapLoader().
		Set("test", "en_AU", table(
			entry("greeting", StringNode("G'day")),
			entry("nested", table(entry("left", StringNode("au-left")))),
			entry("leafy", StringNode("not a table")),
			entry("blank", StringNode("  ")),
		)).
		Set("test", "en", table(
			entry("greeting", StringNode("Hello")),
			entry("only_en", StringNode("from en")),
			entry("nested", table(
				entry("left", StringNode("en-left")),
				entry("right", StringNode("en-right")),
			)),
			entry("leafy", table(entry("inner", StringNode("en-inner")))),
			entry("blank", StringNode("en-blank")),
		)).
		Set("test", RootLocale, table(
			entry("only_root", StringNode("from root")),
			entry("pair", ListNode("first", "second")),
			entry("empty_list", ListNode()),
		))
}

func TestResolverFallback(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newTestLoader(), nil)
	locale := Canonicalize("en_AU")

	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "own entry", path: []string{"greeting"}, want: "G'day"},
		{name: "language entry", path: []string{"only_en"}, want: "from en"},
		{name: "root entry", path: []string{"only_root"}, want: "from root"},
		{name: "nested own", path: []string{"nested", "left"}, want: "au-left"},
		{name: "partial match moves on", path: []string{"nested", "right"}, want: "en-right"},
		{name: "leaf mid path moves on", path: []string{"leafy", "inner"}, want: "en-inner"},
		{name: "blank leaf moves on", path: []string{"blank"}, want: "en-blank"},
		{name: "list leaf", path: []string{"pair"}, want: "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node, ok, err := resolver.Resolve(locale, "test", tt.path...)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, node.String())
		})
	}
}

func TestResolverAbsent(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newTestLoader(), nil)

	node, ok, err := resolver.Resolve(Canonicalize("en_AU"), "test", "missing", "path")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, node)

	_, ok, err = resolver.Resolve(Canonicalize("en_AU"), "test", "empty_list")
	require.NoError(t, err)
	assert.False(t, ok)

	value, err := resolver.ResolveString(Canonicalize("fr_FR"), "test", "only_en")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestResolverUnknownLocaleUsesRoot(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newTestLoader(), nil)

	value, err := resolver.ResolveString(Canonicalize("de_CH"), "test", "only_root")
	require.NoError(t, err)
	assert.Equal(t, "from root", value)
}

func TestResolverBundleErrors(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newTestLoader(), nil)

	_, _, err := resolver.Resolve(Canonicalize("en"), "nope", "x")
	var loadErr *BundleLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope", loadErr.Bundle)

	_, _, err = resolver.Resolve(Canonicalize("en"), "Bad Name", "x")
	require.True(t, errors.As(err, &loadErr))
}

func TestResolverLogsCorruptLevelAndFallsBack(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"test/en_AU.yaml": {Data: []byte("greeting: [unclosed\n")},
		"test/en.yaml":    {Data: []byte("greeting: Hello\n")},
	}

	var logs bytes.Buffer
	resolver := NewResolver(NewFSLoader(fsys), NewLogger(&logs, "text", "warn"))

	value, err := resolver.ResolveString(Canonicalize("en_AU"), "test", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello", value)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "bundle load failed")
	assert.Contains(t, logs.String(), "entry=en_AU")
}

func TestResolverWithoutLoader(t *testing.T) {
	t.Parallel()

	var resolver *Resolver
	_, _, err := resolver.Resolve(Canonicalize("en"), "test", "x")
	var loadErr *BundleLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestNodeWalkAndMerge(t *testing.T) {
	t.Parallel()

	base := table(
		entry("a", table(entry("x", StringNode("1")), entry("y", StringNode("2")))),
		entry("b", StringNode("keep")),
	)
	over := table(
		entry("a", table(entry("y", StringNode("two")), entry("z", StringNode("3")))),
		entry("c", ListNode("p", "q")),
	)

	merged := base.merge(over)
	assert.Equal(t, []string{"a", "b", "c"}, merged.Keys())

	a, ok := merged.Walk("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y", "z"}, a.Keys())

	y, ok := merged.Walk("a", "y")
	require.True(t, ok)
	assert.Equal(t, "two", y.String())

	_, ok = merged.Walk("b", "deeper")
	assert.False(t, ok)

	c, _ := merged.Walk("c")
	second, ok := c.Index(1)
	require.True(t, ok)
	assert.Equal(t, "q", second)

	x, _ := base.Walk("a", "x")
	assert.Equal(t, "1", x.String())
	_, ok = base.Walk("a", "z")
	assert.False(t, ok, "merge must not mutate the base table")
}

func TestNodeEmpty(t *testing.T) {
	t.Parallel()

	var missing *Node
	assert.True(t, missing.Empty())
	assert.True(t, StringNode(" ").Empty())
	assert.True(t, ListNode().Empty())
	assert.True(t, TableNode().Empty())
	assert.False(t, StringNode("x").Empty())
	assert.Equal(t, KindList, ListNode("a").Kind())
}
