package cosmo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPluralMessage(t *testing.T) {
	t.Parallel()

	node := table(
		entry("one", StringNode("{0} day")),
		entry("other", StringNode("{0} days")),
	)

	got, err := BuildPluralMessage(node)
	require.NoError(t, err)
	assert.Equal(t, "{0,plural,one {# day}other {# days}}", got)

	again, err := BuildPluralMessage(node)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestBuildPluralMessageKeepsOrderAndSkipsTables(t *testing.T) {
	t.Parallel()

	node := table(
		entry("other", StringNode("{0} ours, {0} total")),
		entry("dnam", table(entry("x", StringNode("ignored")))),
		entry("one", StringNode("{0} hour")),
	)

	got, err := BuildPluralMessage(node)
	require.NoError(t, err)
	assert.Equal(t, "{0,plural,other {# ours, # total}one {# hour}}", got)
}

func TestBuildPluralMessageRejectsLeaves(t *testing.T) {
	t.Parallel()

	_, err := BuildPluralMessage(StringNode("{0} day"))
	assert.True(t, errors.Is(err, ErrUnknownUnit))

	_, err = BuildPluralMessage(nil)
	assert.Error(t, err)
}

func TestPluralMessageRendersThroughEngine(t *testing.T) {
	t.Parallel()

	engine := NewXTextEngine(nil, nil)
	pattern, err := BuildPluralMessage(table(
		entry("one", StringNode("{0} day")),
		entry("other", StringNode("{0} days")),
	))
	require.NoError(t, err)

	for value, want := range map[float64]string{1: "1 day", 2: "2 days", 1.5: "1.5 days", 0: "0 days"} {
		got, err := engine.FormatMessage(Canonicalize("en"), pattern, map[string]any{"0": value})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
