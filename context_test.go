package cosmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()

	base := []Option{
		WithDefaultLocale("en"),
		WithLocaleDetector(nil),
	}
	cfg, err := NewConfig(append(base, opts...)...)
	require.NoError(t, err)
	return cfg
}

func TestNewContextDerivesCurrencyFromRegion(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	tests := []struct {
		locale   string
		mods     Modifiers
		currency string
	}{
		{locale: "en_AU", currency: "AUD"},
		{locale: "fa_IR", currency: "IRR"},
		{locale: "de-DE", currency: "EUR"},
		{locale: "en", currency: ""},
		{locale: "und_IR", currency: ""},
		{locale: "root", currency: ""},
		{locale: "en_AU", mods: Modifiers{Currency: "usd"}, currency: "USD"},
		{locale: "en_GB@currency=EUR", currency: "EUR"},
	}

	for _, tt := range tests {
		ctx := cfg.NewContext(tt.locale, tt.mods)
		assert.Equal(t, tt.currency, ctx.Modifiers().Currency, tt.locale)
	}
}

func TestNewContextDerivedCurrencyIsStable(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	mods := Modifiers{Timezone: "UTC"}
	ctx := cfg.NewContext("en_AU", mods)

	mods.Currency = "JPY"
	mods.Timezone = "Asia/Tokyo"

	assert.Equal(t, "AUD", ctx.Modifiers().Currency)
	assert.Equal(t, "UTC", ctx.Modifiers().Timezone)
}

func TestNewContextUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t,
		WithDefaultLocale("fr_FR"),
		WithDefaultModifiers(Modifiers{Currency: "chf", Calendar: "gregorian"}),
	)

	ctx := cfg.NewContext("", Modifiers{})
	assert.Equal(t, "fr_FR", ctx.String())
	assert.Equal(t, "EUR", ctx.Modifiers().Currency, "region currency wins over the configured default")
	assert.Equal(t, "gregorian", ctx.Modifiers().Calendar)

	ctx = cfg.NewContext("fr", Modifiers{Calendar: "traditional"})
	assert.Equal(t, "CHF", ctx.Modifiers().Currency)
	assert.Equal(t, "traditional", ctx.Modifiers().Calendar)
}

func TestWithModifiersReturnsNewContext(t *testing.T) {
	t.Parallel()

	ctx := newTestConfig(t).NewContext("en_AU", Modifiers{})
	next := ctx.WithModifiers(Modifiers{Currency: "nzd", Timezone: "Pacific/Auckland"})

	assert.Equal(t, "AUD", ctx.Modifiers().Currency)
	assert.Empty(t, ctx.Modifiers().Timezone)
	assert.Equal(t, "NZD", next.Modifiers().Currency)
	assert.Equal(t, "Pacific/Auckland", next.Modifiers().Timezone)
	assert.Equal(t, ctx.Locale(), next.Locale())
}

func TestNewContextFromSubtags(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	ctx, err := cfg.NewContextFromSubtags(Subtags{Language: "fa", Region: "IR", Keywords: []Keyword{{Key: "nu", Value: "latn"}}}, Modifiers{})
	require.NoError(t, err)
	assert.Equal(t, "fa_IR@nu=latn", ctx.String())
	assert.Equal(t, "IRR", ctx.Modifiers().Currency)

	_, err = cfg.NewContextFromSubtags(Subtags{Region: "IR"}, Modifiers{})
	assert.ErrorIs(t, err, ErrInvalidLocale)
}

func TestNewContextFromAcceptLanguage(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	tests := []struct {
		header   string
		language string
	}{
		{header: "fa-IR,fa;q=0.9,en;q=0.8", language: "fa"},
		{header: "de-CH;q=0.9, en;q=0.5", language: "de"},
		{header: "", language: "en"},
	}

	for _, tt := range tests {
		ctx, err := cfg.NewContextFromAcceptLanguage(tt.header, Modifiers{})
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.language, ctx.Locale().Language, tt.header)
	}
}

func TestContextSubtagsAndGet(t *testing.T) {
	t.Parallel()

	ctx := newTestConfig(t).NewContext("zh-Hant-TW", Modifiers{})
	tags := ctx.Subtags()
	assert.Equal(t, "zh", tags.Language)
	assert.Equal(t, "Hant", tags.Script)
	assert.Equal(t, "TW", tags.Region)

	node, ok, err := ctx.Get(BundleLocale, "delimiters", "quotationStart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "“", node.String())

	_, ok, err = ctx.Get(BundleLocale, "no", "such", "path")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPackageNewUsesDefaultConfig(t *testing.T) {
	t.Parallel()

	ctx := New("en_AU", Modifiers{})
	assert.Equal(t, "en_AU", ctx.String())
	assert.Equal(t, "AUD", ctx.Modifiers().Currency)
}
