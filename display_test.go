package cosmo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayEndToEnd(t *testing.T) {
	t.Parallel()

	ctx := newTestConfig(t).NewContext("en_AU", Modifiers{})

	assert.Equal(t, "Australia", ctx.Country(Explicit("AU")))
	assert.Equal(t, "English", ctx.Language(Explicit("en")))
	assert.Equal(t, "AUD", ctx.Modifiers().Currency)

	name, err := ctx.Currency(Default, false, false)
	require.NoError(t, err)
	assert.Equal(t, "Australian Dollar", name)

	assert.Equal(t, "“hi”", ctx.Quote("hi"))
}

func TestCountry(t *testing.T) {
	t.Parallel()

	ctx := newTestConfig(t).NewContext("en_AU", Modifiers{})

	assert.Equal(t, "Australia", ctx.Country(Default))
	assert.Equal(t, "Iran", ctx.Country(Explicit("fa_IR")))
	assert.Equal(t, "Iran", ctx.Country(Explicit("fa-ir")))
	assert.Empty(t, ctx.Country(Explicit("")))
	assert.Empty(t, ctx.Country(Explicit("en_Latn")))

	noRegion := newTestConfig(t).NewContext("en", Modifiers{})
	assert.Empty(t, noRegion.Country(Default))
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	ctx := newTestConfig(t).NewContext("en_AU", Modifiers{})

	assert.Equal(t, "English", ctx.Language(Default))
	assert.Equal(t, "German", ctx.Language(Explicit("de")))
	assert.Equal(t, "Persian", ctx.Language(Explicit("fa_IR")))
	assert.Empty(t, ctx.Language(Explicit("")))
}

func TestScriptAndCalendarNames(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	en := cfg.NewContext("en", Modifiers{})

	assert.Equal(t, "Latin", en.Script(Explicit("latn")))
	assert.Empty(t, en.Script(Default))
	assert.Equal(t, "Buddhist Calendar", en.Calendar("buddhist"))
	assert.Equal(t, "Persian Calendar", en.Calendar("persian"))
	assert.Empty(t, en.Calendar(""))
	assert.Empty(t, en.Calendar("nope"))

	fa := cfg.NewContext("fa_IR", Modifiers{})
	assert.Equal(t, "تقویم بودایی", fa.Calendar("buddhist"))

	assert.Equal(t, "繁体", cfg.NewContext("zh", Modifiers{}).Script(Explicit("Hant")))
	assert.Equal(t, "calendario budista", cfg.NewContext("es_MX", Modifiers{}).Calendar("buddhist"))
	assert.Equal(t, "ปฏิทินพุทธ", cfg.NewContext("th_TH", Modifiers{}).Calendar("buddhist"))

	root := cfg.NewContext("eo", Modifiers{})
	assert.Equal(t, "buddhist", root.Calendar("buddhist"))
}

func TestCurrencyLookup(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	au := cfg.NewContext("en_AU", Modifiers{})
	en := cfg.NewContext("en", Modifiers{})

	symbol, err := au.Currency(Default, true, false)
	require.NoError(t, err)
	assert.Equal(t, "$", symbol)

	symbol, err = en.Currency(Explicit("aud"), true, true)
	require.NoError(t, err)
	assert.Equal(t, "A$", symbol)

	assert.Equal(t, "US Dollar", au.CurrencyName(Explicit("USD")))
	assert.Equal(t, "USD", au.CurrencySymbol(Explicit("USD")))

	name, err := au.Currency(Explicit("XXX"), false, false)
	require.NoError(t, err)
	assert.Equal(t, "XXX", name)

	_, err = au.Currency(Explicit("XXX"), false, true)
	assert.ErrorIs(t, err, ErrInvalidCurrencyCode)

	_, err = en.Currency(Default, false, true)
	assert.ErrorIs(t, err, ErrInvalidCurrencyCode)
}

func TestDirection(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	assert.Equal(t, "rtl", cfg.NewContext("fa_IR", Modifiers{}).Direction(Default))
	assert.Equal(t, "ltr", cfg.NewContext("en_AU", Modifiers{}).Direction(Default))

	en := cfg.NewContext("en", Modifiers{})
	assert.Equal(t, "rtl", en.Direction(Explicit("ar_EG")))
	assert.Equal(t, "ltr", en.Direction(Explicit("!!")))
	assert.Equal(t, "ltr", en.Direction(Explicit("")))
}

type failingLoader struct{}

func (failingLoader) LoadBundle(locale, bundle string) (*Node, error) {
	return nil, &BundleLoadError{Bundle: bundle, Locale: locale, Err: errors.New("disk on fire")}
}

func TestDirectionFailsOpen(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, WithBundleLoader(failingLoader{}), WithBundleCache(0))
	ctx := cfg.NewContext("fa_IR", Modifiers{})

	assert.Equal(t, "ltr", ctx.Direction(Default))
	assert.Equal(t, "x", ctx.Quote("x"))

	_, err := ctx.Currency(Default, false, true)
	var loadErr *BundleLoadError
	assert.True(t, errors.As(err, &loadErr))

	name, err := ctx.Currency(Default, false, false)
	require.NoError(t, err)
	assert.Equal(t, "IRR", name)
}

func TestQuote(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	assert.Equal(t, "«سلام»", cfg.NewContext("fa", Modifiers{}).Quote("سلام"))
	assert.Equal(t, "„Hallo“", cfg.NewContext("de_AT", Modifiers{}).Quote("Hallo"))
	assert.Equal(t, "”مرحبا“", cfg.NewContext("ar", Modifiers{}).Quote("مرحبا"))
	assert.Equal(t, "“x”", cfg.NewContext("eo", Modifiers{}).Quote("x"))
}

func TestFlag(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	au := cfg.NewContext("en_AU", Modifiers{})

	flag, err := au.Flag(Default)
	require.NoError(t, err)
	assert.Equal(t, "🇦🇺", flag)

	flag, err = au.Flag(Explicit("gb"))
	require.NoError(t, err)
	assert.Equal(t, "🇬🇧", flag)

	for _, bad := range []string{"", "U1", "USA", "É"} {
		_, err := au.Flag(Explicit(bad))
		assert.ErrorIs(t, err, ErrInvalidRegionCode, bad)
	}

	_, err = cfg.NewContext("en", Modifiers{}).Flag(Default)
	assert.ErrorIs(t, err, ErrInvalidRegionCode)
}

func TestSymbol(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	assert.Equal(t, ".", cfg.NewContext("en", Modifiers{}).Symbol("decimal"))
	assert.Equal(t, ",", cfg.NewContext("de_DE", Modifiers{}).Symbol("decimal"))
	assert.Equal(t, "٫", cfg.NewContext("fa_IR", Modifiers{}).Symbol("decimal"))
	assert.Equal(t, ".", cfg.NewContext("fa_IR@nu=latn", Modifiers{}).Symbol("decimal"))
	assert.Equal(t, "‰", cfg.NewContext("fa", Modifiers{}).Symbol("perMille"))
	assert.Empty(t, cfg.NewContext("en", Modifiers{}).Symbol(""))
}

func TestListPatterns(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	en := cfg.NewContext("en", Modifiers{})

	assert.Equal(t, "{0} and {1}", en.ListPattern("2"))
	assert.Equal(t, "", en.List())
	assert.Equal(t, "a", en.List("a"))
	assert.Equal(t, "a and b", en.List("a", "b"))
	assert.Equal(t, "a, b, and c", en.List("a", "b", "c"))
	assert.Equal(t, "a, b, c, and d", en.List("a", "b", "c", "d"))

	de := cfg.NewContext("de", Modifiers{})
	assert.Equal(t, "a, b und c", de.List("a", "b", "c"))
}
