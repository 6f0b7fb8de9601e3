package cosmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		lang   string
		script string
		region string
	}{
		{name: "underscore", input: "en_AU", want: "en_AU", lang: "en", region: "AU"},
		{name: "hyphen", input: "en-au", want: "en_AU", lang: "en", region: "AU"},
		{name: "language only", input: "FA", want: "fa", lang: "fa"},
		{name: "script", input: "zh-hant-tw", want: "zh_Hant_TW", lang: "zh", script: "Hant", region: "TW"},
		{name: "unicode extension", input: "fa-IR-u-nu-latn", want: "fa_IR@nu=latn", lang: "fa", region: "IR"},
		{name: "icu keywords", input: "fa_IR@numbers=latn", want: "fa_IR@nu=latn", lang: "fa", region: "IR"},
		{name: "sorted keywords", input: "th_TH@nu=thai;calendar=buddhist", want: "th_TH@ca=buddhist;nu=thai", lang: "th", region: "TH"},
		{name: "posix variant", input: "en_US_POSIX", want: "en_US_POSIX", lang: "en", region: "US"},
		{name: "keyword without value", input: "en-US-u-nu", want: "en_US", lang: "en", region: "US"},
		{name: "empty icu keyword", input: "fa_IR@nu=;ca=persian", want: "fa_IR@ca=persian", lang: "fa", region: "IR"},
		{name: "root", input: "root", want: RootLocale},
		{name: "undetermined", input: "und", want: RootLocale},
		{name: "undetermined with region", input: "und_IR", want: RootLocale},
		{name: "separator only", input: "_", want: RootLocale},
		{name: "empty", input: "", want: RootLocale},
		{name: "whitespace", input: "  ", want: RootLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id := Canonicalize(tt.input)
			assert.Equal(t, tt.want, id.String())
			assert.Equal(t, tt.lang, id.Language)
			assert.Equal(t, tt.script, id.Script)
			assert.Equal(t, tt.region, id.Region)
		})
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"en_AU", "fa-IR-u-nu-latn", "zh-Hant-TW", "th_TH@ca=buddhist", "xx_YY", "_", "root", "und", "und_IR", "en_US_POSIX"} {
		once := Canonicalize(input).String()
		assert.Equal(t, once, Canonicalize(once).String(), input)
	}
}

func TestCanonicalizeKeepsUnknownSubtags(t *testing.T) {
	t.Parallel()

	id := Canonicalize("qqq_abcd_XY")
	assert.Equal(t, "qqq", id.Language)
	assert.Equal(t, "XY", id.Region)
}

func TestCanonicalizeRootHasNoLanguage(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"root", "und", "und_AU", "UND-u-nu-arab"} {
		id := Canonicalize(input)
		assert.True(t, id.IsRoot(), input)
		assert.Empty(t, id.Language, input)
		assert.Empty(t, id.Region, input)
		assert.Equal(t, []string{RootLocale}, FallbackChain(id), input)
	}
}

func TestLocaleKeyword(t *testing.T) {
	t.Parallel()

	id := Canonicalize("fa_IR@nu=latn;ca=persian")
	assert.Equal(t, "latn", id.Keyword("nu"))
	assert.Equal(t, "latn", id.Keyword("numbers"))
	assert.Equal(t, "persian", id.Keyword("calendar"))
	assert.Empty(t, id.Keyword("cu"))
	assert.Equal(t, "fa_IR", id.BaseName())
}

func TestComposeFromSubtags(t *testing.T) {
	t.Parallel()

	id, err := Compose(Subtags{Language: "sr", Script: "latn", Region: "rs"})
	require.NoError(t, err)
	assert.Equal(t, "sr_Latn_RS", id.String())

	id, err = Compose(Subtags{Language: "fa", Region: "IR", Keywords: []Keyword{{Key: "nu", Value: "latn"}}})
	require.NoError(t, err)
	assert.Equal(t, "fa_IR@nu=latn", id.String())

	_, err = Compose(Subtags{Region: "AU"})
	require.ErrorIs(t, err, ErrInvalidLocale)
}

func TestSubtagsReturnsCopy(t *testing.T) {
	t.Parallel()

	id := Canonicalize("fa_IR@nu=latn")
	tags := id.Subtags()
	tags.Keywords[0].Value = "arab"
	assert.Equal(t, "latn", id.Keyword("nu"))
}

func TestLocaleTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fa-IR-u-nu-latn", Canonicalize("fa_IR@nu=latn").Tag().String())
	assert.Equal(t, "und", LocaleID{}.Tag().String())
}

func TestFallbackChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{input: "en_AU", want: []string{"en_AU", "en", RootLocale}},
		{input: "fa_IR@nu=latn", want: []string{"fa_IR", "fa", RootLocale}},
		{input: "en", want: []string{"en", RootLocale}},
		{input: "", want: []string{RootLocale}},
		{input: "zh_Hant_TW", want: []string{"zh_Hant_TW", "zh", RootLocale}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FallbackChain(Canonicalize(tt.input)), tt.input)
	}
}

func TestNormalizeLocales(t *testing.T) {
	t.Parallel()

	got := normalizeLocales([]string{"en-au", "root", "en_AU", "", "fa"})
	assert.Equal(t, []string{"en_AU", "fa", RootLocale}, got)
}
