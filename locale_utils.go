package cosmo

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// FallbackChain returns the bundle lookup order for id: the full locale, its
// primary language and root, without duplicates.
func FallbackChain(id LocaleID) []string {
	chain := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)

	appendLocale := func(locale string) {
		if locale == "" {
			return
		}
		if _, exists := seen[locale]; exists {
			return
		}
		seen[locale] = struct{}{}
		chain = append(chain, locale)
	}

	if !id.IsRoot() {
		appendLocale(id.BaseName())
		appendLocale(id.Language)
	}
	appendLocale(RootLocale)

	return chain
}

// normalizeLocale maps an identifier to the underscore form used for bundle
// file names.
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	if strings.EqualFold(locale, RootLocale) {
		return RootLocale
	}
	return Canonicalize(locale).BaseName()
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

// localeTags converts bundle locale names to tags for matching, skipping root.
func localeTags(locales []string) ([]language.Tag, []string) {
	tags := make([]language.Tag, 0, len(locales))
	names := make([]string, 0, len(locales))
	for _, locale := range locales {
		if locale == RootLocale {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, locale)
	}
	return tags, names
}
