package cosmo

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// RootLocale is the last entry of every fallback chain.
const RootLocale = "root"

// Keyword is a locale keyword such as nu=latn.
type Keyword struct {
	Key   string
	Value string
}

// Subtags are the structural components used to compose a locale.
type Subtags struct {
	Language string
	Script   string
	Region   string
	Variants []string
	Keywords []Keyword
}

// LocaleID is a canonical locale identifier decomposed into subtags.
// The zero value is the root locale.
type LocaleID struct {
	Language string
	Script   string
	Region   string
	Variants []string
	Keywords []Keyword
}

// Canonicalize normalizes a BCP 47 or ICU style identifier. Separators may be
// "-" or "_", Unicode extensions ("-u-nu-latn") and ICU keywords ("@nu=latn")
// are both accepted. Subtags that cannot be understood are kept verbatim.
func Canonicalize(locale string) LocaleID {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return LocaleID{}
	}

	base, keywords := splitKeywords(locale)
	parts := splitSubtags(base)

	core := parts
	var extra []string
	for i, part := range parts {
		if i > 0 && len(part) == 1 {
			core, extra = parts[:i], parts[i:]
			break
		}
	}

	keywords = append(keywords, unicodeKeywords(extra)...)
	id := parseCore(core)
	id.Variants = append(id.Variants, otherExtensions(extra)...)
	id.Keywords = normalizeKeywords(keywords)
	return id
}

// Compose builds a LocaleID from explicit subtags.
func Compose(tags Subtags) (LocaleID, error) {
	if strings.TrimSpace(tags.Language) == "" {
		return LocaleID{}, ErrInvalidLocale
	}

	parts := []string{tags.Language}
	if tags.Script != "" {
		parts = append(parts, tags.Script)
	}
	if tags.Region != "" {
		parts = append(parts, tags.Region)
	}
	parts = append(parts, tags.Variants...)

	id := Canonicalize(strings.Join(parts, "_"))
	id.Keywords = normalizeKeywords(append(append([]Keyword(nil), id.Keywords...), tags.Keywords...))
	return id, nil
}

func parseCore(parts []string) LocaleID {
	if len(parts) == 0 || isRootLanguage(parts[0]) {
		return LocaleID{}
	}

	if tag, err := language.Deprecated.Parse(strings.Join(parts, "-")); err == nil {
		if base, conf := tag.Base(); conf == language.Exact {
			id := LocaleID{Language: base.String()}
			if script, conf := tag.Script(); conf == language.Exact {
				id.Script = script.String()
			}
			if region, conf := tag.Region(); conf == language.Exact {
				id.Region = region.String()
			}
			for _, variant := range tag.Variants() {
				id.Variants = append(id.Variants, variant.String())
			}
			// Subtags the parser folded into extensions (POSIX becomes
			// -u-va-posix) are kept as written.
			if subtagCount(id) >= len(parts) {
				return id
			}
		}
	}

	return verbatimCore(parts)
}

func isRootLanguage(subtag string) bool {
	return strings.EqualFold(subtag, RootLocale) || strings.EqualFold(subtag, "und")
}

func subtagCount(id LocaleID) int {
	n := 1 + len(id.Variants)
	if id.Script != "" {
		n++
	}
	if id.Region != "" {
		n++
	}
	return n
}

// verbatimCore keeps subtags the parser rejected, only normalizing case.
func verbatimCore(parts []string) LocaleID {
	id := LocaleID{Language: strings.ToLower(parts[0])}
	for _, part := range parts[1:] {
		switch {
		case id.Script == "" && id.Region == "" && len(id.Variants) == 0 && len(part) == 4 && isAlpha(part):
			id.Script = titleCase(part)
		case id.Region == "" && len(id.Variants) == 0 && (len(part) == 2 && isAlpha(part) || len(part) == 3 && isDigit(part)):
			id.Region = strings.ToUpper(part)
		default:
			id.Variants = append(id.Variants, part)
		}
	}
	return id
}

func splitKeywords(locale string) (string, []Keyword) {
	idx := strings.IndexByte(locale, '@')
	if idx < 0 {
		return locale, nil
	}

	var keywords []Keyword
	for _, pair := range strings.Split(locale[idx+1:], ";") {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		keywords = append(keywords, Keyword{Key: key, Value: strings.TrimSpace(value)})
	}
	return locale[:idx], keywords
}

func splitSubtags(locale string) []string {
	fields := strings.FieldsFunc(locale, func(r rune) bool {
		return r == '-' || r == '_'
	})
	return fields
}

func unicodeKeywords(extra []string) []Keyword {
	var keywords []Keyword
	inUnicode := false
	for i := 0; i < len(extra); i++ {
		part := extra[i]
		if len(part) == 1 {
			inUnicode = strings.EqualFold(part, "u")
			continue
		}
		if !inUnicode || len(part) != 2 {
			continue
		}
		var values []string
		for i+1 < len(extra) && len(extra[i+1]) > 2 {
			i++
			values = append(values, extra[i])
		}
		keywords = append(keywords, Keyword{Key: part, Value: strings.Join(values, "-")})
	}
	return keywords
}

func otherExtensions(extra []string) []string {
	var out []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "-"))
		}
		current = nil
	}
	keep := false
	for _, part := range extra {
		if len(part) == 1 {
			flush()
			keep = !strings.EqualFold(part, "u")
		}
		if keep {
			current = append(current, strings.ToLower(part))
		}
	}
	flush()
	return out
}

var keywordAliases = map[string]string{
	"numbers":  "nu",
	"calendar": "ca",
	"currency": "cu",
}

func normalizeKeywords(keywords []Keyword) []Keyword {
	if len(keywords) == 0 {
		return nil
	}

	byKey := make(map[string]string, len(keywords))
	for _, kw := range keywords {
		key := strings.ToLower(kw.Key)
		if alias, ok := keywordAliases[key]; ok {
			key = alias
		}
		value := strings.ToLower(strings.TrimSpace(kw.Value))
		if value == "" {
			continue
		}
		byKey[key] = value
	}

	if len(byKey) == 0 {
		return nil
	}
	out := make([]Keyword, 0, len(byKey))
	for key, value := range byKey {
		out = append(out, Keyword{Key: key, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// BaseName is the locale without keywords, used to locate bundles.
func (id LocaleID) BaseName() string {
	if id.Language == "" {
		return RootLocale
	}

	parts := []string{id.Language}
	if id.Script != "" {
		parts = append(parts, id.Script)
	}
	if id.Region != "" {
		parts = append(parts, id.Region)
	}
	parts = append(parts, id.Variants...)
	return strings.Join(parts, "_")
}

// String returns the canonical identifier, e.g. "fa_IR@nu=latn".
func (id LocaleID) String() string {
	name := id.BaseName()
	if len(id.Keywords) == 0 {
		return name
	}

	pairs := make([]string, 0, len(id.Keywords))
	for _, kw := range id.Keywords {
		pairs = append(pairs, kw.Key+"="+kw.Value)
	}
	return name + "@" + strings.Join(pairs, ";")
}

// Keyword returns the value of a locale keyword.
func (id LocaleID) Keyword(key string) string {
	key = strings.ToLower(key)
	if alias, ok := keywordAliases[key]; ok {
		key = alias
	}
	for _, kw := range id.Keywords {
		if kw.Key == key {
			return kw.Value
		}
	}
	return ""
}

// IsRoot reports whether id carries no language.
func (id LocaleID) IsRoot() bool {
	return id.Language == "" || id.Language == RootLocale
}

// Subtags returns a copy of the structural components.
func (id LocaleID) Subtags() Subtags {
	return Subtags{
		Language: id.Language,
		Script:   id.Script,
		Region:   id.Region,
		Variants: append([]string(nil), id.Variants...),
		Keywords: append([]Keyword(nil), id.Keywords...),
	}
}

// Tag converts id to an x/text tag. Unknown subtags are dropped.
func (id LocaleID) Tag() language.Tag {
	if id.IsRoot() {
		return language.Und
	}

	tag := language.Make(strings.ReplaceAll(id.BaseName(), "_", "-"))
	if tag == language.Und {
		tag = language.Make(id.Language)
	}
	for _, kw := range id.Keywords {
		if len(kw.Key) != 2 || kw.Value == "" {
			continue
		}
		if next, err := tag.SetTypeForKey(kw.Key, kw.Value); err == nil {
			tag = next
		}
	}
	return tag
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return s != ""
}

func isDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
