package cosmo

import (
	"fmt"
	"log/slog"
	"strings"
)

const regionalIndicatorOffset = 0x1F1E6 - 'A'

// Language returns the display name of a language, e.g. "en" -> "English".
func (c *Context) Language(code Param) string {
	value := code.or(c.locale.Language)
	if value == "" {
		return ""
	}
	return c.engine.DisplayLanguageName(value, c.locale)
}

// Country returns the display name of a region code or of the region of a
// locale identifier, e.g. "AU" or "en_AU" -> "Australia".
func (c *Context) Country(code Param) string {
	value := strings.TrimSpace(code.or(c.locale.Region))
	if value == "" {
		return ""
	}
	if strings.ContainsAny(value, "-_") {
		value = Canonicalize(value).Region
		if value == "" {
			return ""
		}
	}
	return c.engine.DisplayRegionName(value, c.locale)
}

// Script returns the display name of a script code, e.g. "Latn" -> "Latin".
func (c *Context) Script(code Param) string {
	value := titleCase(strings.TrimSpace(code.or(c.locale.Script)))
	if value == "" {
		return ""
	}
	return c.lookup(BundleLanguage, "Scripts", value)
}

// Calendar returns the display name of a calendar, e.g. "buddhist" ->
// "Buddhist Calendar".
func (c *Context) Calendar(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	return c.lookup(BundleLanguage, "Types", "calendar", code)
}

// Currency resolves a currency name, or its symbol when symbol is set. With
// Default the context currency is used. Unknown codes are returned unchanged
// unless strict is set, which reports ErrInvalidCurrencyCode.
func (c *Context) Currency(code Param, symbol, strict bool) (string, error) {
	value := strings.ToUpper(strings.TrimSpace(code.or(c.modifiers.Currency)))

	node, ok, err := c.resolver.Resolve(c.locale, BundleCurrency, "Currencies", value)
	if err != nil {
		if strict {
			return "", err
		}
		c.logger.Debug("currency lookup failed", slog.String("currency", value), errorAttr(err))
		return value, nil
	}
	if !ok || value == "" {
		if strict {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, value)
		}
		return value, nil
	}

	index := 1
	if symbol {
		index = 0
	}
	if name, found := node.Index(index); found && name != "" {
		return name, nil
	}
	return node.String(), nil
}

// CurrencyName is the non strict display name of a currency.
func (c *Context) CurrencyName(code Param) string {
	name, _ := c.Currency(code, false, false)
	return name
}

// CurrencySymbol is the non strict symbol of a currency.
func (c *Context) CurrencySymbol(code Param) string {
	symbol, _ := c.Currency(code, true, false)
	return symbol
}

// Direction returns "rtl" or "ltr" for a locale. It never fails, lookup
// problems default to "ltr".
func (c *Context) Direction(locale Param) string {
	id := c.locale
	if !locale.IsDefault() {
		id = Canonicalize(locale.Value())
	}

	value, err := c.resolver.ResolveString(id, BundleLocale, "layout", "characters")
	if err != nil {
		c.logger.Debug("direction lookup failed", slog.String("target", id.String()), errorAttr(err))
		return "ltr"
	}
	if value == "right-to-left" {
		return "rtl"
	}
	return "ltr"
}

// Quote wraps text in the locale's quotation marks.
func (c *Context) Quote(text string) string {
	start := c.lookup(BundleLocale, "delimiters", "quotationStart")
	end := c.lookup(BundleLocale, "delimiters", "quotationEnd")
	return start + text + end
}

// Flag returns the emoji flag of a two letter region code.
func (c *Context) Flag(region Param) (string, error) {
	value := strings.ToUpper(strings.TrimSpace(region.or(c.locale.Region)))
	if len(value) != 2 || !isAlpha(value) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRegionCode, value)
	}

	runes := make([]rune, 0, 2)
	for _, r := range value {
		runes = append(runes, r+regionalIndicatorOffset)
	}
	return string(runes), nil
}

// Symbol returns a number symbol such as "decimal", "group", "percentSign"
// or "minusSign" for the locale's numbering system.
func (c *Context) Symbol(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if value := c.lookup(BundleLocale, "NumberElements", c.numberingSystem(), "symbols", name); value != "" {
		return value
	}
	return c.lookup(BundleLocale, "NumberElements", "latn", "symbols", name)
}

func (c *Context) numberingSystem() string {
	if nu := c.locale.Keyword("nu"); nu != "" {
		return nu
	}
	if nu := c.lookup(BundleLocale, "NumberElements", "default"); nu != "" {
		return nu
	}
	return "latn"
}

// ListPattern returns a list pattern part such as "2", "start", "middle" or
// "end" of the standard list style.
func (c *Context) ListPattern(part string) string {
	return c.lookup(BundleLocale, "listPattern", "standard", part)
}

// List joins items with the locale's standard list patterns.
func (c *Context) List(items ...string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fillListPattern(c.ListPattern("2"), items[0], items[1])
	}

	out := fillListPattern(c.ListPattern("end"), items[len(items)-2], items[len(items)-1])
	for i := len(items) - 3; i > 0; i-- {
		out = fillListPattern(c.ListPattern("middle"), items[i], out)
	}
	return fillListPattern(c.ListPattern("start"), items[0], out)
}

func fillListPattern(pattern, first, second string) string {
	if pattern == "" {
		pattern = "{0}, {1}"
	}
	return strings.NewReplacer("{0}", first, "{1}", second).Replace(pattern)
}
