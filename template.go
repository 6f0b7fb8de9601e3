package cosmo

import (
	"reflect"
	"strings"
	"sync"
	"time"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey names the map key or struct field holding the locale in
	// template data. Defaults to "Locale".
	LocaleKey string
	// Prefix is prepended to every helper name. Defaults to "cosmo_".
	Prefix string
	// Modifiers apply to every context built by the helpers.
	Modifiers Modifiers
}

// TemplateHelpers exposes the formatting facade to html/template and
// text/template. Each helper takes the template data (or a locale string)
// as its first argument and resolves the locale from it.
func TemplateHelpers(cfg *Config, hc HelperConfig) map[string]any {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	prefix := hc.Prefix
	if prefix == "" {
		prefix = "cosmo_"
	}

	contexts := &contextCache{cfg: cfg, mods: hc.Modifiers}
	ctx := func(data any) *Context {
		return contexts.get(extractLocale(data, hc.LocaleKey, cfg.DefaultLocale))
	}

	return map[string]any{
		"current_locale": func(data any) string {
			return ctx(data).String()
		},
		prefix + "language": func(data any, code string) string {
			return ctx(data).Language(Explicit(code))
		},
		prefix + "country": func(data any, code string) string {
			return ctx(data).Country(Explicit(code))
		},
		prefix + "currency": func(data any, code string) string {
			return ctx(data).CurrencyName(Explicit(code))
		},
		prefix + "direction": func(data any) string {
			return ctx(data).Direction(Default)
		},
		prefix + "quote": func(data any, text string) string {
			return ctx(data).Quote(text)
		},
		prefix + "flag": func(data any, region string) (string, error) {
			if region == "" {
				return ctx(data).Flag(Default)
			}
			return ctx(data).Flag(Explicit(region))
		},
		prefix + "list": func(data any, items ...string) string {
			return ctx(data).List(items...)
		},
		prefix + "money": func(data any, value float64, currency string) (string, error) {
			if currency == "" {
				return ctx(data).Money(value)
			}
			return ctx(data).Money(value, WithCurrency(currency))
		},
		prefix + "number": func(data any, value float64, precision int) (string, error) {
			return ctx(data).Number(value, precision)
		},
		prefix + "percentage": func(data any, value float64) (string, error) {
			return ctx(data).Percentage(value, DefaultPercentPrecision)
		},
		prefix + "ordinal": func(data any, value int64) (string, error) {
			return ctx(data).Ordinal(value)
		},
		prefix + "duration": func(data any, seconds float64) (string, error) {
			return ctx(data).Duration(seconds, true)
		},
		prefix + "moment": func(data any, value time.Time, dateStyle, timeStyle string) (string, error) {
			return ctx(data).Moment(value, dateStyle, timeStyle)
		},
		prefix + "unit": func(data any, unit, scale string, value float64, width string) (string, error) {
			return ctx(data).Unit(unit, scale, value, width)
		},
		prefix + "message": func(data any, pattern string, args ...any) (string, error) {
			return ctx(data).Message(pattern, args...)
		},
	}
}

type contextCache struct {
	cfg      *Config
	mods     Modifiers
	contexts sync.Map
}

func (c *contextCache) get(locale string) *Context {
	if cached, ok := c.contexts.Load(locale); ok {
		return cached.(*Context)
	}
	ctx, _ := c.contexts.LoadOrStore(locale, c.cfg.NewContext(locale, c.mods))
	return ctx.(*Context)
}

// extractLocale reads the locale from template data. It handles plain
// strings, maps and structs such as page data.
func extractLocale(data any, localeKey, fallback string) string {
	if data == nil {
		return fallback
	}
	if localeKey == "" {
		localeKey = "Locale"
	}

	switch d := data.(type) {
	case string:
		if strings.TrimSpace(d) == "" {
			return fallback
		}
		return d
	case *Context:
		return d.String()
	case map[string]any:
		if v, ok := d[localeKey].(string); ok && v != "" {
			return v
		}
		return fallback
	case map[string]string:
		if v := d[localeKey]; v != "" {
			return v
		}
		return fallback
	}

	value := reflect.ValueOf(data)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return fallback
		}
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		field := value.FieldByName(localeKey)
		if field.IsValid() && field.Kind() == reflect.String && field.String() != "" {
			return field.String()
		}
	}
	return fallback
}
