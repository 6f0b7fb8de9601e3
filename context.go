package cosmo

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// Modifiers override locale defaults. Empty fields are unset.
type Modifiers struct {
	Currency string
	Calendar string
	Timezone string
}

// merge returns m with every field set in override replaced.
func (m Modifiers) merge(override Modifiers) Modifiers {
	if override.Currency != "" {
		m.Currency = override.Currency
	}
	if override.Calendar != "" {
		m.Calendar = override.Calendar
	}
	if override.Timezone != "" {
		m.Timezone = override.Timezone
	}
	return m
}

// Context formats values for one locale. It is immutable and safe for
// concurrent use.
type Context struct {
	locale    LocaleID
	modifiers Modifiers
	engine    Engine
	resolver  *Resolver
	logger    *slog.Logger
}

// New builds a context with the default configuration.
func New(locale string, mods Modifiers) *Context {
	return DefaultConfig().NewContext(locale, mods)
}

// NewContext canonicalizes locale, falling back to the configured default
// when empty, and derives the currency from the region unless one is given.
func (cfg *Config) NewContext(locale string, mods Modifiers) *Context {
	if strings.TrimSpace(locale) == "" {
		locale = cfg.DefaultLocale
	}
	return cfg.newContext(Canonicalize(locale), mods)
}

// NewContextFromSubtags composes the locale from its subtags.
func (cfg *Config) NewContextFromSubtags(tags Subtags, mods Modifiers) (*Context, error) {
	id, err := Compose(tags)
	if err != nil {
		return nil, err
	}
	return cfg.newContext(id, mods), nil
}

// NewContextFromAcceptLanguage picks the best available locale for an HTTP
// Accept-Language header. An empty header selects the default locale.
func (cfg *Config) NewContextFromAcceptLanguage(header string, mods Modifiers) (*Context, error) {
	if strings.TrimSpace(header) == "" {
		return cfg.NewContext("", mods), nil
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil, fmt.Errorf("%w: accept-language %q: %v", ErrInvalidLocale, header, err)
	}
	if len(desired) == 0 {
		return cfg.NewContext("", mods), nil
	}

	available := cfg.availableLocales()
	if len(available) == 0 {
		return cfg.NewContext(desired[0].String(), mods), nil
	}

	tags, names := localeTags(available)
	if len(tags) == 0 {
		return cfg.NewContext(desired[0].String(), mods), nil
	}
	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return cfg.NewContext("", mods), nil
	}
	return cfg.NewContext(names[index], mods), nil
}

func (cfg *Config) availableLocales() []string {
	lister, ok := cfg.Engine.(LocaleLister)
	if !ok {
		return nil
	}
	locales, err := lister.Locales(BundleLocale)
	if err != nil {
		cfg.Logger.Debug("list locales", componentAttr("context"), errorAttr(err))
		return nil
	}
	return locales
}

func (cfg *Config) newContext(id LocaleID, mods Modifiers) *Context {
	merged := cfg.Modifiers.merge(mods)
	merged.Currency = strings.ToUpper(strings.TrimSpace(merged.Currency))

	if id.Region != "" && mods.Currency == "" {
		if derived := cfg.Engine.RegionCurrency(id); derived != "" {
			merged.Currency = derived
		}
	}

	return &Context{
		locale:    id,
		modifiers: merged,
		engine:    cfg.Engine,
		resolver:  cfg.resolver,
		logger:    cfg.Logger.With(componentAttr("context"), slog.String("locale", id.String())),
	}
}

// Locale returns the canonical locale.
func (c *Context) Locale() LocaleID {
	return c.locale
}

func (c *Context) String() string {
	return c.locale.String()
}

// Subtags returns a copy of the locale subtags.
func (c *Context) Subtags() Subtags {
	return c.locale.Subtags()
}

// Modifiers returns a copy of the merged modifiers.
func (c *Context) Modifiers() Modifiers {
	return c.modifiers
}

// WithModifiers returns a new context for the same locale with mods merged
// over the current modifiers. A region derived currency is kept unless mods
// sets one.
func (c *Context) WithModifiers(mods Modifiers) *Context {
	next := *c
	next.modifiers = c.modifiers.merge(mods)
	next.modifiers.Currency = strings.ToUpper(strings.TrimSpace(next.modifiers.Currency))
	return &next
}

// Get resolves a raw bundle path through the fallback chain.
func (c *Context) Get(bundle string, path ...string) (*Node, bool, error) {
	return c.resolver.Resolve(c.locale, bundle, path...)
}

func (c *Context) lookup(bundle string, path ...string) string {
	value, err := c.resolver.ResolveString(c.locale, bundle, path...)
	if err != nil {
		c.logger.Debug("bundle lookup failed", slog.String("bundle", bundle), errorAttr(err))
		return ""
	}
	return value
}
