package cosmo

import (
	"fmt"
	"strings"
)

// DefaultPercentPrecision is the maximum number of fraction digits used by
// Percentage when no precision is given.
const DefaultPercentPrecision = 3

type moneyOptions struct {
	currency  string
	precision int
}

// MoneyOption customizes a single Money call.
type MoneyOption func(*moneyOptions)

// WithCurrency formats the amount in code instead of the context currency.
func WithCurrency(code string) MoneyOption {
	return func(o *moneyOptions) {
		o.currency = code
	}
}

// WithPrecision fixes the number of fraction digits. Negative values keep the
// currency default.
func WithPrecision(digits int) MoneyOption {
	return func(o *moneyOptions) {
		o.precision = digits
	}
}

// Money formats value as a currency amount, e.g. 12.3 in en_AU -> "$12.30".
func (c *Context) Money(value float64, opts ...MoneyOption) (string, error) {
	options := moneyOptions{currency: c.modifiers.Currency, precision: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	code := strings.ToUpper(strings.TrimSpace(options.currency))
	if code == "" {
		return "", fmt.Errorf("%w: locale %s", ErrNoCurrencyConfigured, c.locale)
	}
	return c.engine.FormatCurrency(c.locale, value, code, options.precision)
}

// Percentage formats a ratio as a percentage with at most maxFraction
// fraction digits: 0.1234 -> "12.34%".
func (c *Context) Percentage(value float64, maxFraction int) (string, error) {
	if maxFraction < 0 {
		maxFraction = DefaultPercentPrecision
	}
	return c.engine.FormatPercentage(c.locale, value, maxFraction)
}

// Number formats value with the locale's grouping and decimal symbols. A
// negative precision keeps the engine default.
func (c *Context) Number(value float64, precision int) (string, error) {
	return c.engine.FormatNumber(c.locale, value, precision)
}

func (c *Context) Ordinal(value int64) (string, error) {
	return c.engine.FormatOrdinal(c.locale, value)
}

func (c *Context) Spellout(value float64) (string, error) {
	return c.engine.FormatSpellout(c.locale, value)
}

// Duration formats seconds as "1:01:01", or with words as
// "1 hour, 1 minute, 1 second".
func (c *Context) Duration(seconds float64, withWords bool) (string, error) {
	return c.engine.FormatDuration(c.locale, seconds, withWords)
}
