package cosmo

import "fmt"

// Unit formats value with the plural patterns of a measurement unit, e.g.
// Unit("digital", "megabit", 12, "full") -> "12 megabits". Width accepts
// full, medium and short or their single letter aliases.
func (c *Context) Unit(unit, scale string, value float64, width string) (string, error) {
	w, err := ParseUnitWidth(width)
	if err != nil {
		return "", err
	}

	node, ok, err := c.resolver.Resolve(c.locale, BundleUnit, w.Table(), unit, scale)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s.%s (%s)", ErrUnknownUnit, unit, scale, w)
	}

	pattern, err := BuildPluralMessage(node)
	if err != nil {
		return "", err
	}
	return c.engine.FormatMessage(c.locale, pattern, map[string]any{"0": value})
}

// Message formats an ICU message with positional arguments {0}, {1}, ...
func (c *Context) Message(pattern string, args ...any) (string, error) {
	return c.engine.FormatMessage(c.locale, pattern, positionalArgs(args))
}

// MessageMap formats an ICU message with named arguments.
func (c *Context) MessageMap(pattern string, args map[string]any) (string, error) {
	return c.engine.FormatMessage(c.locale, pattern, args)
}
