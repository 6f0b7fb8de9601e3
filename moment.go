package cosmo

import (
	"slices"
	"strings"
	"time"
)

const calendarTraditional = "traditional"

type momentOptions struct {
	calendar string
	pattern  string
}

// MomentOption customizes a single Moment call.
type MomentOption func(*momentOptions)

// WithCalendar overrides the context calendar for one call. It accepts
// "gregorian", "traditional" or a calendar identifier such as "persian".
func WithCalendar(calendar string) MomentOption {
	return func(o *momentOptions) {
		o.calendar = calendar
	}
}

// WithPattern renders an ICU date pattern, e.g. "y/M/d", instead of the
// date and time styles.
func WithPattern(pattern string) MomentOption {
	return func(o *momentOptions) {
		o.pattern = pattern
	}
}

// Moment formats t with the given date and time style keywords in the
// context timezone and calendar.
func (c *Context) Moment(t time.Time, dateStyle, timeStyle string, opts ...MomentOption) (string, error) {
	options := momentOptions{calendar: c.modifiers.Calendar}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	ds, err := ParseStyle(dateStyle)
	if err != nil {
		return "", err
	}
	ts, err := ParseStyle(timeStyle)
	if err != nil {
		return "", err
	}

	locale, kind := c.calendarLocale(options.calendar)
	return c.engine.FormatDateTime(locale, t, DateTimeOptions{
		DateStyle: ds,
		TimeStyle: ts,
		Timezone:  c.modifiers.Timezone,
		Calendar:  kind,
		Pattern:   options.pattern,
	})
}

// Date formats only the date part of t.
func (c *Context) Date(t time.Time, style string) (string, error) {
	return c.Moment(t, style, "none")
}

// Time formats only the time part of t.
func (c *Context) Time(t time.Time, style string) (string, error) {
	return c.Moment(t, "none", style)
}

// CustomTime formats t with an ICU pattern. An empty calendar uses the
// context calendar.
func (c *Context) CustomTime(t time.Time, pattern, calendar string) (string, error) {
	opts := []MomentOption{WithPattern(pattern)}
	if calendar != "" {
		opts = append(opts, WithCalendar(calendar))
	}
	return c.Moment(t, "none", "none", opts...)
}

// calendarLocale returns the locale to hand to the engine and the calendar
// kind. A named calendar is passed on as the ca keyword.
func (c *Context) calendarLocale(calendar string) (LocaleID, CalendarKind) {
	name := strings.ToLower(strings.TrimSpace(calendar))
	kind := calendarKind(name)
	if kind == CalendarGregorian || name == "" || name == calendarTraditional {
		return c.locale, kind
	}
	return withKeyword(c.locale, "ca", name), kind
}

func withKeyword(id LocaleID, key, value string) LocaleID {
	keywords := make([]Keyword, 0, len(id.Keywords)+1)
	for _, kw := range id.Keywords {
		if kw.Key != key {
			keywords = append(keywords, kw)
		}
	}
	keywords = append(keywords, Keyword{Key: key, Value: value})
	slices.SortFunc(keywords, func(a, b Keyword) int {
		return strings.Compare(a.Key, b.Key)
	})
	id.Keywords = keywords
	return id
}
