package cosmo

import "time"

// Engine is the locale data and formatting backend used by Context. The
// default implementation is XTextEngine.
type Engine interface {
	BundleLoader

	DisplayLanguageName(code string, in LocaleID) string
	DisplayRegionName(code string, in LocaleID) string
	RegionCurrency(locale LocaleID) string

	// A negative precision selects the locale default.
	FormatNumber(locale LocaleID, value float64, precision int) (string, error)
	FormatPercentage(locale LocaleID, value float64, precision int) (string, error)
	FormatCurrency(locale LocaleID, value float64, code string, precision int) (string, error)
	FormatOrdinal(locale LocaleID, value int64) (string, error)
	FormatSpellout(locale LocaleID, value float64) (string, error)
	FormatDuration(locale LocaleID, seconds float64, withWords bool) (string, error)
	FormatDateTime(locale LocaleID, value time.Time, opts DateTimeOptions) (string, error)
	FormatMessage(locale LocaleID, pattern string, args map[string]any) (string, error)
}

// DateTimeOptions drive Engine.FormatDateTime. Pattern, when set, replaces
// the styles.
type DateTimeOptions struct {
	DateStyle Style
	TimeStyle Style
	Timezone  string
	Calendar  CalendarKind
	Pattern   string
}
