package cosmo

import (
	"fmt"
	"strings"
)

// Style selects how much detail a date or time carries.
type Style int

const (
	StyleNone Style = iota
	StyleShort
	StyleMedium
	StyleLong
	StyleFull
)

var styleNames = map[Style]string{
	StyleNone:   "none",
	StyleShort:  "short",
	StyleMedium: "medium",
	StyleLong:   "long",
	StyleFull:   "full",
}

var styleAliases = map[string]Style{
	"none": StyleNone, "n": StyleNone,
	"short": StyleShort, "s": StyleShort,
	"medium": StyleMedium, "m": StyleMedium,
	"long": StyleLong, "l": StyleLong,
	"full": StyleFull, "f": StyleFull,
}

// ParseStyle maps a style keyword or its single letter alias.
func ParseStyle(keyword string) (Style, error) {
	style, ok := styleAliases[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return StyleNone, fmt.Errorf("%w: %q", ErrInvalidFormatType, keyword)
	}
	return style, nil
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// UnitWidth selects the unit bundle subtree.
type UnitWidth int

const (
	UnitWidthFull UnitWidth = iota
	UnitWidthMedium
	UnitWidthShort
)

var unitWidthAliases = map[string]UnitWidth{
	"full": UnitWidthFull, "f": UnitWidthFull,
	"long": UnitWidthFull, "l": UnitWidthFull,
	"medium": UnitWidthMedium, "m": UnitWidthMedium,
	"short": UnitWidthShort, "s": UnitWidthShort,
}

var unitWidthTables = map[UnitWidth]string{
	UnitWidthFull:   "units",
	UnitWidthMedium: "unitsShort",
	UnitWidthShort:  "unitsNarrow",
}

// ParseUnitWidth maps a width keyword or its single letter alias.
func ParseUnitWidth(keyword string) (UnitWidth, error) {
	width, ok := unitWidthAliases[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return UnitWidthFull, fmt.Errorf("%w: %q", ErrInvalidFormatType, keyword)
	}
	return width, nil
}

// Table is the unit bundle key holding patterns for w.
func (w UnitWidth) Table() string {
	return unitWidthTables[w]
}

func (w UnitWidth) String() string {
	switch w {
	case UnitWidthFull:
		return "full"
	case UnitWidthMedium:
		return "medium"
	case UnitWidthShort:
		return "short"
	}
	return fmt.Sprintf("UnitWidth(%d)", int(w))
}

// CalendarKind picks between the locale's native calendar and gregorian.
type CalendarKind int

const (
	CalendarGregorian CalendarKind = iota
	CalendarTraditional
)

const gregorian = "gregorian"

// calendarKind maps a calendar identifier to the engine calendar kind. An
// empty name selects the native calendar of the locale.
func calendarKind(name string) CalendarKind {
	if strings.EqualFold(strings.TrimSpace(name), gregorian) {
		return CalendarGregorian
	}
	return CalendarTraditional
}
