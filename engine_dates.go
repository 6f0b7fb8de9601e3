package cosmo

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_AU"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/fa"
	"github.com/go-playground/locales/fa_IR"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/th"
	"github.com/go-playground/locales/th_TH"
	"github.com/go-playground/locales/zh"
	"github.com/goodsign/monday"
	"golang.org/x/text/number"
)

var translatorFactories = map[string]func() locales.Translator{
	"ar":    ar.New,
	"de":    de.New,
	"de_DE": de_DE.New,
	"en":    en.New,
	"en_AU": en_AU.New,
	"en_GB": en_GB.New,
	"en_US": en_US.New,
	"es":    es.New,
	"es_ES": es_ES.New,
	"fa":    fa.New,
	"fa_IR": fa_IR.New,
	"fr":    fr.New,
	"fr_FR": fr_FR.New,
	"it":    it.New,
	"ja":    ja.New,
	"pt":    pt.New,
	"ru":    ru.New,
	"th":    th.New,
	"th_TH": th_TH.New,
	"zh":    zh.New,
}

var translators sync.Map

func translatorFor(locale LocaleID) locales.Translator {
	name := "en"
	for _, entry := range FallbackChain(locale) {
		if _, ok := translatorFactories[entry]; ok {
			name = entry
			break
		}
	}

	if cached, ok := translators.Load(name); ok {
		return cached.(locales.Translator)
	}
	translator, _ := translators.LoadOrStore(name, translatorFactories[name]())
	return translator.(locales.Translator)
}

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_US": monday.LocaleEnUS,
	"en_GB": monday.LocaleEnGB,
	"en_AU": monday.LocaleEnUS,
	"de":    monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_CA": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_BR": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"ru":    monday.LocaleRuRU,
	"ja":    monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_TW": monday.LocaleZhTW,
	"ko":    monday.LocaleKoKR,
	"tr":    monday.LocaleTrTR,
	"th":    monday.LocaleThTH,
}

func mondayLocale(locale LocaleID) monday.Locale {
	for _, entry := range FallbackChain(locale) {
		if loc, ok := mondayLocales[entry]; ok {
			return loc
		}
	}
	return monday.LocaleEnUS
}

func (e *XTextEngine) FormatDateTime(locale LocaleID, value time.Time, opts DateTimeOptions) (string, error) {
	if opts.Timezone != "" {
		loc, err := time.LoadLocation(opts.Timezone)
		if err != nil {
			return "", engineErrorf(CodeIllegalArgument, "unknown timezone %q", opts.Timezone)
		}
		value = value.In(loc)
	}

	calendar := e.calendarName(locale, opts.Calendar)
	if opts.Pattern != "" {
		return e.renderPattern(locale, calendar, value, opts.Pattern)
	}

	date, err := e.formatDate(locale, calendar, value, opts.DateStyle)
	if err != nil {
		return "", err
	}
	clock, err := e.formatTime(locale, calendar, value, opts.TimeStyle)
	if err != nil {
		return "", err
	}

	switch {
	case date == "":
		return clock, nil
	case clock == "":
		return date, nil
	}

	glue, err := e.resolver.ResolveString(locale, BundleLocale, "calendar", "dateTimePattern")
	if err != nil || glue == "" {
		glue = "{1} {0}"
	}
	return strings.NewReplacer("{1}", date, "{0}", clock).Replace(glue), nil
}

// calendarName resolves the calendar used for rendering. Traditional selects
// the locale default from the bundle, which is gregorian unless stated.
func (e *XTextEngine) calendarName(locale LocaleID, kind CalendarKind) string {
	if kind == CalendarGregorian {
		return gregorian
	}
	if ca := locale.Keyword("ca"); ca != "" {
		return ca
	}
	name, err := e.resolver.ResolveString(locale, BundleLocale, "calendar", "default")
	if err != nil || name == "" {
		return gregorian
	}
	return name
}

func (e *XTextEngine) formatDate(locale LocaleID, calendar string, value time.Time, style Style) (string, error) {
	if style == StyleNone {
		return "", nil
	}

	if calendar != gregorian {
		pattern, err := e.resolver.ResolveString(locale, BundleLocale, "calendar", calendar, "patterns", style.String())
		if err != nil {
			return "", err
		}
		if pattern != "" {
			return e.renderPattern(locale, calendar, value, pattern)
		}
		e.logger.Debug("no date pattern for calendar, using gregorian",
			componentAttr("dates"), "calendar", calendar, "locale", locale.String())
	}

	translator := translatorFor(locale)
	switch style {
	case StyleShort:
		return translator.FmtDateShort(value), nil
	case StyleMedium:
		return translator.FmtDateMedium(value), nil
	case StyleLong:
		return translator.FmtDateLong(value), nil
	default:
		return translator.FmtDateFull(value), nil
	}
}

// formatTime renders the bundle time pattern for style. Translators are
// only consulted when no bundle in the chain has one.
func (e *XTextEngine) formatTime(locale LocaleID, calendar string, value time.Time, style Style) (string, error) {
	if style == StyleNone {
		return "", nil
	}

	pattern, err := e.resolver.ResolveString(locale, BundleLocale, "calendar", "timePatterns", style.String())
	if err != nil {
		return "", err
	}
	if pattern != "" {
		return e.renderPattern(locale, calendar, value, pattern)
	}

	translator := translatorFor(locale)
	switch style {
	case StyleShort:
		return translator.FmtTimeShort(value), nil
	case StyleMedium:
		return translator.FmtTimeMedium(value), nil
	case StyleLong:
		return translator.FmtTimeLong(value), nil
	default:
		return translator.FmtTimeFull(value), nil
	}
}

// calendarDate is a date in a specific calendar.
type calendarDate struct {
	year, month, day int
}

func toCalendar(calendar string, value time.Time) calendarDate {
	y, m, d := value.Date()
	switch calendar {
	case "persian":
		jy, jm, jd := gregorianToJalali(y, int(m), d)
		return calendarDate{jy, jm, jd}
	case "buddhist":
		return calendarDate{y + 543, int(m), d}
	default:
		return calendarDate{y, int(m), d}
	}
}

func gregorianToJalali(gy, gm, gd int) (jy, jm, jd int) {
	daysBeforeMonth := [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 355666 + 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 + gd + daysBeforeMonth[gm-1]
	jy = -1595 + 33*(days/12053)
	days %= 12053
	jy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}
	if days < 186 {
		return jy, 1 + days/31, 1 + days%31
	}
	return jy, 7 + (days-186)/30, 1 + (days-186)%30
}

// renderPattern formats value with an ICU date pattern.
func (e *XTextEngine) renderPattern(locale LocaleID, calendar string, value time.Time, pattern string) (string, error) {
	date := toCalendar(calendar, value)
	p := e.printer(locale)
	digits := func(n, width int) string {
		return p.Sprintf("%v", number.Decimal(n, number.NoSeparator(), number.MinIntegerDigits(width)))
	}

	var out strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\'' {
			end := i + 1
			if end < len(pattern) && pattern[end] == '\'' {
				out.WriteByte('\'')
				i += 2
				continue
			}
			for end < len(pattern) {
				if pattern[end] == '\'' {
					if end+1 < len(pattern) && pattern[end+1] == '\'' {
						out.WriteByte('\'')
						end += 2
						continue
					}
					break
				}
				out.WriteByte(pattern[end])
				end++
			}
			if end >= len(pattern) {
				return "", engineErrorf(CodePatternSyntax, "unterminated quote in %q", pattern)
			}
			i = end + 1
			continue
		}

		if !isPatternLetter(c) {
			out.WriteByte(c)
			i++
			continue
		}

		count := 1
		for i+count < len(pattern) && pattern[i+count] == c {
			count++
		}
		i += count

		field, err := e.patternField(locale, calendar, date, value, c, count, digits)
		if err != nil {
			return "", err
		}
		out.WriteString(field)
	}
	return out.String(), nil
}

func isPatternLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (e *XTextEngine) patternField(locale LocaleID, calendar string, date calendarDate, value time.Time, letter byte, count int, digits func(int, int) string) (string, error) {
	switch letter {
	case 'G':
		if date.year > 0 {
			return e.eraName(locale, calendar, 1, "AD"), nil
		}
		return e.eraName(locale, calendar, 0, "BC"), nil
	case 'y', 'Y', 'u':
		if count == 2 {
			return digits(date.year%100, 2), nil
		}
		return digits(date.year, count), nil
	case 'M', 'L':
		switch {
		case count <= 2:
			return digits(date.month, count), nil
		case count == 3:
			return e.monthName(locale, calendar, date.month, value, "monthAbbreviations", "Jan"), nil
		case count == 4:
			return e.monthName(locale, calendar, date.month, value, "monthNames", "January"), nil
		default:
			name := []rune(e.monthName(locale, calendar, date.month, value, "monthNames", "January"))
			if len(name) == 0 {
				return "", nil
			}
			return string(name[:1]), nil
		}
	case 'd':
		return digits(date.day, count), nil
	case 'D':
		return digits(value.YearDay(), count), nil
	case 'E', 'c', 'e':
		switch {
		case count <= 3:
			return e.dayName(locale, value, "dayAbbreviations", "Mon"), nil
		case count == 4:
			return e.dayName(locale, value, "dayNames", "Monday"), nil
		default:
			name := []rune(e.dayName(locale, value, "dayNames", "Monday"))
			if len(name) == 0 {
				return "", nil
			}
			return string(name[:1]), nil
		}
	case 'a':
		return e.dayPeriod(locale, value), nil
	case 'h':
		h := value.Hour() % 12
		if h == 0 {
			h = 12
		}
		return digits(h, count), nil
	case 'H':
		return digits(value.Hour(), count), nil
	case 'k':
		h := value.Hour()
		if h == 0 {
			h = 24
		}
		return digits(h, count), nil
	case 'K':
		return digits(value.Hour()%12, count), nil
	case 'm':
		return digits(value.Minute(), count), nil
	case 's':
		return digits(value.Second(), count), nil
	case 'S':
		frac := strconv.Itoa(value.Nanosecond() + 1000000000)[1:]
		if count > len(frac) {
			frac += strings.Repeat("0", count-len(frac))
		}
		return frac[:count], nil
	case 'Q', 'q':
		quarter := (int(value.Month())-1)/3 + 1
		if count <= 2 {
			return digits(quarter, count), nil
		}
		return "Q" + strconv.Itoa(quarter), nil
	case 'w':
		_, week := value.ISOWeek()
		return digits(week, count), nil
	case 'z':
		if count == 4 {
			return value.Location().String(), nil
		}
		return value.Format("MST"), nil
	case 'Z':
		if count == 5 {
			return value.Format("Z07:00"), nil
		}
		return value.Format("-0700"), nil
	case 'X', 'x':
		if count >= 3 {
			return value.Format("Z07:00"), nil
		}
		return value.Format("Z0700"), nil
	default:
		return "", engineErrorf(CodeIllegalArgument, "unsupported pattern letter %q", string(letter))
	}
}

func (e *XTextEngine) eraName(locale LocaleID, calendar string, index int, fallback string) string {
	node, ok, err := e.resolver.Resolve(locale, BundleLocale, "calendar", calendar, "eras")
	if err == nil && ok {
		if value, found := node.Index(index); found && value != "" {
			return value
		}
	}
	return fallback
}

func (e *XTextEngine) monthName(locale LocaleID, calendar string, month int, value time.Time, field, layout string) string {
	node, ok, err := e.resolver.Resolve(locale, BundleLocale, "calendar", calendar, field)
	if err == nil && ok {
		if name, found := node.Index(month - 1); found && name != "" {
			return name
		}
	}
	return monday.Format(value, layout, mondayLocale(locale))
}

func (e *XTextEngine) dayName(locale LocaleID, value time.Time, field, layout string) string {
	node, ok, err := e.resolver.Resolve(locale, BundleLocale, "calendar", "weekdays", field)
	if err == nil && ok {
		if name, found := node.Index(int(value.Weekday())); found && name != "" {
			return name
		}
	}
	return monday.Format(value, layout, mondayLocale(locale))
}

func (e *XTextEngine) dayPeriod(locale LocaleID, value time.Time) string {
	node, ok, err := e.resolver.Resolve(locale, BundleLocale, "calendar", "dayPeriods")
	index := 0
	if value.Hour() >= 12 {
		index = 1
	}
	if err == nil && ok {
		if name, found := node.Index(index); found && name != "" {
			return name
		}
	}
	return monday.Format(value, "PM", mondayLocale(locale))
}
