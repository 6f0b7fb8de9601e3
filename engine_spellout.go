package cosmo

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/number"
)

var (
	spelloutOnes = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	spelloutTens = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	spelloutScales = []struct {
		value uint64
		name  string
	}{
		{1_000_000_000_000_000_000, "quintillion"},
		{1_000_000_000_000_000, "quadrillion"},
		{1_000_000_000_000, "trillion"},
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
)

// FormatSpellout spells out numbers following the English cardinal rules.
// Other languages are not supported.
func (e *XTextEngine) FormatSpellout(locale LocaleID, value float64) (string, error) {
	if !locale.IsRoot() && locale.Language != "en" {
		return "", engineErrorf(CodeUnsupported, "no spellout rules for %s", locale.String())
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || math.Abs(value) >= 1e19 {
		return "", engineErrorf(CodeIllegalArgument, "cannot spell out %v", value)
	}

	var words []string
	if value < 0 {
		words = append(words, "minus")
		value = -value
	}

	digits := strconv.FormatFloat(value, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(digits, ".")
	whole, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return "", engineErrorf(CodeIllegalArgument, "cannot spell out %v", value)
	}
	words = append(words, spellInteger(whole))

	if fracPart != "" {
		words = append(words, "point")
		for _, d := range fracPart {
			words = append(words, spelloutOnes[d-'0'])
		}
	}
	return strings.Join(words, " "), nil
}

func spellInteger(n uint64) string {
	if n < 100 {
		return spellUnderHundred(n)
	}

	var parts []string
	for _, scale := range spelloutScales {
		if n >= scale.value {
			parts = append(parts, spellInteger(n/scale.value)+" "+scale.name)
			n %= scale.value
		}
	}
	if n >= 100 {
		parts = append(parts, spelloutOnes[n/100]+" hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, spellUnderHundred(n))
	}
	return strings.Join(parts, " ")
}

func spellUnderHundred(n uint64) string {
	if n < 20 {
		return spelloutOnes[n]
	}
	word := spelloutTens[n/10]
	if n%10 != 0 {
		word += "-" + spelloutOnes[n%10]
	}
	return word
}

// FormatDuration renders seconds as h:mm:ss, or with unit words.
func (e *XTextEngine) FormatDuration(locale LocaleID, seconds float64, withWords bool) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", engineErrorf(CodeIllegalArgument, "invalid duration %v", seconds)
	}

	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	total := int64(seconds)
	h, m, s := total/3600, total%3600/60, total%60

	if withWords {
		out, err := e.durationWords(locale, h, m, s)
		if err != nil {
			return "", err
		}
		return sign + out, nil
	}

	p := e.printer(locale)
	digits := func(n int64, width int) string {
		return p.Sprintf("%v", number.Decimal(n, number.NoSeparator(), number.MinIntegerDigits(width)))
	}
	switch {
	case h > 0:
		return sign + digits(h, 1) + ":" + digits(m, 2) + ":" + digits(s, 2), nil
	case m > 0:
		return sign + digits(m, 1) + ":" + digits(s, 2), nil
	default:
		out, err := e.durationUnit(locale, "unitsShort", "second", float64(s))
		if err != nil {
			return "", err
		}
		return sign + out, nil
	}
}

func (e *XTextEngine) durationWords(locale LocaleID, h, m, s int64) (string, error) {
	fields := []struct {
		scale string
		value int64
	}{
		{"hour", h},
		{"minute", m},
		{"second", s},
	}

	var parts []string
	for _, field := range fields {
		if field.value == 0 {
			continue
		}
		part, err := e.durationUnit(locale, "units", field.scale, float64(field.value))
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return e.durationUnit(locale, "units", "second", 0)
	}

	separator, err := e.resolver.ResolveString(locale, BundleLocale, "listPattern", "unit", "middle")
	if err != nil {
		return "", err
	}
	if separator == "" {
		return strings.Join(parts, ", "), nil
	}
	out := parts[0]
	for _, part := range parts[1:] {
		out = strings.NewReplacer("{0}", out, "{1}", part).Replace(separator)
	}
	return out, nil
}

func (e *XTextEngine) durationUnit(locale LocaleID, table, scale string, value float64) (string, error) {
	node, ok, err := e.resolver.Resolve(locale, BundleUnit, table, "duration", scale)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", engineErrorf(CodeMissingResource, "no %s pattern for duration %s", table, scale)
	}
	pattern, err := BuildPluralMessage(node)
	if err != nil {
		return "", err
	}
	return e.FormatMessage(locale, pattern, map[string]any{"0": value})
}
