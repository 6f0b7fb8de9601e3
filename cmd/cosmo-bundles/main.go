// Command cosmo-bundles extracts the CLDR subset used by go-cosmo into
// YAML bundles laid out as <out>/<bundle>/<locale>.yaml.
//
// Ordinal patterns are not part of CLDR main data and have to be added
// to the locale bundles by hand.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

type generatorConfig struct {
	out      string
	cldrPath string
	bundles  []string
	locales  []string
}

type listFlag struct {
	items []string
}

func (f *listFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

var allBundles = []string{"locale", "curr", "lang", "unit"}

var calendarKinds = []string{"gregorian", "persian", "buddhist"}

var dateStyles = []string{"short", "medium", "long", "full"}

var dayKeys = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

type bundleBuilder func(*cldr.LDML) map[string]any

var builders = map[string]bundleBuilder{
	"locale": buildLocaleBundle,
	"curr":   buildCurrencyBundle,
	"lang":   buildLanguageBundle,
	"unit":   buildUnitBundle,
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "cosmo-bundles: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var locales, bundles listFlag

	flag.StringVar(&cfg.out, "out", "data", "bundle root directory")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects subdirectories like main/ and supplemental/)")
	flag.Var(&locales, "locale", "locale to extract, e.g. en_AU. Repeat flag to add more.")
	flag.Var(&bundles, "bundle", "bundle to extract (locale, curr, lang, unit). Defaults to all.")

	flag.Parse()

	if len(locales.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}
	for _, locale := range locales.items {
		cfg.locales = append(cfg.locales, strings.ReplaceAll(locale, "-", "_"))
	}

	cfg.bundles = bundles.items
	if len(cfg.bundles) == 0 {
		cfg.bundles = allBundles
	}
	for _, name := range cfg.bundles {
		if _, ok := builders[name]; !ok {
			return generatorConfig{}, fmt.Errorf("unknown bundle %q", name)
		}
	}

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}
	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	supplemental := data.Supplemental()

	for _, locale := range cfg.locales {
		ldml := data.RawLDML(locale)
		if ldml == nil {
			return fmt.Errorf("missing LDML data for %s", locale)
		}

		for _, name := range cfg.bundles {
			content := builders[name](ldml)
			if name == "locale" {
				setCalendarDefault(content, preferredCalendar(supplemental, locale))
			}
			if len(content) == 0 {
				continue
			}
			if err := writeBundle(filepath.Join(cfg.out, name, locale+".yaml"), content); err != nil {
				return fmt.Errorf("write %s bundle for %s: %w", name, locale, err)
			}
		}
	}
	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main", "supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func writeBundle(path string, content map[string]any) error {
	out, err := yaml.Marshal(content)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func buildLocaleBundle(ldml *cldr.LDML) map[string]any {
	bundle := map[string]any{}

	if ldml.Layout != nil {
		for _, orientation := range ldml.Layout.Orientation {
			if len(orientation.CharacterOrder) > 0 {
				bundle["layout"] = map[string]any{"characters": orientation.CharacterOrder[0].Data()}
				break
			}
		}
	}

	if d := ldml.Delimiters; d != nil {
		delimiters := map[string]any{}
		setFirst(delimiters, "quotationStart", d.QuotationStart)
		setFirst(delimiters, "quotationEnd", d.QuotationEnd)
		setFirst(delimiters, "alternateQuotationStart", d.AlternateQuotationStart)
		setFirst(delimiters, "alternateQuotationEnd", d.AlternateQuotationEnd)
		if len(delimiters) > 0 {
			bundle["delimiters"] = delimiters
		}
	}

	if lists := extractListPatterns(ldml); len(lists) > 0 {
		bundle["listPattern"] = lists
	}
	if numbers := extractNumberElements(ldml.Numbers); len(numbers) > 0 {
		bundle["NumberElements"] = numbers
	}
	if calendar := extractCalendar(ldml); len(calendar) > 0 {
		bundle["calendar"] = calendar
	}
	return bundle
}

func extractListPatterns(ldml *cldr.LDML) map[string]any {
	result := map[string]any{}
	if ldml.ListPatterns == nil {
		return result
	}

	for _, pattern := range ldml.ListPatterns.ListPattern {
		name := pattern.Type
		if name == "" {
			name = "standard"
		}
		if name != "standard" && name != "unit" {
			continue
		}

		parts := map[string]any{}
		for _, part := range pattern.ListPatternPart {
			if part == nil || part.Alt != "" {
				continue
			}
			parts[strings.ToLower(part.Type)] = part.Data()
		}
		if len(parts) > 0 {
			result[name] = parts
		}
	}
	return result
}

type symbolList = []*struct {
	cldr.Common
	NumberSystem string `xml:"numberSystem,attr"`
}

type patternList = []*struct {
	cldr.Common
	Numbers string `xml:"numbers,attr"`
	Count   string `xml:"count,attr"`
}

func extractNumberElements(numbers *cldr.Numbers) map[string]any {
	result := map[string]any{}
	if numbers == nil {
		return result
	}

	if len(numbers.DefaultNumberingSystem) > 0 {
		result["default"] = numbers.DefaultNumberingSystem[0].Data()
	}

	system := func(name string) map[string]any {
		if name == "" {
			name = "latn"
		}
		entry, ok := result[name].(map[string]any)
		if !ok {
			entry = map[string]any{}
			result[name] = entry
		}
		return entry
	}

	for _, symbols := range numbers.Symbols {
		if symbols.Alt != "" {
			continue
		}
		values := map[string]any{}
		setSymbol(values, "decimal", symbols.Decimal)
		setSymbol(values, "group", symbols.Group)
		setSymbol(values, "list", symbols.List)
		setSymbol(values, "percentSign", symbols.PercentSign)
		setSymbol(values, "plusSign", symbols.PlusSign)
		setSymbol(values, "minusSign", symbols.MinusSign)
		setSymbol(values, "exponential", symbols.Exponential)
		setSymbol(values, "perMille", symbols.PerMille)
		setSymbol(values, "infinity", symbols.Infinity)
		setSymbol(values, "nan", symbols.Nan)
		if len(values) > 0 {
			system(symbols.NumberSystem)["symbols"] = values
		}
	}

	patterns := func(name string) map[string]any {
		entry := system(name)
		p, ok := entry["patterns"].(map[string]any)
		if !ok {
			p = map[string]any{}
			entry["patterns"] = p
		}
		return p
	}

	for _, formats := range numbers.DecimalFormats {
		for _, length := range formats.DecimalFormatLength {
			if length.Type != "" {
				continue
			}
			for _, format := range length.DecimalFormat {
				if value := firstPattern(format.Pattern); value != "" {
					patterns(formats.NumberSystem)["decimalFormat"] = value
				}
			}
		}
	}
	for _, formats := range numbers.PercentFormats {
		for _, length := range formats.PercentFormatLength {
			if length.Type != "" {
				continue
			}
			for _, format := range length.PercentFormat {
				if value := firstPattern(format.Pattern); value != "" {
					patterns(formats.NumberSystem)["percentFormat"] = value
				}
			}
		}
	}
	for _, formats := range numbers.CurrencyFormats {
		for _, length := range formats.CurrencyFormatLength {
			if length.Type != "" {
				continue
			}
			for _, format := range length.CurrencyFormat {
				if format.Type != "" && format.Type != "standard" {
					continue
				}
				if value := firstPattern(format.Pattern); value != "" {
					patterns(formats.NumberSystem)["currencyFormat"] = value
				}
			}
		}
	}

	return result
}

func extractCalendar(ldml *cldr.LDML) map[string]any {
	result := map[string]any{}
	if ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return result
	}

	for _, calendar := range ldml.Dates.Calendars.Calendar {
		if calendar == nil || !contains(calendarKinds, calendar.Type) {
			continue
		}

		entry := map[string]any{}
		if names := monthNames(calendar, "wide"); len(names) > 0 {
			entry["monthNames"] = names
		}
		if names := monthNames(calendar, "abbreviated"); len(names) > 0 {
			entry["monthAbbreviations"] = names
		}
		if eras := eraAbbreviations(calendar); len(eras) > 0 {
			entry["eras"] = eras
		}
		if patterns := datePatterns(calendar); len(patterns) > 0 {
			entry["patterns"] = patterns
		}

		if calendar.Type == "gregorian" {
			weekdays := map[string]any{}
			if names := dayNames(calendar, "wide"); len(names) > 0 {
				weekdays["dayNames"] = names
			}
			if names := dayNames(calendar, "abbreviated"); len(names) > 0 {
				weekdays["dayAbbreviations"] = names
			}
			if len(weekdays) > 0 {
				result["weekdays"] = weekdays
			}
			if periods := dayPeriods(calendar); len(periods) > 0 {
				result["dayPeriods"] = periods
			}
			if pattern := dateTimePattern(calendar); pattern != "" {
				result["dateTimePattern"] = pattern
			}
			if patterns := timePatterns(calendar); len(patterns) > 0 {
				result["timePatterns"] = patterns
			}
		}

		if len(entry) > 0 {
			result[calendar.Type] = entry
		}
	}
	return result
}

// preferredCalendar picks the first supported calendar from the territory
// preference list, using the likely region for language-only locales.
func preferredCalendar(supplemental *cldr.SupplementalData, locale string) string {
	if supplemental == nil || supplemental.CalendarPreferenceData == nil {
		return ""
	}

	territory := "001"
	if locale != "root" {
		if region, conf := language.Make(strings.ReplaceAll(locale, "_", "-")).Region(); conf != language.No {
			territory = region.String()
		}
	}

	var fallback string
	for _, pref := range supplemental.CalendarPreferenceData.CalendarPreference {
		territories := strings.Fields(pref.Territories)
		if !contains(territories, territory) && !contains(territories, "001") {
			continue
		}
		for _, kind := range strings.Fields(pref.Ordering) {
			if !contains(calendarKinds, kind) {
				continue
			}
			if contains(territories, territory) {
				return kind
			}
			if fallback == "" {
				fallback = kind
			}
			break
		}
	}
	return fallback
}

func setCalendarDefault(bundle map[string]any, calendar string) {
	if calendar == "" {
		return
	}
	entry, ok := bundle["calendar"].(map[string]any)
	if !ok {
		entry = map[string]any{}
		bundle["calendar"] = entry
	}
	entry["default"] = calendar
}

func monthNames(calendar *cldr.Calendar, width string) []string {
	if calendar.Months == nil {
		return nil
	}
	for _, ctx := range calendar.Months.MonthContext {
		if ctx.Type != "format" {
			continue
		}
		for _, w := range ctx.MonthWidth {
			if w.Type != width {
				continue
			}
			names := make([]string, 12)
			for _, month := range w.Month {
				if month.Alt != "" || month.Yeartype != "" {
					continue
				}
				idx, err := strconv.Atoi(month.Type)
				if err != nil || idx < 1 || idx > len(names) {
					continue
				}
				names[idx-1] = month.Data()
			}
			return compact(names)
		}
	}
	return nil
}

func dayNames(calendar *cldr.Calendar, width string) []string {
	if calendar.Days == nil {
		return nil
	}
	for _, ctx := range calendar.Days.DayContext {
		if ctx.Type != "format" {
			continue
		}
		for _, w := range ctx.DayWidth {
			if w.Type != width {
				continue
			}
			names := make([]string, len(dayKeys))
			for _, day := range w.Day {
				if day.Alt != "" {
					continue
				}
				for i, key := range dayKeys {
					if day.Type == key {
						names[i] = day.Data()
					}
				}
			}
			return compact(names)
		}
	}
	return nil
}

func dayPeriods(calendar *cldr.Calendar) []string {
	if calendar.DayPeriods == nil {
		return nil
	}
	for _, ctx := range calendar.DayPeriods.DayPeriodContext {
		if ctx.Type != "format" {
			continue
		}
		for _, w := range ctx.DayPeriodWidth {
			if w.Type != "abbreviated" {
				continue
			}
			periods := make([]string, 2)
			for _, period := range w.DayPeriod {
				if period.Alt != "" {
					continue
				}
				switch period.Type {
				case "am":
					periods[0] = period.Data()
				case "pm":
					periods[1] = period.Data()
				}
			}
			return compact(periods)
		}
	}
	return nil
}

func eraAbbreviations(calendar *cldr.Calendar) []string {
	if calendar.Eras == nil || calendar.Eras.EraAbbr == nil {
		return nil
	}

	var eras []*cldr.Common
	for _, era := range calendar.Eras.EraAbbr.Era {
		if era.Alt == "" {
			eras = append(eras, era)
		}
	}
	sort.SliceStable(eras, func(i, j int) bool {
		a, _ := strconv.Atoi(eras[i].Type)
		b, _ := strconv.Atoi(eras[j].Type)
		return a < b
	})

	names := make([]string, 0, len(eras))
	for _, era := range eras {
		names = append(names, era.Data())
	}
	// Single-era calendars still index the era by year sign.
	if len(names) == 1 {
		names = append(names, names[0])
	}
	return names
}

func datePatterns(calendar *cldr.Calendar) map[string]any {
	result := map[string]any{}
	if calendar.DateFormats == nil {
		return result
	}
	for _, length := range calendar.DateFormats.DateFormatLength {
		if !contains(dateStyles, length.Type) {
			continue
		}
		for _, format := range length.DateFormat {
			if value := firstPattern(format.Pattern); value != "" {
				result[length.Type] = value
			}
		}
	}
	return result
}

func timePatterns(calendar *cldr.Calendar) map[string]any {
	result := map[string]any{}
	if calendar.TimeFormats == nil {
		return result
	}
	for _, length := range calendar.TimeFormats.TimeFormatLength {
		if !contains(dateStyles, length.Type) {
			continue
		}
		for _, format := range length.TimeFormat {
			if value := firstPattern(format.Pattern); value != "" {
				result[length.Type] = value
			}
		}
	}
	return result
}

func dateTimePattern(calendar *cldr.Calendar) string {
	if calendar.DateTimeFormats == nil {
		return ""
	}
	for _, length := range calendar.DateTimeFormats.DateTimeFormatLength {
		if length.Type != "medium" {
			continue
		}
		for _, format := range length.DateTimeFormat {
			if format.Type != "" && format.Type != "standard" {
				continue
			}
			if value := firstPattern(format.Pattern); value != "" {
				return value
			}
		}
	}
	return ""
}

func buildCurrencyBundle(ldml *cldr.LDML) map[string]any {
	if ldml.Numbers == nil || ldml.Numbers.Currencies == nil {
		return nil
	}

	currencies := map[string]any{}
	for _, currency := range ldml.Numbers.Currencies.Currency {
		code := strings.ToUpper(currency.Type)
		if code == "" {
			continue
		}

		var symbol, name string
		for _, s := range currency.Symbol {
			if s.Alt == "" {
				symbol = s.Data()
				break
			}
		}
		for _, d := range currency.DisplayName {
			if d.Count == "" && d.Alt == "" {
				name = d.Data()
				break
			}
		}
		if symbol == "" && name == "" {
			continue
		}
		currencies[code] = []string{symbol, name}
	}

	if len(currencies) == 0 {
		return nil
	}
	return map[string]any{"Currencies": currencies}
}

func buildLanguageBundle(ldml *cldr.LDML) map[string]any {
	names := ldml.LocaleDisplayNames
	if names == nil {
		return nil
	}

	bundle := map[string]any{}
	if names.Scripts != nil {
		scripts := map[string]any{}
		for _, script := range names.Scripts.Script {
			if script.Alt == "" && script.Type != "" {
				scripts[script.Type] = script.Data()
			}
		}
		if len(scripts) > 0 {
			bundle["Scripts"] = scripts
		}
	}

	if names.Types != nil {
		types := map[string]map[string]any{}
		for _, entry := range names.Types.Type {
			if entry.Alt != "" || entry.Key == "" || entry.Type == "" {
				continue
			}
			if types[entry.Key] == nil {
				types[entry.Key] = map[string]any{}
			}
			types[entry.Key][entry.Type] = entry.Data()
		}
		if len(types) > 0 {
			bundle["Types"] = types
		}
	}
	return bundle
}

var unitTables = map[string]string{
	"long":   "units",
	"short":  "unitsShort",
	"narrow": "unitsNarrow",
}

func buildUnitBundle(ldml *cldr.LDML) map[string]any {
	if ldml.Units == nil {
		return nil
	}

	bundle := map[string]any{}
	for _, length := range ldml.Units.UnitLength {
		table, ok := unitTables[length.Type]
		if !ok {
			continue
		}

		categories := map[string]map[string]any{}
		for _, unit := range length.Unit {
			category, scale, ok := strings.Cut(unit.Type, "-")
			if !ok {
				continue
			}

			patterns := map[string]any{}
			for _, pattern := range unit.UnitPattern {
				if pattern.Alt != "" || pattern.Count == "" {
					continue
				}
				patterns[pattern.Count] = pattern.Data()
			}
			if len(patterns) == 0 {
				continue
			}
			if categories[category] == nil {
				categories[category] = map[string]any{}
			}
			categories[category][scale] = patterns
		}
		if len(categories) > 0 {
			bundle[table] = categories
		}
	}
	return bundle
}

func setFirst(target map[string]any, key string, values []*cldr.Common) {
	for _, value := range values {
		if value != nil && value.Alt == "" {
			target[key] = value.Data()
			return
		}
	}
}

func setSymbol(target map[string]any, key string, values symbolList) {
	for _, value := range values {
		if value != nil && value.Alt == "" {
			target[key] = value.Data()
			return
		}
	}
}

func firstPattern(patterns patternList) string {
	for _, pattern := range patterns {
		if pattern != nil && pattern.Alt == "" && pattern.Count == "" {
			return pattern.Data()
		}
	}
	return ""
}

func compact(values []string) []string {
	for _, value := range values {
		if value == "" {
			return nil
		}
	}
	return values
}

func contains(values []string, needle string) bool {
	for _, value := range values {
		if value == needle {
			return true
		}
	}
	return false
}
