package cosmo

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	currencySign    = "¤"
	currencySpacing = "\u00a0"
)

// XTextEngine formats values with golang.org/x/text and reads patterns and
// symbols from the configured bundles.
type XTextEngine struct {
	loader   BundleLoader
	resolver *Resolver
	logger   *slog.Logger
}

var _ Engine = (*XTextEngine)(nil)

func NewXTextEngine(loader BundleLoader, logger *slog.Logger) *XTextEngine {
	if loader == nil {
		loader = DefaultBundles()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &XTextEngine{
		loader:   loader,
		resolver: NewResolver(loader, logger),
		logger:   logger.With(componentAttr("engine")),
	}
}

func (e *XTextEngine) LoadBundle(locale, bundle string) (*Node, error) {
	return e.loader.LoadBundle(locale, bundle)
}

// Locales lists the locales of bundle when the loader can enumerate them.
func (e *XTextEngine) Locales(bundle string) ([]string, error) {
	if lister, ok := e.loader.(LocaleLister); ok {
		return lister.Locales(bundle)
	}
	return nil, nil
}

func (e *XTextEngine) printer(locale LocaleID) *message.Printer {
	tag := locale.Tag()
	if locale.Keyword("nu") == "" {
		if nu := e.numberingSystem(locale); nu != "latn" {
			if next, err := tag.SetTypeForKey("nu", nu); err == nil {
				tag = next
			} else {
				e.logger.Debug("unsupported numbering system", "nu", nu, errorAttr(err))
			}
		}
	}
	return message.NewPrinter(tag)
}

// numberingSystem is the nu keyword, or the locale's declared default.
func (e *XTextEngine) numberingSystem(locale LocaleID) string {
	if nu := locale.Keyword("nu"); nu != "" {
		return nu
	}
	nu, err := e.resolver.ResolveString(locale, BundleLocale, "NumberElements", "default")
	if err != nil || nu == "" {
		return "latn"
	}
	return nu
}

func (e *XTextEngine) DisplayLanguageName(code string, in LocaleID) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	id := Canonicalize(code)
	base, err := language.ParseBase(id.Language)
	if err != nil {
		return code
	}

	namer := display.Languages(in.Tag())
	if namer == nil {
		namer = display.Languages(language.English)
	}
	if name := namer.Name(base); name != "" {
		return name
	}
	return id.Language
}

func (e *XTextEngine) DisplayRegionName(code string, in LocaleID) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return strings.ToUpper(code)
	}

	namer := display.Regions(in.Tag())
	if namer == nil {
		namer = display.Regions(language.English)
	}
	if name := namer.Name(region); name != "" {
		return name
	}
	return region.String()
}

func (e *XTextEngine) RegionCurrency(locale LocaleID) string {
	if locale.Region == "" {
		return ""
	}
	if code := locale.Keyword("cu"); code != "" {
		return strings.ToUpper(code)
	}

	region, err := language.ParseRegion(locale.Region)
	if err != nil {
		return ""
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		return ""
	}
	return unit.String()
}

func (e *XTextEngine) FormatNumber(locale LocaleID, value float64, precision int) (string, error) {
	var opts []number.Option
	if precision >= 0 {
		opts = append(opts, number.MinFractionDigits(precision), number.MaxFractionDigits(precision))
	}
	return e.printer(locale).Sprintf("%v", number.Decimal(value, opts...)), nil
}

func (e *XTextEngine) FormatPercentage(locale LocaleID, value float64, precision int) (string, error) {
	var opts []number.Option
	if precision >= 0 {
		opts = append(opts, number.MaxFractionDigits(precision))
	}
	return e.printer(locale).Sprintf("%v", number.Percent(value, opts...)), nil
}

func (e *XTextEngine) FormatCurrency(locale LocaleID, value float64, code string, precision int) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", engineErrorf(CodeIllegalArgument, "invalid currency code %q", code)
	}

	scale := precision
	if scale < 0 {
		scale, _ = currency.Standard.Rounding(unit)
	}

	p := e.printer(locale)
	amount := p.Sprintf("%v", number.Decimal(math.Abs(value),
		number.MinFractionDigits(scale), number.MaxFractionDigits(scale)))

	symbol := e.currencySymbol(locale, unit, p)
	pattern := e.currencyPattern(locale)
	return applyCurrencyPattern(pattern, symbol, amount, value < 0), nil
}

func (e *XTextEngine) currencySymbol(locale LocaleID, unit currency.Unit, p *message.Printer) string {
	node, ok, err := e.resolver.Resolve(locale, BundleCurrency, "Currencies", unit.String())
	if err == nil && ok {
		if symbol, found := node.Index(0); found && symbol != "" {
			return symbol
		}
		if node.Kind() == KindString {
			return node.String()
		}
	}
	return p.Sprint(currency.Symbol(unit))
}

func (e *XTextEngine) currencyPattern(locale LocaleID) string {
	for _, system := range []string{e.numberingSystem(locale), "latn"} {
		pattern, err := e.resolver.ResolveString(locale, BundleLocale,
			"NumberElements", system, "patterns", "currencyFormat")
		if err == nil && pattern != "" {
			return pattern
		}
	}
	return currencySign + "#,##0.00"
}

// applyCurrencyPattern substitutes the numeric run and the currency sign of an
// ICU currency pattern.
func applyCurrencyPattern(pattern, symbol, amount string, negative bool) string {
	positive, negativePattern, hasNegative := strings.Cut(pattern, ";")
	active := positive
	if negative && hasNegative {
		active = negativePattern
	}

	start := strings.IndexAny(active, "#0")
	if start < 0 {
		return symbol + amount
	}
	end := start
	for end < len(active) && strings.IndexByte("#0,.", active[end]) >= 0 {
		end++
	}

	prefix, suffix := active[:start], active[end:]
	// A letter symbol touching the digits is separated by a no-break space.
	if strings.HasSuffix(prefix, currencySign) && endsWithLetter(symbol) {
		prefix += currencySpacing
	}
	if strings.HasPrefix(suffix, currencySign) && startsWithLetter(symbol) {
		suffix = currencySpacing + suffix
	}

	out := prefix + amount + suffix
	out = strings.ReplaceAll(out, currencySign, symbol)
	if negative && !hasNegative {
		out = "-" + out
	}
	return out
}

func startsWithLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

func endsWithLetter(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsLetter(r)
}

func (e *XTextEngine) FormatOrdinal(locale LocaleID, value int64) (string, error) {
	formatted := e.printer(locale).Sprintf("%v", number.Decimal(value))

	n := value
	if n < 0 {
		n = -n
	}
	form := plural.Ordinal.MatchPlural(pluralTag(locale), int(n%10000000), 0, 0, 0, 0)

	pattern, err := e.resolver.ResolveString(locale, BundleLocale, "ordinals", pluralFormName(form))
	if err != nil {
		return "", err
	}
	if pattern == "" {
		pattern, err = e.resolver.ResolveString(locale, BundleLocale, "ordinals", "other")
		if err != nil {
			return "", err
		}
	}
	if pattern == "" {
		return formatted, nil
	}
	return strings.ReplaceAll(pattern, "{0}", formatted), nil
}

// pluralTag drops regional detail, plural rules are defined per language.
func pluralTag(locale LocaleID) language.Tag {
	if locale.IsRoot() {
		return language.Und
	}
	return language.Make(locale.Language)
}

func pluralFormName(form plural.Form) string {
	switch form {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}

// pluralOperands returns the CLDR operands i, v, w, f and t of value.
func pluralOperands(value float64) (i, v, w, f, t int) {
	value = math.Abs(value)
	digits := strconv.FormatFloat(value, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(digits, ".")

	i = lastDigits(intPart)
	v = len(fracPart)
	trimmed := strings.TrimRight(fracPart, "0")
	w = len(trimmed)
	f = lastDigits(fracPart)
	t = lastDigits(trimmed)
	return i, v, w, f, t
}

func lastDigits(s string) int {
	if len(s) > 7 {
		s = s[len(s)-7:]
	}
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

func cardinalCategory(locale LocaleID, value float64) string {
	i, v, w, f, t := pluralOperands(value)
	return pluralFormName(plural.Cardinal.MatchPlural(pluralTag(locale), i, v, w, f, t))
}

func ordinalCategory(locale LocaleID, value float64) string {
	i, v, w, f, t := pluralOperands(value)
	return pluralFormName(plural.Ordinal.MatchPlural(pluralTag(locale), i, v, w, f, t))
}

func (e *XTextEngine) FormatMessage(locale LocaleID, pattern string, args map[string]any) (string, error) {
	msg, err := parseMessage(pattern)
	if err != nil {
		return "", err
	}
	return msg.format(&messageEnv{engine: e, locale: locale, printer: e.printer(locale)}, args)
}
