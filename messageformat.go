package cosmo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// message parts
type msgPart interface {
	render(env *messageEnv, args map[string]any, out *strings.Builder, hash *float64) error
}

type msgText string

type msgHash struct{}

type msgArg struct {
	name   string
	kind   string
	style  string
	offset float64
	cases  []msgCase
}

type msgCase struct {
	key  string
	body msgPattern
}

type msgPattern []msgPart

type messageEnv struct {
	engine  *XTextEngine
	locale  LocaleID
	printer *message.Printer
}

type messageParser struct {
	src string
	pos int
}

func parseMessage(pattern string) (msgPattern, error) {
	p := &messageParser{src: pattern}
	parts, err := p.parsePattern(false, false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unmatched '}'")
	}
	return parts, nil
}

func (p *messageParser) errorf(format string, args ...any) error {
	return engineErrorf(CodePatternSyntax, "offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

// parsePattern reads until end of input or, when nested, an unquoted '}'.
func (p *messageParser) parsePattern(nested, inPlural bool) (msgPattern, error) {
	var parts msgPattern
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, msgText(text.String()))
			text.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\'':
			p.readQuoted(&text, inPlural)
		case c == '{':
			flush()
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			parts = append(parts, arg)
		case c == '}':
			if !nested {
				return nil, p.errorf("unmatched '}'")
			}
			flush()
			return parts, nil
		case c == '#' && inPlural:
			flush()
			parts = append(parts, msgHash{})
			p.pos++
		default:
			text.WriteByte(c)
			p.pos++
		}
	}

	if nested {
		return nil, p.errorf("unterminated sub-message")
	}
	flush()
	return parts, nil
}

// readQuoted applies apostrophe quoting: '' is a literal quote and a quote
// before a syntax character starts a literal run.
func (p *messageParser) readQuoted(text *strings.Builder, inPlural bool) {
	p.pos++
	if p.pos < len(p.src) && p.src[p.pos] == '\'' {
		text.WriteByte('\'')
		p.pos++
		return
	}
	if p.pos >= len(p.src) || !isQuotable(p.src[p.pos], inPlural) {
		text.WriteByte('\'')
		return
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				text.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return
		}
		text.WriteByte(c)
		p.pos++
	}
}

func isQuotable(c byte, inPlural bool) bool {
	return c == '{' || c == '}' || c == '|' || (c == '#' && inPlural)
}

func (p *messageParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *messageParser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == '{' || c == '}' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *messageParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *messageParser) parseArgument() (*msgArg, error) {
	p.pos++ // '{'
	p.skipSpace()
	arg := &msgArg{name: p.readIdent()}
	if arg.name == "" {
		return nil, p.errorf("missing argument name")
	}
	p.skipSpace()

	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return arg, nil
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	p.skipSpace()
	arg.kind = strings.ToLower(p.readIdent())
	p.skipSpace()

	switch arg.kind {
	case "plural", "selectordinal", "select":
		if err := p.expect(','); err != nil {
			return nil, err
		}
		if err := p.parseCases(arg); err != nil {
			return nil, err
		}
	case "number", "date", "time", "spellout", "ordinal", "duration":
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			end := strings.IndexByte(p.src[p.pos:], '}')
			if end < 0 {
				return nil, p.errorf("unterminated argument")
			}
			arg.style = strings.TrimSpace(p.src[p.pos : p.pos+end])
			p.pos += end
		}
	default:
		return nil, p.errorf("unknown argument type %q", arg.kind)
	}

	if err := p.expect('}'); err != nil {
		return nil, err
	}
	return arg, nil
}

func (p *messageParser) parseCases(arg *msgArg) error {
	inPlural := arg.kind != "select"
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return p.errorf("unterminated %s", arg.kind)
		}
		if p.src[p.pos] == '}' {
			break
		}

		key := p.readIdent()
		if key == "" {
			return p.errorf("missing selector")
		}
		if inPlural && strings.HasPrefix(key, "offset:") {
			value := strings.TrimPrefix(key, "offset:")
			if value == "" {
				p.skipSpace()
				value = p.readIdent()
			}
			offset, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return p.errorf("invalid offset %q", value)
			}
			arg.offset = offset
			continue
		}

		if err := p.expect('{'); err != nil {
			return err
		}
		body, err := p.parsePattern(true, inPlural)
		if err != nil {
			return err
		}
		p.pos++ // '}'
		arg.cases = append(arg.cases, msgCase{key: key, body: body})
	}

	for _, c := range arg.cases {
		if c.key == "other" {
			return nil
		}
	}
	return p.errorf("%s argument %q has no 'other' case", arg.kind, arg.name)
}

func (m msgPattern) format(env *messageEnv, args map[string]any) (string, error) {
	var out strings.Builder
	if err := m.render(env, args, &out, nil); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (m msgPattern) render(env *messageEnv, args map[string]any, out *strings.Builder, hash *float64) error {
	for _, part := range m {
		if err := part.render(env, args, out, hash); err != nil {
			return err
		}
	}
	return nil
}

func (t msgText) render(_ *messageEnv, _ map[string]any, out *strings.Builder, _ *float64) error {
	out.WriteString(string(t))
	return nil
}

func (msgHash) render(env *messageEnv, _ map[string]any, out *strings.Builder, hash *float64) error {
	if hash == nil {
		out.WriteByte('#')
		return nil
	}
	out.WriteString(env.printer.Sprintf("%v", number.Decimal(*hash)))
	return nil
}

func (a *msgArg) render(env *messageEnv, args map[string]any, out *strings.Builder, hash *float64) error {
	value, ok := args[a.name]
	if !ok {
		out.WriteString("{" + a.name + "}")
		return nil
	}

	switch a.kind {
	case "":
		out.WriteString(formatMessageValue(env, value))
		return nil
	case "number":
		n, ok := toFloat(value)
		if !ok {
			return engineErrorf(CodeArgumentType, "argument %q is not a number", a.name)
		}
		s, err := formatMessageNumber(env, n, a.style)
		if err != nil {
			return err
		}
		out.WriteString(s)
		return nil
	case "plural", "selectordinal":
		n, ok := toFloat(value)
		if !ok {
			return engineErrorf(CodeArgumentType, "argument %q is not a number", a.name)
		}
		body := a.selectPlural(env.locale, n)
		shifted := n - a.offset
		return body.render(env, args, out, &shifted)
	case "select":
		key := fmt.Sprint(value)
		var fallback msgPattern
		for _, c := range a.cases {
			if c.key == key {
				return c.body.render(env, args, out, hash)
			}
			if c.key == "other" {
				fallback = c.body
			}
		}
		return fallback.render(env, args, out, hash)
	default:
		s, err := a.renderDelegated(env, value)
		if err != nil {
			return err
		}
		out.WriteString(s)
		return nil
	}
}

func (a *msgArg) selectPlural(locale LocaleID, n float64) msgPattern {
	for _, c := range a.cases {
		if strings.HasPrefix(c.key, "=") {
			if exact, err := strconv.ParseFloat(c.key[1:], 64); err == nil && exact == n {
				return c.body
			}
		}
	}

	var category string
	if a.kind == "selectordinal" {
		category = ordinalCategory(locale, n-a.offset)
	} else {
		category = cardinalCategory(locale, n-a.offset)
	}

	var fallback msgPattern
	for _, c := range a.cases {
		if c.key == category {
			return c.body
		}
		if c.key == "other" {
			fallback = c.body
		}
	}
	return fallback
}

func (a *msgArg) renderDelegated(env *messageEnv, value any) (string, error) {
	switch a.kind {
	case "date", "time":
		t, ok := value.(time.Time)
		if !ok {
			return "", engineErrorf(CodeArgumentType, "argument %q is not a time", a.name)
		}
		style := StyleShort
		if a.style != "" {
			parsed, err := ParseStyle(a.style)
			if err != nil {
				return "", engineErrorf(CodeIllegalArgument, "unknown %s style %q", a.kind, a.style)
			}
			style = parsed
		}
		opts := DateTimeOptions{Calendar: CalendarGregorian}
		if a.kind == "date" {
			opts.DateStyle = style
		} else {
			opts.TimeStyle = style
		}
		return env.engine.FormatDateTime(env.locale, t, opts)
	}

	n, ok := toFloat(value)
	if !ok {
		return "", engineErrorf(CodeArgumentType, "argument %q is not a number", a.name)
	}
	switch a.kind {
	case "spellout":
		return env.engine.FormatSpellout(env.locale, n)
	case "ordinal":
		return env.engine.FormatOrdinal(env.locale, int64(n))
	default:
		return env.engine.FormatDuration(env.locale, n, false)
	}
}

func formatMessageNumber(env *messageEnv, n float64, style string) (string, error) {
	switch style {
	case "":
		return env.printer.Sprintf("%v", number.Decimal(n)), nil
	case "integer":
		return env.printer.Sprintf("%v", number.Decimal(math.Round(n), number.MaxFractionDigits(0))), nil
	case "percent":
		return env.printer.Sprintf("%v", number.Percent(n)), nil
	default:
		return "", engineErrorf(CodeIllegalArgument, "unsupported number style %q", style)
	}
}

func formatMessageValue(env *messageEnv, value any) string {
	if n, ok := toFloat(value); ok {
		return env.printer.Sprintf("%v", number.Decimal(n))
	}
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		s, err := env.engine.FormatDateTime(env.locale, v, DateTimeOptions{
			DateStyle: StyleShort, TimeStyle: StyleShort, Calendar: CalendarGregorian,
		})
		if err == nil {
			return s
		}
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// positionalArgs maps args to the names "0", "1", ...
func positionalArgs(args []any) map[string]any {
	named := make(map[string]any, len(args))
	for i, arg := range args {
		named[strconv.Itoa(i)] = arg
	}
	return named
}
