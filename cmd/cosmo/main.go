// Command cosmo formats values for a locale from the command line.
//
//	cosmo -locale fa_IR date 2020-01-02 long
//	cosmo -locale en_AU money 12.3
//	cosmo -accept "de-AT,de;q=0.8" unit duration hour 2 full
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-cosmo"
)

type options struct {
	locale    string
	accept    string
	currency  string
	calendar  string
	timezone  string
	envFile   string
	logFormat string
	logLevel  string
}

type command func(ctx *cosmo.Context, args []string) (string, error)

var commands = map[string]command{
	"country":  display(func(c *cosmo.Context, v string) string { return c.Country(cosmo.Explicit(v)) }),
	"language": display(func(c *cosmo.Context, v string) string { return c.Language(cosmo.Explicit(v)) }),
	"script":   display(func(c *cosmo.Context, v string) string { return c.Script(cosmo.Explicit(v)) }),
	"calendar": display(func(c *cosmo.Context, v string) string { return c.Calendar(v) }),
	"currency": display(func(c *cosmo.Context, v string) string { return c.CurrencyName(cosmo.Explicit(v)) }),
	"quote":    display(func(c *cosmo.Context, v string) string { return c.Quote(v) }),
	"direction": func(c *cosmo.Context, _ []string) (string, error) {
		return c.Direction(cosmo.Default), nil
	},
	"flag": func(c *cosmo.Context, args []string) (string, error) {
		if len(args) == 0 {
			return c.Flag(cosmo.Default)
		}
		return c.Flag(cosmo.Explicit(args[0]))
	},
	"list": func(c *cosmo.Context, args []string) (string, error) {
		return c.List(args...), nil
	},
	"money":      withNumber(func(c *cosmo.Context, v float64, _ []string) (string, error) { return c.Money(v) }),
	"number":     withNumber(func(c *cosmo.Context, v float64, _ []string) (string, error) { return c.Number(v, -1) }),
	"percentage": withNumber(func(c *cosmo.Context, v float64, _ []string) (string, error) { return c.Percentage(v, cosmo.DefaultPercentPrecision) }),
	"spellout":   withNumber(func(c *cosmo.Context, v float64, _ []string) (string, error) { return c.Spellout(v) }),
	"ordinal":    withNumber(func(c *cosmo.Context, v float64, _ []string) (string, error) { return c.Ordinal(int64(v)) }),
	"duration": withNumber(func(c *cosmo.Context, v float64, rest []string) (string, error) {
		return c.Duration(v, len(rest) > 0 && rest[0] == "words")
	}),
	"date": withTime(func(c *cosmo.Context, t time.Time, rest []string) (string, error) {
		return c.Date(t, argOr(rest, 0, "medium"))
	}),
	"time": withTime(func(c *cosmo.Context, t time.Time, rest []string) (string, error) {
		return c.Time(t, argOr(rest, 0, "short"))
	}),
	"moment": withTime(func(c *cosmo.Context, t time.Time, rest []string) (string, error) {
		return c.Moment(t, argOr(rest, 0, "medium"), argOr(rest, 1, "short"))
	}),
	"unit": func(c *cosmo.Context, args []string) (string, error) {
		if len(args) < 3 {
			return "", errors.New("usage: unit <unit> <scale> <value> [width]")
		}
		value, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return "", fmt.Errorf("parse value: %w", err)
		}
		return c.Unit(args[0], args[1], value, argOr(args, 3, "full"))
	},
	"message": func(c *cosmo.Context, args []string) (string, error) {
		if len(args) == 0 {
			return "", errors.New("usage: message <pattern> [args...]")
		}
		values := make([]any, 0, len(args)-1)
		for _, arg := range args[1:] {
			if n, err := strconv.ParseFloat(arg, 64); err == nil {
				values = append(values, n)
				continue
			}
			values = append(values, arg)
		}
		return c.Message(args[0], values...)
	},
}

func main() {
	opts := parseFlags()

	if err := run(opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "cosmo: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.locale, "locale", "", "locale identifier, defaults to COSMO_DEFAULT_LOCALE or the system locale")
	flag.StringVar(&opts.accept, "accept", "", "Accept-Language header to negotiate the locale from")
	flag.StringVar(&opts.currency, "currency", "", "ISO 4217 currency code")
	flag.StringVar(&opts.calendar, "calendar", "", "calendar override (gregorian, persian, buddhist)")
	flag.StringVar(&opts.timezone, "tz", "", "IANA timezone")
	flag.StringVar(&opts.envFile, "env", ".env", "dotenv file read before COSMO_* variables")
	flag.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cosmo [flags] <command> [args...]\n\ncommands: %s\n\n", strings.Join(commandNames(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()
	return opts
}

func run(opts options, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, err := cosmo.NewConfig(
		cosmo.FromEnv(opts.envFile),
		cosmo.WithLogger(cosmo.NewLogger(os.Stderr, opts.logFormat, opts.logLevel)),
	)
	if err != nil {
		return err
	}

	mods := cosmo.Modifiers{
		Currency: opts.currency,
		Calendar: opts.calendar,
		Timezone: opts.timezone,
	}

	var ctx *cosmo.Context
	switch {
	case opts.accept != "":
		ctx, err = cfg.NewContextFromAcceptLanguage(opts.accept, mods)
		if err != nil {
			return err
		}
	case opts.locale != "":
		ctx = cfg.NewContext(opts.locale, mods)
	default:
		ctx = cfg.NewContext(cfg.DefaultLocale, mods)
	}

	out, err := cmd(ctx, args[1:])
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func display(fn func(*cosmo.Context, string) string) command {
	return func(c *cosmo.Context, args []string) (string, error) {
		if len(args) == 0 {
			return "", errors.New("missing argument")
		}
		return fn(c, args[0]), nil
	}
}

func withNumber(fn func(*cosmo.Context, float64, []string) (string, error)) command {
	return func(c *cosmo.Context, args []string) (string, error) {
		if len(args) == 0 {
			return "", errors.New("missing value")
		}
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", fmt.Errorf("parse value: %w", err)
		}
		return fn(c, value, args[1:])
	}
}

func withTime(fn func(*cosmo.Context, time.Time, []string) (string, error)) command {
	return func(c *cosmo.Context, args []string) (string, error) {
		t := time.Now()
		if len(args) > 0 && args[0] != "now" {
			parsed, err := parseTime(args[0])
			if err != nil {
				return "", err
			}
			t = parsed
		}
		if len(args) > 0 {
			args = args[1:]
		}
		return fn(c, t, args)
	}
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", value)
}

func argOr(args []string, idx int, fallback string) string {
	if idx < len(args) && args[idx] != "" {
		return args[idx]
	}
	return fallback
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
