package cosmo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLocale is returned when a locale cannot be composed or negotiated.
	ErrInvalidLocale = errors.New("cosmo: invalid locale")

	// ErrBundleNotFound signals that a bundle does not exist for a given locale.
	// Resolvers treat it as a silent skip.
	ErrBundleNotFound = errors.New("cosmo: bundle not found")

	ErrInvalidCurrencyCode  = errors.New("cosmo: invalid currency code")
	ErrNoCurrencyConfigured = errors.New("cosmo: no currency configured")
	ErrInvalidFormatType    = errors.New("cosmo: invalid format type")
	ErrInvalidRegionCode    = errors.New("cosmo: invalid region code")
	ErrUnknownUnit          = errors.New("cosmo: unknown unit")
)

// BundleLoadError reports a bundle that could not be opened at all
type BundleLoadError struct {
	Bundle string
	Locale string
	Err    error
}

func (e *BundleLoadError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("cosmo: load bundle %q: %v", e.Bundle, e.Err)
	}
	return fmt.Sprintf("cosmo: load bundle %q for %s: %v", e.Bundle, e.Locale, e.Err)
}

func (e *BundleLoadError) Unwrap() error {
	return e.Err
}

// Engine error codes, named after their ICU counterparts.
const (
	CodeIllegalArgument = "U_ILLEGAL_ARGUMENT_ERROR"
	CodeUnsupported     = "U_UNSUPPORTED_ERROR"
	CodePatternSyntax   = "U_PATTERN_SYNTAX_ERROR"
	CodeArgumentType    = "U_ARGUMENT_TYPE_MISMATCH"
	CodeMissingResource = "U_MISSING_RESOURCE_ERROR"
)

// FormatEngineError wraps a failure surfaced by the formatting engine.
type FormatEngineError struct {
	Code    string
	Message string
}

func (e *FormatEngineError) Error() string {
	return fmt.Sprintf("cosmo: format engine: %s: %s", e.Code, e.Message)
}

func engineErrorf(code, format string, args ...any) error {
	return &FormatEngineError{Code: code, Message: fmt.Sprintf(format, args...)}
}
