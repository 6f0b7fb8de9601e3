package cosmo

// Param is an optional string argument. The zero value, Default, asks the
// operation to use the context's own value. Explicit carries a caller value,
// which may be empty.
type Param struct {
	value    string
	explicit bool
}

// Default selects the context value.
var Default = Param{}

// Explicit wraps a caller supplied value.
func Explicit(value string) Param {
	return Param{value: value, explicit: true}
}

// IsDefault reports whether no value was supplied.
func (p Param) IsDefault() bool {
	return !p.explicit
}

// Value returns the explicit value, or "" for Default.
func (p Param) Value() string {
	return p.value
}

// or returns the explicit value, or fallback for Default.
func (p Param) or(fallback string) string {
	if p.explicit {
		return p.value
	}
	return fallback
}
