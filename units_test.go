package cosmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit(t *testing.T) {
	t.Parallel()

	en := newTestConfig(t).NewContext("en_AU", Modifiers{})

	tests := []struct {
		unit, scale string
		value       float64
		width       string
		want        string
	}{
		{unit: "digital", scale: "megabit", value: 12, width: "full", want: "12 megabits"},
		{unit: "digital", scale: "megabit", value: 1, width: "f", want: "1 megabit"},
		{unit: "digital", scale: "megabit", value: 12, width: "medium", want: "12 Mb"},
		{unit: "digital", scale: "megabit", value: 12, width: "s", want: "12Mb"},
		{unit: "temperature", scale: "celsius", value: 1, width: "long", want: "1 degree Celsius"},
		{unit: "temperature", scale: "celsius", value: 21.5, width: "full", want: "21.5 degrees Celsius"},
		{unit: "temperature", scale: "celsius", value: 21, width: "short", want: "21°C"},
		{unit: "length", scale: "kilometer", value: 1500, width: "full", want: "1,500 kilometers"},
	}

	for _, tt := range tests {
		got, err := en.Unit(tt.unit, tt.scale, tt.value, tt.width)
		require.NoError(t, err, tt.scale)
		assert.Equal(t, tt.want, got)
	}
}

func TestUnitFallsBackToLanguageAndRoot(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)

	got, err := cfg.NewContext("de_AT", Modifiers{}).Unit("duration", "hour", 2, "full")
	require.NoError(t, err)
	assert.Equal(t, "2 Stunden", got)

	got, err = cfg.NewContext("eo", Modifiers{}).Unit("duration", "minute", 5, "short")
	require.NoError(t, err)
	assert.Equal(t, "5m", got)
}

func TestUnitErrors(t *testing.T) {
	t.Parallel()

	en := newTestConfig(t).NewContext("en", Modifiers{})

	_, err := en.Unit("digital", "megabit", 1, "tiny")
	assert.ErrorIs(t, err, ErrInvalidFormatType)

	_, err = en.Unit("digital", "zettabit", 1, "full")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = en.Unit("digital", "megabit", 1, "")
	assert.ErrorIs(t, err, ErrInvalidFormatType)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	en := newTestConfig(t).NewContext("en", Modifiers{})

	got, err := en.Message("{0} of {1} files", 3, 1200)
	require.NoError(t, err)
	assert.Equal(t, "3 of 1,200 files", got)

	got, err = en.MessageMap("{count,plural,one{# item}other{# items}} for {who}", map[string]any{
		"count": 1,
		"who":   "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, "1 item for Ann", got)
}
