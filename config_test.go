package cosmo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(WithLocaleDetector(func() (string, error) {
		return "de-AT", nil
	}))
	require.NoError(t, err)

	assert.Equal(t, "de_AT", cfg.DefaultLocale)
	assert.NotNil(t, cfg.Engine)
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.Resolver())

	cached, ok := cfg.Loader.(*CachedLoader)
	require.True(t, ok, "default loader is cached, got %T", cfg.Loader)
	assert.Zero(t, cached.Len())
}

func TestNewConfigLocaleDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []Option
		expected string
	}{
		{
			name:     "explicit wins",
			opts:     []Option{WithDefaultLocale("fa-ir"), WithLocaleDetector(func() (string, error) { return "de", nil })},
			expected: "fa_IR",
		},
		{
			name:     "detector error",
			opts:     []Option{WithLocaleDetector(func() (string, error) { return "", errors.New("no locale") })},
			expected: "en",
		},
		{
			name:     "no detector",
			opts:     []Option{WithLocaleDetector(nil)},
			expected: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewConfig(tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.DefaultLocale)
		})
	}
}

func TestConfigOptionErrors(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(WithBundleCache(-1))
	assert.Error(t, err)

	_, err = NewConfig(WithBundleDir("  "))
	assert.Error(t, err)

	cfg, err := NewConfig(nil, WithLocaleDetector(nil))
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.DefaultLocale)
}

func TestConfigWithBundleDirOverlay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, BundleLanguage), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, BundleLanguage, "en.yaml"),
		[]byte("Types:\n  calendar:\n    buddhist: Thai Solar Calendar\n"),
		0o644,
	))

	cfg := newTestConfig(t, WithBundleDir(dir))
	ctx := cfg.NewContext("en", Modifiers{})

	assert.Equal(t, "Thai Solar Calendar", ctx.Calendar("buddhist"))
	assert.Equal(t, "Persian Calendar", ctx.Calendar("persian"))
}

type stubEngine struct {
	*XTextEngine
}

func (stubEngine) FormatSpellout(LocaleID, float64) (string, error) {
	return "stub", nil
}

func TestConfigWithEngine(t *testing.T) {
	t.Parallel()

	engine := stubEngine{XTextEngine: NewXTextEngine(nil, nil)}
	cfg := newTestConfig(t, WithEngine(engine))

	assert.Equal(t, engine, cfg.Loader)

	got, err := cfg.NewContext("en", Modifiers{}).Spellout(3)
	require.NoError(t, err)
	assert.Equal(t, "stub", got)
}

func TestFromEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COSMO_TIMEZONE=Asia/Tehran\n"), 0o644))

	t.Setenv("COSMO_DEFAULT_LOCALE", "fa_IR")
	t.Setenv("COSMO_CURRENCY", "usd")
	t.Setenv("COSMO_CALENDAR", "gregorian")
	t.Setenv("COSMO_BUNDLE_CACHE_SIZE", "16")
	t.Cleanup(func() { _ = os.Unsetenv("COSMO_TIMEZONE") })

	cfg, err := NewConfig(FromEnv(envFile), WithLocaleDetector(nil))
	require.NoError(t, err)

	assert.Equal(t, "fa_IR", cfg.DefaultLocale)
	assert.Equal(t, Modifiers{Currency: "usd", Calendar: "gregorian", Timezone: "Asia/Tehran"}, cfg.Modifiers)
	assert.Equal(t, 16, cfg.cacheSize)

	ctx := cfg.NewContext("fa", Modifiers{})
	assert.Equal(t, "USD", ctx.Modifiers().Currency)
	assert.Equal(t, "Asia/Tehran", ctx.Modifiers().Timezone)
}

func TestFromEnvMissingDotenv(t *testing.T) {
	t.Setenv("COSMO_BUNDLE_CACHE_SIZE", "not-a-number")

	_, err := NewConfig(FromEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.Error(t, err)
}

func TestDefaultConfigIsShared(t *testing.T) {
	t.Parallel()

	assert.Same(t, DefaultConfig(), DefaultConfig())
}
