package cosmo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	golocale "github.com/Xuanwo/go-locale"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultBundleCacheSize is the number of bundles kept by the default cache.
const DefaultBundleCacheSize = 256

// LocaleDetector reports the process locale.
type LocaleDetector func() (string, error)

// Config captures locale defaults and the formatting backend
type Config struct {
	DefaultLocale string
	Modifiers     Modifiers
	Engine        Engine
	Loader        BundleLoader
	Logger        *slog.Logger

	bundleDirs []string
	cacheSize  int
	detector   LocaleDetector
	resolver   *Resolver
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		cacheSize: DefaultBundleCacheSize,
		detector:  detectSystemLocale,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	if cfg.Engine == nil {
		loader, err := cfg.buildLoader()
		if err != nil {
			return nil, err
		}
		cfg.Loader = loader
		cfg.Engine = NewXTextEngine(loader, cfg.Logger)
	} else if cfg.Loader == nil {
		cfg.Loader = cfg.Engine
	}

	cfg.resolver = NewResolver(cfg.Engine, cfg.Logger)
	cfg.DefaultLocale = cfg.resolveDefaultLocale()

	return cfg, nil
}

func (cfg *Config) buildLoader() (BundleLoader, error) {
	loader := cfg.Loader
	if loader == nil {
		loader = DefaultBundles()
	}

	if len(cfg.bundleDirs) > 0 {
		overrides := make([]BundleLoader, 0, len(cfg.bundleDirs))
		for _, dir := range cfg.bundleDirs {
			overrides = append(overrides, NewDirLoader(dir))
		}
		loader = NewOverlayLoader(loader, overrides...)
	}

	if cfg.cacheSize > 0 {
		cached, err := NewCachedLoader(loader, cfg.cacheSize)
		if err != nil {
			return nil, err
		}
		loader = cached
	}
	return loader, nil
}

func (cfg *Config) resolveDefaultLocale() string {
	if locale := strings.TrimSpace(cfg.DefaultLocale); locale != "" {
		return Canonicalize(locale).String()
	}

	if cfg.detector != nil {
		locale, err := cfg.detector()
		if err != nil {
			cfg.Logger.Debug("locale detection failed", componentAttr("config"), errorAttr(err))
		} else if locale = strings.TrimSpace(locale); locale != "" {
			return Canonicalize(locale).String()
		}
	}
	return "en"
}

func detectSystemLocale() (string, error) {
	tag, err := golocale.Detect()
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

// Resolver returns the bundle resolver shared by contexts built from cfg.
func (cfg *Config) Resolver() *Resolver {
	return cfg.resolver
}

// WithDefaultLocale sets the locale used when a context is built without one
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithDefaultModifiers sets modifiers applied under the ones given per context
func WithDefaultModifiers(mods Modifiers) Option {
	return func(c *Config) error {
		c.Modifiers = mods
		return nil
	}
}

func WithEngine(engine Engine) Option {
	return func(c *Config) error {
		c.Engine = engine
		return nil
	}
}

// WithBundleLoader replaces the embedded bundles
func WithBundleLoader(loader BundleLoader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

// WithBundleDir overlays bundles found in dir on top of the base loader
func WithBundleDir(dir string) Option {
	return func(c *Config) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return errors.New("cosmo: empty bundle directory")
		}
		c.bundleDirs = append(c.bundleDirs, dir)
		return nil
	}
}

// WithBundleCache sets the bundle LRU size, zero disables caching
func WithBundleCache(size int) Option {
	return func(c *Config) error {
		if size < 0 {
			return fmt.Errorf("cosmo: invalid bundle cache size %d", size)
		}
		c.cacheSize = size
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithLocaleDetector replaces system locale detection
func WithLocaleDetector(detector LocaleDetector) Option {
	return func(c *Config) error {
		c.detector = detector
		return nil
	}
}

// EnvConfig lists the environment variables understood by FromEnv.
type EnvConfig struct {
	DefaultLocale string `env:"COSMO_DEFAULT_LOCALE"`
	Currency      string `env:"COSMO_CURRENCY"`
	Calendar      string `env:"COSMO_CALENDAR"`
	Timezone      string `env:"COSMO_TIMEZONE"`
	BundleDir     string `env:"COSMO_BUNDLE_DIR"`
	CacheSize     int    `env:"COSMO_BUNDLE_CACHE_SIZE" envDefault:"256"`
}

// FromEnv reads EnvConfig from the environment after loading optional
// dotenv files. Missing dotenv files are ignored.
func FromEnv(files ...string) Option {
	return func(c *Config) error {
		if err := godotenv.Load(files...); err != nil {
			c.dotenvMissing(err)
		}

		var ec EnvConfig
		if err := env.Parse(&ec); err != nil {
			return fmt.Errorf("cosmo: parse env: %w", err)
		}
		return c.applyEnv(ec)
	}
}

func (cfg *Config) dotenvMissing(err error) {
	if cfg.Logger != nil {
		cfg.Logger.Debug("dotenv not loaded", componentAttr("config"), errorAttr(err))
	}
}

func (cfg *Config) applyEnv(ec EnvConfig) error {
	if ec.DefaultLocale != "" {
		cfg.DefaultLocale = ec.DefaultLocale
	}
	cfg.Modifiers = cfg.Modifiers.merge(Modifiers{
		Currency: ec.Currency,
		Calendar: ec.Calendar,
		Timezone: ec.Timezone,
	})
	if ec.BundleDir != "" {
		if err := WithBundleDir(ec.BundleDir)(cfg); err != nil {
			return err
		}
	}
	return WithBundleCache(ec.CacheSize)(cfg)
}

var (
	defaultConfigOnce sync.Once
	defaultConfig     *Config
)

// DefaultConfig returns the lazily built configuration used by New.
func DefaultConfig() *Config {
	defaultConfigOnce.Do(func() {
		cfg, err := NewConfig()
		if err != nil {
			cfg, _ = NewConfig(WithBundleCache(0))
		}
		defaultConfig = cfg
	})
	return defaultConfig
}
