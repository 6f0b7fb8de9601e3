package cosmo

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"sync"
)

// Well-known bundle names.
const (
	BundleLocale   = "locale"
	BundleCurrency = "curr"
	BundleLanguage = "lang"
	BundleUnit     = "unit"
)

//go:embed data
var embeddedBundles embed.FS

var bundleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// BundleLoader loads the root node of a bundle for one locale. A missing
// locale is reported with ErrBundleNotFound, a bundle that cannot be opened
// at all with *BundleLoadError.
type BundleLoader interface {
	LoadBundle(locale, bundle string) (*Node, error)
}

// LocaleLister is implemented by loaders that can enumerate their locales.
type LocaleLister interface {
	Locales(bundle string) ([]string, error)
}

// DefaultBundles returns a loader over the bundled CLDR extract.
func DefaultBundles() *FSLoader {
	sub, err := fs.Sub(embeddedBundles, "data")
	if err != nil {
		panic(fmt.Sprintf("cosmo: embedded bundles: %v", err))
	}
	return NewFSLoader(sub)
}

func validateBundleName(bundle string) error {
	if !bundleNamePattern.MatchString(bundle) {
		return &BundleLoadError{Bundle: bundle, Err: fmt.Errorf("malformed bundle name")}
	}
	return nil
}

// MapLoader serves bundles from memory, keyed by bundle then locale.
type MapLoader struct {
	mu      sync.RWMutex
	bundles map[string]map[string]*Node
}

func NewMapLoader() *MapLoader {
	return &MapLoader{bundles: make(map[string]map[string]*Node)}
}

// Set stores root as the bundle for locale.
func (l *MapLoader) Set(bundle, locale string, root *Node) *MapLoader {
	l.mu.Lock()
	defer l.mu.Unlock()

	locales := l.bundles[bundle]
	if locales == nil {
		locales = make(map[string]*Node)
		l.bundles[bundle] = locales
	}
	locales[normalizeLocale(locale)] = root
	return l
}

func (l *MapLoader) LoadBundle(locale, bundle string) (*Node, error) {
	if err := validateBundleName(bundle); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	locales, ok := l.bundles[bundle]
	if !ok {
		return nil, &BundleLoadError{Bundle: bundle, Locale: locale, Err: fmt.Errorf("unknown bundle")}
	}
	root, ok := locales[normalizeLocale(locale)]
	if !ok {
		return nil, ErrBundleNotFound
	}
	return root, nil
}

func (l *MapLoader) Locales(bundle string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	locales, ok := l.bundles[bundle]
	if !ok {
		return nil, &BundleLoadError{Bundle: bundle, Err: fmt.Errorf("unknown bundle")}
	}
	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
