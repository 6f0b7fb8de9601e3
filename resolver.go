package cosmo

import (
	"errors"
	"log/slog"
)

// FallbackResolver resolves bundle paths for a locale.
type FallbackResolver interface {
	Resolve(locale LocaleID, bundle string, path ...string) (*Node, bool, error)
}

// Resolver walks the fallback chain of a locale. Each chain entry must match
// the whole path on its own; values from different entries are never mixed.
// Empty values at the end of the path count as misses.
type Resolver struct {
	loader BundleLoader
	logger *slog.Logger
}

func NewResolver(loader BundleLoader, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = discardLogger()
	}
	return &Resolver{loader: loader, logger: logger.With(componentAttr("resolver"))}
}

// Resolve returns the node at path, false when no chain entry holds it, or a
// *BundleLoadError when the bundle cannot be opened at any level.
func (r *Resolver) Resolve(locale LocaleID, bundle string, path ...string) (*Node, bool, error) {
	if r == nil || r.loader == nil {
		return nil, false, &BundleLoadError{Bundle: bundle, Err: errors.New("no bundle loader configured")}
	}
	if err := validateBundleName(bundle); err != nil {
		return nil, false, err
	}

	chain := FallbackChain(locale)
	var loadErr error
	opened := false

	for _, entry := range chain {
		root, err := r.loader.LoadBundle(entry, bundle)
		if errors.Is(err, ErrBundleNotFound) {
			opened = true
			continue
		}
		if err != nil {
			r.logger.Warn("bundle load failed",
				slog.String("locale", locale.String()),
				slog.String("entry", entry),
				slog.String("bundle", bundle),
				errorAttr(err),
			)
			if loadErr == nil {
				loadErr = err
			}
			continue
		}
		opened = true

		node, ok := root.Walk(path...)
		if !ok || node.Empty() {
			continue
		}

		if entry != chain[0] {
			r.logger.Debug("resource resolved through fallback",
				slog.String("locale", locale.String()),
				slog.String("entry", entry),
				slog.String("bundle", bundle),
				slog.Any("path", path),
			)
		}
		return node, true, nil
	}

	if !opened && loadErr != nil {
		return nil, false, loadErr
	}
	return nil, false, nil
}

// ResolveString resolves path to a leaf string, "" when absent.
func (r *Resolver) ResolveString(locale LocaleID, bundle string, path ...string) (string, error) {
	node, ok, err := r.Resolve(locale, bundle, path...)
	if err != nil || !ok {
		return "", err
	}
	return node.String(), nil
}
