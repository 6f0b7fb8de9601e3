package cosmo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"
)

var bundleExtensions = []string{".yaml", ".yml", ".json"}

// FSLoader reads bundles laid out as <bundle>/<locale>.yaml from a file system.
type FSLoader struct {
	fsys fs.FS
}

func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader reads bundles from a directory on disk.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

func (l *FSLoader) LoadBundle(locale, bundle string) (*Node, error) {
	if err := validateBundleName(bundle); err != nil {
		return nil, err
	}
	if l == nil || l.fsys == nil {
		return nil, &BundleLoadError{Bundle: bundle, Locale: locale, Err: errors.New("no file system configured")}
	}

	info, err := fs.Stat(l.fsys, bundle)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", bundle)
		}
		return nil, &BundleLoadError{Bundle: bundle, Locale: locale, Err: err}
	}

	name := normalizeLocale(locale)
	if name == "" {
		name = RootLocale
	}

	for _, ext := range bundleExtensions {
		file := path.Join(bundle, name+ext)
		data, err := fs.ReadFile(l.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, &BundleLoadError{Bundle: bundle, Locale: name, Err: err}
		}

		root, err := decodeBundle(file, data)
		if err != nil {
			return nil, &BundleLoadError{Bundle: bundle, Locale: name, Err: err}
		}
		return root, nil
	}

	return nil, ErrBundleNotFound
}

func (l *FSLoader) Locales(bundle string) ([]string, error) {
	if err := validateBundleName(bundle); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(l.fsys, bundle)
	if err != nil {
		return nil, &BundleLoadError{Bundle: bundle, Err: err}
	}

	var locales []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, ext := range bundleExtensions {
			if strings.HasSuffix(name, ext) {
				locales = append(locales, strings.TrimSuffix(name, ext))
				break
			}
		}
	}
	return normalizeLocales(locales), nil
}

func decodeBundle(file string, data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}

	if doc.Kind == 0 {
		return TableNode(), nil
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return TableNode(), nil
		}
		root = doc.Content[0]
	}

	node, err := convertYAML(root)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	if !node.IsTable() {
		return nil, fmt.Errorf("decode %s: bundle root must be a mapping, got %s", file, node.Kind())
	}
	return node, nil
}

func convertYAML(n *yaml.Node) (*Node, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", n.Line)
		}
		return convertYAML(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return StringNode(""), nil
		}
		return StringNode(n.Value), nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: list items must be scalars", item.Line)
			}
			items = append(items, item.Value)
		}
		return ListNode(items...), nil
	case yaml.MappingNode:
		table := TableNode()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			child, err := convertYAML(value)
			if err != nil {
				return nil, err
			}
			table.set(key.Value, child)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}

// OverlayLoader merges bundles from several loaders. Later loaders win, tables
// are merged key by key.
type OverlayLoader struct {
	loaders []BundleLoader
}

func NewOverlayLoader(base BundleLoader, overrides ...BundleLoader) *OverlayLoader {
	loaders := make([]BundleLoader, 0, len(overrides)+1)
	for _, loader := range append([]BundleLoader{base}, overrides...) {
		if loader != nil {
			loaders = append(loaders, loader)
		}
	}
	return &OverlayLoader{loaders: loaders}
}

func (l *OverlayLoader) LoadBundle(locale, bundle string) (*Node, error) {
	if err := validateBundleName(bundle); err != nil {
		return nil, err
	}

	var (
		merged  *Node
		loadErr error
		opened  bool
	)
	for _, loader := range l.loaders {
		root, err := loader.LoadBundle(locale, bundle)
		switch {
		case err == nil:
			opened = true
			merged = merged.merge(root)
		case errors.Is(err, ErrBundleNotFound):
			opened = true
		default:
			var bundleErr *BundleLoadError
			if !errors.As(err, &bundleErr) {
				return nil, err
			}
			if loadErr == nil {
				loadErr = err
			}
		}
	}

	if merged != nil {
		return merged, nil
	}
	if !opened && loadErr != nil {
		return nil, loadErr
	}
	return nil, ErrBundleNotFound
}

func (l *OverlayLoader) Locales(bundle string) ([]string, error) {
	var all []string
	for _, loader := range l.loaders {
		lister, ok := loader.(LocaleLister)
		if !ok {
			continue
		}
		locales, err := lister.Locales(bundle)
		if err != nil {
			continue
		}
		all = append(all, locales...)
	}
	return normalizeLocales(all), nil
}

type cachedBundle struct {
	root *Node
	err  error
}

// CachedLoader keeps recently used bundles, including misses, in an LRU.
type CachedLoader struct {
	next  BundleLoader
	cache *lru.Cache[string, cachedBundle]
}

func NewCachedLoader(next BundleLoader, size int) (*CachedLoader, error) {
	if next == nil {
		return nil, errors.New("cosmo: cached loader requires a loader")
	}
	cache, err := lru.New[string, cachedBundle](size)
	if err != nil {
		return nil, fmt.Errorf("cosmo: bundle cache: %w", err)
	}
	return &CachedLoader{next: next, cache: cache}, nil
}

func (l *CachedLoader) LoadBundle(locale, bundle string) (*Node, error) {
	key := bundle + "/" + normalizeLocale(locale)
	if entry, ok := l.cache.Get(key); ok {
		return entry.root, entry.err
	}

	root, err := l.next.LoadBundle(locale, bundle)
	if err == nil || errors.Is(err, ErrBundleNotFound) {
		l.cache.Add(key, cachedBundle{root: root, err: err})
	}
	return root, err
}

func (l *CachedLoader) Locales(bundle string) ([]string, error) {
	lister, ok := l.next.(LocaleLister)
	if !ok {
		return nil, nil
	}
	return lister.Locales(bundle)
}

// Len reports the number of cached entries.
func (l *CachedLoader) Len() int {
	return l.cache.Len()
}
