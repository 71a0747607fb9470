package catalog

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/rs/zerolog"
)

// Item is one registered resource: a file or folder under the data path.
type Item struct {
	Name string // entry name as it appears on disk
	Path string // absolute path
	Kind Kind
}

// Key returns the item's resource key.
func (i Item) Key() string {
	return ResourceKey(i.Name)
}

// Catalog is the immutable registry of resources built once at startup.
// It owns the dispatch table the serving layer resolves requests against.
type Catalog struct {
	dataPath string
	items    []Item
	byKey    map[string]Item
}

// ResolveDataPath turns the configured data location into an absolute,
// existing directory. The sample keyword materializes the bundled
// dataset and resolves to it.
func ResolveDataPath(raw string) (string, error) {
	if raw == SampleKeyword {
		return materializeSample()
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", errors.New(ErrDataPathResolveFailed, "failed to resolve data path", err).AddContext("path", raw)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.New(ErrDataPathMissing, "data path does not exist", err).AddContext("path", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(ErrDataPathNotDir, "data path %s is not a directory", abs)
	}

	return abs, nil
}

// Build scans the data path and registers every supported entry. When
// names is non-empty only those entries are considered, in the given
// order; otherwise the directory is scanned lexicographically.
//
// Unsupported files and missing names are skipped, not failed: a data
// directory with a stray README should still serve. An empty catalog is
// returned as-is; whether that is fatal is the caller's decision.
func Build(dataPath string, names []string, logger zerolog.Logger) (*Catalog, error) {
	var candidates []string
	if len(names) > 0 {
		candidates = names
	} else {
		entries, err := os.ReadDir(dataPath)
		if err != nil {
			return nil, errors.New(ErrScanFailed, "failed to scan data path", err).AddContext("path", dataPath)
		}
		// os.ReadDir returns entries sorted by name
		for _, entry := range entries {
			candidates = append(candidates, entry.Name())
		}
	}

	c := &Catalog{
		dataPath: dataPath,
		byKey:    make(map[string]Item),
	}

	for _, name := range candidates {
		path := filepath.Join(dataPath, name)
		if _, err := os.Stat(path); err != nil {
			logger.Debug().Str("name", name).Msg("skipping missing entry")
			continue
		}

		kind, err := Classify(path)
		if err != nil {
			return nil, err
		}
		if kind == KindUnsupported {
			logger.Debug().Str("name", name).Msg("skipping unsupported entry")
			continue
		}

		item := Item{Name: name, Path: path, Kind: kind}
		key := item.Key()
		if prev, ok := c.byKey[key]; ok {
			logger.Warn().
				Str("key", key).
				Str("shadowed", prev.Name).
				Str("winner", name).
				Msg("resource key collision, later entry wins")
		}
		c.items = append(c.items, item)
		c.byKey[key] = item

		logger.Debug().
			Str("name", name).
			Str("key", key).
			Str("kind", kind.String()).
			Msg("registered resource")
	}

	return c, nil
}

// DataPath returns the absolute directory the catalog was built from.
func (c *Catalog) DataPath() string {
	return c.dataPath
}

// Len returns the number of registered resources.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the registered resources in registration order. Shadowed
// collision losers are included so operators can see them.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Resolve looks a resource key up in the dispatch table.
func (c *Catalog) Resolve(key string) (Item, bool) {
	item, ok := c.byKey[key]
	return item, ok
}

// Keys returns the resolvable resource keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for key := range c.byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
