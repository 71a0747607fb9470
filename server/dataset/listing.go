package dataset

import (
	"os"
	"path/filepath"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
)

// Entry is one child of a listed directory.
type Entry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// Listing is the full contents of a plain directory resource. Directory
// listings are not paginated.
type Listing struct {
	Directory string  `json:"directory"`
	Contents  []Entry `json:"contents"`
}

// List enumerates a plain folder's immediate children sorted by name.
// Paths are reported relative to the data directory root.
func (s *Service) List(dataPath string, item catalog.Item) (*Listing, error) {
	if item.Kind != catalog.KindPlainFolder {
		return nil, errors.Newf(ErrUnsupportedKind, "resource %s is not a listable directory", item.Name)
	}

	dirEntries, err := os.ReadDir(item.Path)
	if err != nil {
		return nil, errors.New(ErrListingFailed, "failed to read directory", err).
			AddContext("path", item.Path)
	}

	contents := make([]Entry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		entryType := "file"
		if entry.IsDir() {
			entryType = "directory"
		}

		rel, err := filepath.Rel(dataPath, filepath.Join(item.Path, entry.Name()))
		if err != nil {
			rel = entry.Name()
		}

		contents = append(contents, Entry{
			Name: entry.Name(),
			Type: entryType,
			Path: rel,
		})
	}

	s.logger.Debug().
		Str("resource", item.Key()).
		Int("entries", len(contents)).
		Msg("served directory listing")

	return &Listing{
		Directory: item.Key(),
		Contents:  contents,
	}, nil
}
