package catalog

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gear6io/mallard/pkg/errors"
)

// SampleKeyword is the reserved data path that serves the bundled
// sample dataset instead of a directory on disk.
const SampleKeyword = "mallard_datasample"

//go:embed sample
var sampleFS embed.FS

// materializeSample copies the embedded sample dataset into the user
// cache directory and returns the resulting data path. Files are
// rewritten on every call so a stale cache never shadows the bundle.
func materializeSample() (string, error) {
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = os.TempDir()
	}
	dest := filepath.Join(cacheRoot, "mallard", "sample")

	walkErr := fs.WalkDir(sampleFS, "sample", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("sample", path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		data, err := sampleFS.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	if walkErr != nil {
		return "", errors.New(ErrSampleSetupFailed, "failed to materialize sample dataset", walkErr)
	}

	return dest, nil
}
