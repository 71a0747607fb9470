package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gear6io/mallard/pkg/errors"
)

// Classify inspects a path and returns its resource kind.
//
// Files are matched on their literal extension (case-sensitive, so
// "DATA.CSV" is unsupported). Directories are parquet folders when at
// least one direct entry is named *.parquet, and plain folders otherwise.
func Classify(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return KindUnsupported, errors.New(ErrClassifyFailed, "failed to stat path", err).AddContext("path", path)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return KindUnsupported, errors.New(ErrClassifyFailed, "failed to read directory", err).AddContext("path", path)
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".parquet") {
				return KindParquetFolder, nil
			}
		}
		return KindPlainFolder, nil
	}

	switch filepath.Ext(path) {
	case ".json":
		return KindJSONFile, nil
	case ".csv":
		return KindCSVFile, nil
	case ".tsv", ".txt":
		return KindTSVFile, nil
	case ".parquet":
		return KindParquetFile, nil
	default:
		return KindUnsupported, nil
	}
}
