package catalog

// Kind is the closed set of resource types the server can expose.
// Classification happens exactly once, at catalog build time; everything
// downstream branches on the Kind instead of re-inspecting the filesystem.
type Kind int

const (
	KindUnsupported Kind = iota
	KindJSONFile
	KindCSVFile
	KindTSVFile
	KindParquetFile
	KindParquetFolder
	KindPlainFolder
)

// String returns the human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindJSONFile:
		return "json"
	case KindCSVFile:
		return "csv"
	case KindTSVFile:
		return "tsv"
	case KindParquetFile:
		return "parquet"
	case KindParquetFolder:
		return "parquet_folder"
	case KindPlainFolder:
		return "folder"
	default:
		return "unsupported"
	}
}

// IsFile reports whether the kind is a single file on disk
func (k Kind) IsFile() bool {
	switch k {
	case KindJSONFile, KindCSVFile, KindTSVFile, KindParquetFile:
		return true
	default:
		return false
	}
}

// IsFolder reports whether the kind is a directory on disk
func (k Kind) IsFolder() bool {
	return k == KindParquetFolder || k == KindPlainFolder
}

// Queryable reports whether pages of the resource are produced through
// the query engine. JSON files are paginated in-process instead.
func (k Kind) Queryable() bool {
	switch k {
	case KindCSVFile, KindTSVFile, KindParquetFile, KindParquetFolder:
		return true
	default:
		return false
	}
}

// HasSchema reports whether the resource gets a column-schema endpoint.
// Plain folders only get a listing.
func (k Kind) HasSchema() bool {
	return k.IsFile() || k == KindParquetFolder
}
