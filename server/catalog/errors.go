package catalog

import "github.com/gear6io/mallard/pkg/errors"

// Catalog-specific error codes
var (
	ErrDataPathResolveFailed = errors.MustNewCode("catalog.data_path_resolve_failed")
	ErrDataPathMissing       = errors.MustNewCode("catalog.data_path_missing")
	ErrDataPathNotDir        = errors.MustNewCode("catalog.data_path_not_dir")
	ErrScanFailed            = errors.MustNewCode("catalog.scan_failed")
	ErrClassifyFailed        = errors.MustNewCode("catalog.classify_failed")
	ErrEmpty                 = errors.MustNewCode("catalog.empty")
	ErrSampleSetupFailed     = errors.MustNewCode("catalog.sample_setup_failed")
)
