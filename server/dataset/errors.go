package dataset

import "github.com/gear6io/mallard/pkg/errors"

// Dataset-specific error codes. These are request-scoped: a failure
// here fails one response, never the server.
var (
	ErrUnsupportedKind = errors.MustNewCode("dataset.unsupported_kind")
	ErrJSONReadFailed  = errors.MustNewCode("dataset.json_read_failed")
	ErrJSONInvalid     = errors.MustNewCode("dataset.json_invalid")
	ErrListingFailed   = errors.MustNewCode("dataset.listing_failed")
)
