package query

import "github.com/gear6io/mallard/pkg/errors"

// Query engine error codes
var (
	ErrOpenFailed    = errors.MustNewCode("query.open_failed")
	ErrPingFailed    = errors.MustNewCode("query.ping_failed")
	ErrExecuteFailed = errors.MustNewCode("query.execute_failed")
	ErrColumnsFailed = errors.MustNewCode("query.columns_failed")
	ErrScanFailed    = errors.MustNewCode("query.scan_failed")
	ErrRowsFailed    = errors.MustNewCode("query.rows_failed")
	ErrSessionClosed = errors.MustNewCode("query.session_closed")
)
