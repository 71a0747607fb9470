package http

import "github.com/gear6io/mallard/pkg/errors"

// Package-specific error codes for the HTTP protocol server
var (
	ErrInvalidParam    = errors.MustNewCode("http.invalid_param")
	ErrUnknownResource = errors.MustNewCode("http.unknown_resource")
	ErrListenFailed    = errors.MustNewCode("http.listen_failed")
)
