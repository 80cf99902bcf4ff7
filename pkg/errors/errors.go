package app_errors

import "errors"

// Load and persistence errors
var (
	ErrStorageMiss    = errors.New("key not found in storage")
	ErrDecode         = errors.New("decode failed")
	ErrEncode         = errors.New("encode failed")
	ErrPathResolution = errors.New("export directory could not be resolved")
	ErrFileWrite      = errors.New("export file write failed")
)

// Common errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")
)
