package domain

import "errors"

var (
	ErrResourceNotFound  = errors.New("resource not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrBlobNotFound      = errors.New("blob not found")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrPipelineBusy      = errors.New("pipeline at capacity")
	ErrUnauthorized      = errors.New("unauthorized")
)
