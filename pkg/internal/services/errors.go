package services

import "errors"

// Error kinds surfaced to the transport layer. The http error handler maps
// these onto status codes; anything else counts as a storage failure and is
// safe to retry.
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("invalid input")
)
