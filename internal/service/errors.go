package service

import "errors"

// Sentinel errors mapped to HTTP status codes by the handlers
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("access denied")
	ErrTripArchived = errors.New("trip is archived")
)
