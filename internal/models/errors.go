package models

import "errors"

var (
	// ErrPersistence means the location store was unavailable or rejected a write.
	ErrPersistence = errors.New("persistence error")
	// ErrLocationNotFound means the geocoder had no candidate for a place name.
	ErrLocationNotFound = errors.New("location not found")
	// ErrUpstreamUnavailable covers network and service failures of external lookups.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrRecordNotFound means no stored location has the requested id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidInput means a caller supplied an unusable argument.
	ErrInvalidInput = errors.New("invalid input")
)
