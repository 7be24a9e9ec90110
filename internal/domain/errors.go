package domain

import "errors"

var (
	// ErrInvalidInput signals a missing or empty required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable signals that the document store was never connected.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStoreWrite signals a failed store insert.
	ErrStoreWrite = errors.New("store write failed")
	// ErrStoreRead signals a failed store read.
	ErrStoreRead = errors.New("store read failed")
	// ErrTranslation signals a failed translation call.
	ErrTranslation = errors.New("translation failed")
)
