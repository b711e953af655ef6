package sync

import "errors"

var (
	// ErrMalformedSnapshot marks a remote payload whose shape is unusable.
	// The merge is skipped and local state stays untouched; the subscription
	// loop keeps running.
	ErrMalformedSnapshot = errors.New("malformed remote snapshot")

	// ErrNotFound is returned by remote stores when a room has no document
	// yet.
	ErrNotFound = errors.New("room document not found")
)
