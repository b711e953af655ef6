package room

import "errors"

var (
	// ErrInvalidCode is returned for codes that normalize to fewer than
	// MinLen or more than MaxLen characters.
	ErrInvalidCode = errors.New("invalid room code")

	// ErrNoRoom is returned when an operation needs an active room binding
	// and none exists.
	ErrNoRoom = errors.New("no active room")
)
