package document

import "errors"

var (
	ErrNotFound        = errors.New("room document not found")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
