package document

import "time"

// Document is one room's shared diary snapshot as stored server-side. The
// body is the raw JSON exactly as the winning client uploaded it; the server
// never merges, it only keeps the latest upload per room.
type Document struct {
	Code      string
	Body      []byte
	UpdatedAt time.Time
}
