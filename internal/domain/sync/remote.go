package sync

import (
	"context"

	"fluiddiary/internal/domain/diary"
)

// Replica is the local authoritative state the controller reads snapshots
// from and writes merge results into. The surrounding application owns it;
// the sync core never originates domain records.
type Replica interface {
	Snapshot() (diary.Snapshot, error)
	ReplaceProfile(p *diary.Profile) error
	ReplaceDays(days []diary.Day) error
	ReplaceEntries(entries []diary.Entry) error
}

// Subscription is a live listen on a room document.
type Subscription interface {
	// Done is closed when the stream ends, whether by Cancel or by a
	// transport failure.
	Done() <-chan struct{}
	// Err reports why the stream ended; nil after Cancel.
	Err() error
	Cancel()
}

// RemoteStore is the narrow contract the sync core needs from the shared
// document store. Put has upsert semantics; the store itself is last-write-
// wins. Subscribe delivers the current document immediately (when one
// exists) and then every subsequent write from any client, including this
// one — the echo the reconciler filters out.
type RemoteStore interface {
	Put(ctx context.Context, code string, snap diary.Snapshot) error
	Subscribe(ctx context.Context, code string, onSnapshot func(diary.Snapshot)) (Subscription, error)
}
