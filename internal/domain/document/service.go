// Package document is the server-side room document domain. A room holds at
// most one document; every upload replaces it wholesale and clients do their
// own reconciliation.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"fluiddiary/internal/domain/diary"
	"fluiddiary/internal/domain/room"
	"fluiddiary/internal/domain/sync"
)

// Notifier fans an updated room document out to connected subscribers. The
// uploader gets the broadcast too; echo suppression is the client's job.
type Notifier interface {
	Broadcast(code string, body []byte)
}

type Servicer interface {
	Put(ctx context.Context, code string, snap diary.Snapshot) (string, error)
	Get(ctx context.Context, code string) (diary.Snapshot, error)
}

type Service struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
}

func NewService(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log.With("component", "document_service"),
	}
}

// Put validates and stores a room's snapshot, then broadcasts it. Returns
// the normalized room code.
func (s *Service) Put(ctx context.Context, code string, snap diary.Snapshot) (string, error) {
	normalized, err := room.Normalize(code)
	if err != nil {
		return "", err
	}
	if err := snap.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}

	doc := Document{
		Code:      normalized,
		Body:      body,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, doc); err != nil {
		s.log.Error("document upsert failed", "room", normalized, "error", err)
		return "", err
	}

	if s.notifier != nil {
		s.notifier.Broadcast(normalized, body)
	}

	s.log.Debug("document stored",
		"room", normalized,
		"days", len(snap.Days),
		"entries", len(snap.Entries),
	)
	return normalized, nil
}

// Get returns the current snapshot for a room.
func (s *Service) Get(ctx context.Context, code string) (diary.Snapshot, error) {
	normalized, err := room.Normalize(code)
	if err != nil {
		return diary.Snapshot{}, err
	}

	doc, err := s.repo.Get(ctx, normalized)
	if err != nil {
		return diary.Snapshot{}, err
	}
	return sync.DecodeSnapshot(doc.Body)
}
