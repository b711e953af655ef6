// Package memory holds in-process repositories used when no database is
// configured, for local development and tests.
package memory

import (
	"context"
	gosync "sync"

	"fluiddiary/internal/domain/document"
)

type DocumentRepository struct {
	mu   gosync.RWMutex
	docs map[string]document.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{docs: make(map[string]document.Document)}
}

func (r *DocumentRepository) Upsert(_ context.Context, doc document.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	body := make([]byte, len(doc.Body))
	copy(body, doc.Body)
	doc.Body = body
	r.docs[doc.Code] = doc
	return nil
}

func (r *DocumentRepository) Get(_ context.Context, code string) (document.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[code]
	if !ok {
		return document.Document{}, document.ErrNotFound
	}
	return doc, nil
}
