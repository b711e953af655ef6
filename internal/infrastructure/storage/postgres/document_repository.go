package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"fluiddiary/internal/domain/document"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewDocumentRepository(pool *pgxpool.Pool, log *slog.Logger) *DocumentRepository {
	return &DocumentRepository{
		pool: pool,
		log:  log.With("component", "document_repository"),
	}
}

func (r *DocumentRepository) Upsert(ctx context.Context, doc document.Document) error {
	const query = `
		INSERT INTO rooms (code, body, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`

	if _, err := r.pool.Exec(ctx, query, doc.Code, doc.Body, doc.UpdatedAt); err != nil {
		r.log.Error("failed to upsert room document", "room", doc.Code, "error", err)
		return fmt.Errorf("upsert room: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, code string) (document.Document, error) {
	const query = `SELECT code, body, updated_at FROM rooms WHERE code = $1`

	var doc document.Document
	row := r.pool.QueryRow(ctx, query, code)
	if err := row.Scan(&doc.Code, &doc.Body, &doc.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrNotFound
		}
		r.log.Error("failed to get room document", "room", code, "error", err)
		return document.Document{}, fmt.Errorf("get room: %w", err)
	}
	return doc, nil
}
