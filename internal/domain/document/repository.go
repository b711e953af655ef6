package document

import "context"

type Repository interface {
	Upsert(ctx context.Context, doc Document) error
	Get(ctx context.Context, code string) (Document, error)
}
