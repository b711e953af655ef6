package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluiddiary/internal/domain/document"
)

func TestDocumentRepository(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "ABCD2345")
	assert.ErrorIs(t, err, document.ErrNotFound)

	doc := document.Document{
		Code:      "ABCD2345",
		Body:      []byte(`{"days":[],"entries":[]}`),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(ctx, doc))

	got, err := repo.Get(ctx, "ABCD2345")
	require.NoError(t, err)
	assert.Equal(t, doc.Body, got.Body)

	doc.Body = []byte(`{"days":[],"entries":[],"updated_at":"2026-08-29T00:00:00Z"}`)
	require.NoError(t, repo.Upsert(ctx, doc))
	got, err = repo.Get(ctx, "ABCD2345")
	require.NoError(t, err)
	assert.Equal(t, doc.Body, got.Body)
}
