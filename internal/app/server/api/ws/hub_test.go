package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"fluiddiary/internal/domain/document"
	"fluiddiary/internal/infrastructure/storage/memory"
)

func newHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	repo := memory.NewDocumentRepository()
	hub := NewHub(repo, slog.Default())

	mux := chi.NewMux()
	mux.Get("/api/v1/rooms/{code}/ws", hub.Handler())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, wsURL, code string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL+"/api/v1/rooms/"+code+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub, wsURL := newHubServer(t)

	conn1 := dial(t, wsURL, "ABCD2345")
	conn2 := dial(t, wsURL, "ABCD2345")
	other := dial(t, wsURL, "WXYZ2345")

	// Registration races the dial returning; give the server a beat.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.rooms["ABCD2345"]) == 2 && len(hub.rooms["WXYZ2345"]) == 1
	}, 2*time.Second, 10*time.Millisecond)

	body := []byte(`{"days":[],"entries":[]}`)
	hub.Broadcast("ABCD2345", body)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, conn := range []*websocket.Conn{conn1, conn2} {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, body, data)
	}

	// The other room saw nothing.
	shortCtx, shortCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer shortCancel()
	_, _, err := other.Read(shortCtx)
	assert.Error(t, err)
}

func TestHubSendsCurrentDocumentOnConnect(t *testing.T) {
	repo := memory.NewDocumentRepository()
	hub := NewHub(repo, slog.Default())

	body := []byte(`{"days":[],"entries":[]}`)
	require.NoError(t, repo.Upsert(context.Background(), document.Document{
		Code:      "ABCD2345",
		Body:      body,
		UpdatedAt: time.Now().UTC(),
	}))

	mux := chi.NewMux()
	mux.Get("/api/v1/rooms/{code}/ws", hub.Handler())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"), "ABCD2345")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, body, data)
}

func TestHubRejectsInvalidCode(t *testing.T) {
	_, wsURL := newHubServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err := websocket.Dial(ctx, wsURL+"/api/v1/rooms/ab/ws", nil)
	assert.Error(t, err)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, wsURL := newHubServer(t)

	conn := dial(t, wsURL, "ABCD2345")
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.rooms["ABCD2345"]) == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close(websocket.StatusNormalClosure, "done")

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		_, ok := hub.rooms["ABCD2345"]
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}
