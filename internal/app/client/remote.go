package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	gosync "sync"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/exp/slog"

	"fluiddiary/internal/app/client/config"
	"fluiddiary/internal/domain/diary"
	"fluiddiary/internal/domain/sync"
)

// HTTPRemote talks to the room document server: snapshot uploads go over
// plain HTTP, change notifications arrive on a websocket per room.
type HTTPRemote struct {
	log     *slog.Logger
	client  *http.Client
	baseURL string
	wsURL   string
}

func NewHTTPRemote(cfg *config.Config, log *slog.Logger) *HTTPRemote {
	httpScheme, wsScheme := "http", "ws"
	if cfg.EnableTLS {
		httpScheme, wsScheme = "https", "wss"
	}
	return &HTTPRemote{
		log:     log.With(slog.String("component", "remote")),
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: fmt.Sprintf("%s://%s", httpScheme, cfg.ServerAddress),
		wsURL:   fmt.Sprintf("%s://%s", wsScheme, cfg.ServerAddress),
	}
}

// Put replaces the room document with the given snapshot.
func (r *HTTPRemote) Put(ctx context.Context, code string, snap diary.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/rooms/%s", r.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("put snapshot: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Subscribe opens a websocket on the room and delivers every decodable
// document frame to onSnapshot. Malformed frames are logged and skipped; the
// subscription stays up.
func (r *HTTPRemote) Subscribe(ctx context.Context, code string, onSnapshot func(diary.Snapshot)) (sync.Subscription, error) {
	url := fmt.Sprintf("%s/api/v1/rooms/%s/ws", r.wsURL, code)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	sub := &wsSubscription{conn: conn, done: make(chan struct{})}
	go sub.readLoop(ctx, r.log.With(slog.String("room", code)), onSnapshot)
	return sub, nil
}

type wsSubscription struct {
	conn *websocket.Conn
	done chan struct{}

	mu       gosync.Mutex
	err      error
	canceled bool
}

func (s *wsSubscription) Done() <-chan struct{} { return s.done }

func (s *wsSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *wsSubscription) Cancel() {
	s.mu.Lock()
	s.canceled = true
	s.mu.Unlock()
	// Closing the connection unblocks the read loop, which then closes done.
	s.conn.Close(websocket.StatusNormalClosure, "leaving room")
}

func (s *wsSubscription) readLoop(ctx context.Context, log *slog.Logger, onSnapshot func(diary.Snapshot)) {
	defer close(s.done)
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			s.mu.Lock()
			if !s.canceled && ctx.Err() == nil {
				s.err = err
			}
			s.mu.Unlock()
			return
		}

		snap, err := sync.DecodeSnapshot(data)
		if err != nil {
			log.Warn("malformed room document, skipped", slog.Any("error", err))
			continue
		}
		onSnapshot(snap)
	}
}
