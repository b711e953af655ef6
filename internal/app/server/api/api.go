// PUT /api/v1/rooms/{code}     # Replace the room document
// GET /api/v1/rooms/{code}     # Fetch the room document
// GET /api/v1/rooms/{code}/ws  # Subscribe to room document updates
// GET /api/v1/health           # Health check

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "fluiddiary/internal/app/server/api/http/health"
	roomAPI "fluiddiary/internal/app/server/api/http/room"
	"fluiddiary/internal/app/server/api/ws"
	"fluiddiary/internal/domain/document"
)

type Handlers struct {
	Health *healthAPI.Handler
	Room   *roomAPI.Handler
}

// New builds the chi mux with all HTTP operations registered through huma
// plus the websocket endpoint, which bypasses huma because it hijacks the
// connection.
func New(repo document.Repository, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Fluid Diary Sync API", "1.0.0")
	API := humachi.New(mux, config)

	hub := ws.NewHub(repo, log)
	service := document.NewService(repo, hub, log)

	h := &Handlers{
		Health: healthAPI.NewHandler(log, huma.Middlewares{}),
		Room:   roomAPI.NewHandler(service, log, huma.Middlewares{}),
	}
	h.Health.SetupRoutes(API)
	h.Room.SetupRoutes(API)

	mux.Get("/api/v1/rooms/{code}/ws", hub.Handler())

	return mux
}
