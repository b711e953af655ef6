// Package client wires the local diary replica, the durable room binding and
// the remote document server into one application object for the CLI.
package client

import (
	"time"

	"golang.org/x/exp/slog"

	"fluiddiary/internal/app/client/config"
	"fluiddiary/internal/domain/room"
	"fluiddiary/internal/domain/sync"
)

type App struct {
	config     *config.Config
	log        *slog.Logger
	store      *SQLiteStore
	rooms      *room.Manager
	controller *sync.Controller
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := NewSQLiteStore(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	rooms := room.NewManager(NewFileState(cfg.RoomPath))
	remote := NewHTTPRemote(cfg, log)

	syncCfg := sync.DefaultConfig()
	syncCfg.Debounce = time.Duration(cfg.DebounceSeconds) * time.Second
	controller := sync.NewController(store, remote, rooms, log, syncCfg)

	// Every user-level mutation feeds the debounce window.
	store.OnChange(controller.OnLocalChange)

	// Rebind the room persisted by a previous run, if any.
	controller.Resume()

	return &App{
		config:     cfg,
		log:        log,
		store:      store,
		rooms:      rooms,
		controller: controller,
	}, nil
}

func (a *App) Config() *config.Config       { return a.config }
func (a *App) Log() *slog.Logger            { return a.log }
func (a *App) Store() *SQLiteStore          { return a.store }
func (a *App) Controller() *sync.Controller { return a.controller }

// JoinLink builds the shareable URL for a room code.
func (a *App) JoinLink(code string) string {
	return room.JoinURL(a.config.ShareBase(), code)
}

// Close pushes any pending upload and tears the app down. Without the flush
// a short-lived CLI invocation would exit inside the debounce window and the
// mutation would only reach the room on the next sync.
func (a *App) Close() error {
	a.controller.FlushNow()
	a.controller.Close()
	return a.store.Close()
}
