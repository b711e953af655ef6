// Package sync is the multi-device synchronization core: change detection,
// snapshot reconciliation and the session controller that ties a local
// replica to a shared room document.
package sync

import (
	"context"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"fluiddiary/internal/domain/diary"
	"fluiddiary/internal/domain/room"
)

type State int

const (
	StateUnbound State = iota
	StateBoundIdle
	StateBoundPending
)

func (s State) String() string {
	switch s {
	case StateBoundIdle:
		return "bound-idle"
	case StateBoundPending:
		return "bound-pending-upload"
	default:
		return "unbound"
	}
}

// Status is the passive session state the UI may poll. Background failures
// never propagate as errors; they only show up here and in the logs.
type Status struct {
	State     State
	Room      string
	LastSync  time.Time
	Connected bool
}

// Config tunes the controller. A nil config means defaults.
type Config struct {
	// Debounce is how long the controller waits after the most recent local
	// mutation before uploading. Every further mutation restarts the window.
	Debounce time.Duration

	// PutTimeout bounds a single upload attempt.
	PutTimeout time.Duration

	// MaxBackoff caps the resubscription backoff.
	MaxBackoff time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Debounce:   2 * time.Second,
		PutTimeout: 10 * time.Second,
		MaxBackoff: 30 * time.Second,
	}
}

// Controller orchestrates the session lifecycle: it owns the room binding,
// schedules debounced uploads and runs the remote subscription.
//
// One mutex serializes every path that touches the replica or the
// last-uploaded fingerprint. An upload's snapshot read can therefore never
// interleave with a concurrent remote merge.
type Controller struct {
	log     *slog.Logger
	replica Replica
	remote  RemoteStore
	rooms   *room.Manager
	cfg     Config

	mu           gosync.Mutex
	state        State
	roomCode     string
	generation   uint64
	timer        *time.Timer
	lastUploaded Fingerprint
	lastSync     time.Time
	connected    bool
	cancelSub    context.CancelFunc
	wg           gosync.WaitGroup
}

func NewController(replica Replica, remote RemoteStore, rooms *room.Manager, log *slog.Logger, cfg *Config) *Controller {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Controller{
		log:     log.With(slog.String("component", "sync_controller")),
		replica: replica,
		remote:  remote,
		rooms:   rooms,
		cfg:     *cfg,
	}
}

// Resume rebinds to the room persisted in durable session state, if any.
// Call once at process start.
func (c *Controller) Resume() {
	code, ok := c.rooms.Active()
	if !ok {
		return
	}
	c.mu.Lock()
	c.bindLocked(code)
	c.mu.Unlock()
}

// CreateRoom generates (or normalizes, when custom is non-empty) a room
// code, persists it as the active binding and starts the session.
func (c *Controller) CreateRoom(custom string) (string, error) {
	code, err := c.rooms.Create(custom)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.bindLocked(code)
	c.mu.Unlock()
	return code, nil
}

// JoinRoom binds an existing room by code or shareable join link.
func (c *Controller) JoinRoom(raw string) (string, error) {
	code, err := c.rooms.Join(raw)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.bindLocked(code)
	c.mu.Unlock()
	return code, nil
}

// Leave clears the binding, cancels the pending debounce timer and the
// remote subscription. Sync activity stops until a new room is bound.
func (c *Controller) Leave() error {
	c.mu.Lock()
	c.unbindLocked()
	c.mu.Unlock()
	return c.rooms.Leave()
}

// OnLocalChange tells the controller the replica was mutated. It starts (or
// restarts) the debounce window; when the window elapses without further
// mutations, one upload attempt runs.
func (c *Controller) OnLocalChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnbound {
		return
	}
	c.scheduleLocked()
}

// scheduleLocked starts or restarts the debounce window.
func (c *Controller) scheduleLocked() {
	c.state = StateBoundPending
	if c.timer != nil {
		c.timer.Stop()
	}
	gen := c.generation
	c.timer = time.AfterFunc(c.cfg.Debounce, func() { c.flush(gen) })
}

// FlushNow runs a pending upload immediately instead of waiting out the
// debounce window. Meant for process shutdown, where the window would
// otherwise never elapse.
func (c *Controller) FlushNow() {
	c.mu.Lock()
	gen := c.generation
	pending := c.state == StateBoundPending
	if pending && c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()
	if pending {
		c.flush(gen)
	}
}

// Status returns the current passive session state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:     c.state,
		Room:      c.roomCode,
		LastSync:  c.lastSync,
		Connected: c.connected,
	}
}

// Close unbinds and waits for the subscription goroutine to exit. The room
// binding in durable state is left alone so the next run can resume it.
func (c *Controller) Close() {
	c.mu.Lock()
	c.unbindLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller) bindLocked(code string) {
	c.unbindLocked()
	c.generation++
	c.state = StateBoundIdle
	c.roomCode = code

	gen := c.generation
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelSub = cancel
	c.wg.Add(1)
	go c.subscribeLoop(ctx, code, gen)

	c.log.Info("room bound", slog.String("room", code))
}

// unbindLocked bumps the generation so a timer or notification scheduled
// under the old binding lands as a guaranteed no-op.
func (c *Controller) unbindLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancelSub != nil {
		c.cancelSub()
		c.cancelSub = nil
	}
	if c.state != StateUnbound {
		c.log.Info("room unbound", slog.String("room", c.roomCode))
	}
	c.generation++
	c.state = StateUnbound
	c.roomCode = ""
	c.connected = false
	c.lastUploaded = ""
}

// flush runs when the debounce timer fires: at most one upload per window.
func (c *Controller) flush(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state != StateBoundPending {
		return
	}
	c.state = StateBoundIdle

	snap, err := c.replica.Snapshot()
	if err != nil {
		c.log.Error("snapshot failed", slog.Any("error", err))
		return
	}
	fp := ComputeFingerprint(snap)
	if fp == c.lastUploaded {
		c.log.Debug("no content change, upload skipped")
		return
	}
	snap.UpdatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.PutTimeout)
	defer cancel()
	if err := c.remote.Put(ctx, c.roomCode, snap); err != nil {
		// No retry timer: the next local mutation retriggers the attempt.
		c.log.Warn("upload failed", slog.String("room", c.roomCode), slog.Any("error", err))
		return
	}
	c.lastUploaded = fp
	c.lastSync = time.Now()
	c.log.Debug("snapshot uploaded",
		slog.String("room", c.roomCode),
		slog.Int("days", len(snap.Days)),
		slog.Int("entries", len(snap.Entries)),
	)
}

// subscribeLoop keeps a live subscription on the room, resubscribing with
// capped exponential backoff after transport failures. Without it the
// replica would silently stop receiving updates.
func (c *Controller) subscribeLoop(ctx context.Context, code string, gen uint64) {
	defer c.wg.Done()
	backoff := time.Second

	for {
		sub, err := c.remote.Subscribe(ctx, code, func(snap diary.Snapshot) {
			c.handleRemote(gen, snap)
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.setConnected(gen, false)
			c.log.Warn("subscribe failed",
				slog.String("room", code),
				slog.Duration("retry_in", backoff),
				slog.Any("error", err),
			)
			if !sleep(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, c.cfg.MaxBackoff)
			continue
		}

		c.setConnected(gen, true)
		backoff = time.Second

		select {
		case <-ctx.Done():
			sub.Cancel()
			<-sub.Done()
			return
		case <-sub.Done():
			c.setConnected(gen, false)
			if err := sub.Err(); err != nil {
				c.log.Warn("subscription dropped",
					slog.String("room", code),
					slog.Duration("retry_in", backoff),
					slog.Any("error", err),
				)
			}
			if !sleep(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, c.cfg.MaxBackoff)
		}
	}
}

// handleRemote reconciles one remote notification under the shared critical
// section. Echoes are normal-path behavior, not failures.
func (c *Controller) handleRemote(gen uint64, remote diary.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state == StateUnbound {
		return
	}

	local, err := c.replica.Snapshot()
	if err != nil {
		c.log.Error("snapshot failed", slog.Any("error", err))
		return
	}

	outcome := ApplyRemote(local, remote, c.lastUploaded)
	if outcome.Echo {
		c.log.Debug("own upload echoed back, ignored", slog.String("room", c.roomCode))
		return
	}

	if outcome.Snapshot.Profile != nil {
		if err := c.replica.ReplaceProfile(outcome.Snapshot.Profile); err != nil {
			c.log.Error("profile replace failed", slog.Any("error", err))
			return
		}
	}
	if err := c.replica.ReplaceDays(outcome.Snapshot.Days); err != nil {
		c.log.Error("days replace failed", slog.Any("error", err))
		return
	}
	if err := c.replica.ReplaceEntries(outcome.Snapshot.Entries); err != nil {
		c.log.Error("entries replace failed", slog.Any("error", err))
		return
	}

	c.lastSync = time.Now()
	if outcome.Fingerprint == outcome.RemoteFingerprint {
		// The merge added nothing beyond the remote document. Recording its
		// fingerprint keeps the next debounce cycle from pushing back data
		// that just arrived.
		c.lastUploaded = outcome.Fingerprint
	} else {
		// The replica holds records the remote document lacks (e.g. both
		// devices edited within one debounce window). Push the union after
		// a fresh debounce so the other side converges too.
		c.lastUploaded = outcome.RemoteFingerprint
		c.scheduleLocked()
	}
	c.log.Info("remote snapshot merged",
		slog.String("room", c.roomCode),
		slog.Int("days", len(outcome.Snapshot.Days)),
		slog.Int("entries", len(outcome.Snapshot.Entries)),
	)
}

func (c *Controller) setConnected(gen uint64, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation {
		c.connected = v
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func nextBackoff(cur, max time.Duration) time.Duration {
	cur *= 2
	if cur > max {
		return max
	}
	return cur
}
