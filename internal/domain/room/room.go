// Package room manages the short human-shareable codes that scope a
// synchronization session, and the durable binding of one of them as the
// active room.
package room

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Alphabet deliberately omits 0/O and 1/I so codes survive being read
	// aloud or copied from a QR scan.
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	MinLen       = 4
	MaxLen       = 20
	GeneratedLen = 8

	// QueryParam carries the room code in a shareable join link.
	QueryParam = "room"
)

// Generate returns a fresh random room code. Uniqueness is probabilistic
// only; no check against the remote store is made.
func Generate() string {
	buf := make([]byte, GeneratedLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken beyond repair.
		panic(fmt.Sprintf("room: rand.Read: %v", err))
	}
	code := make([]byte, GeneratedLen)
	for i, b := range buf {
		// len(Alphabet) is 32, which divides 256 evenly, so the modulo
		// introduces no bias.
		code[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(code)
}

// Normalize uppercases the input, strips everything that is not a letter or
// digit, and validates the length of what remains.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	code := b.String()
	if len(code) < MinLen {
		return "", fmt.Errorf("%w: %q is shorter than %d characters", ErrInvalidCode, code, MinLen)
	}
	if len(code) > MaxLen {
		return "", fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidCode, code, MaxLen)
	}
	return code, nil
}

// ParseJoinURL extracts and normalizes the room code from a shareable join
// link. Bare codes are accepted too, so user input can be passed straight in.
func ParseJoinURL(raw string) (string, error) {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidCode, err)
		}
		raw = u.Query().Get(QueryParam)
		if raw == "" {
			return "", fmt.Errorf("%w: link has no %q parameter", ErrInvalidCode, QueryParam)
		}
	}
	return Normalize(raw)
}

// JoinURL builds the shareable join link for a code.
func JoinURL(base, code string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set(QueryParam, code)
	u.RawQuery = q.Encode()
	return u.String()
}

// State is the durable session storage the active-room binding lives in.
// It must survive process restarts.
type State interface {
	// ActiveRoom returns the bound code, or "" when no room is bound.
	ActiveRoom() (string, error)
	SetActiveRoom(code string) error
	ClearActiveRoom() error
}

// Manager owns the active-room binding. Binding and unbinding persist
// immediately; no network activity happens here.
type Manager struct {
	state State
}

func NewManager(state State) *Manager {
	return &Manager{state: state}
}

// Create generates a code (or normalizes a user-chosen one when custom is
// non-empty), binds it as the active room and returns it.
func (m *Manager) Create(custom string) (string, error) {
	code := Generate()
	if custom != "" {
		var err error
		code, err = Normalize(custom)
		if err != nil {
			return "", err
		}
	}
	if err := m.state.SetActiveRoom(code); err != nil {
		return "", fmt.Errorf("persisting room binding: %w", err)
	}
	return code, nil
}

// Join normalizes a code (or join link) and binds it as the active room.
func (m *Manager) Join(raw string) (string, error) {
	code, err := ParseJoinURL(raw)
	if err != nil {
		return "", err
	}
	if err := m.state.SetActiveRoom(code); err != nil {
		return "", fmt.Errorf("persisting room binding: %w", err)
	}
	return code, nil
}

// Leave clears the active binding.
func (m *Manager) Leave() error {
	if err := m.state.ClearActiveRoom(); err != nil {
		return fmt.Errorf("clearing room binding: %w", err)
	}
	return nil
}

// Active reports the currently bound room, if any.
func (m *Manager) Active() (string, bool) {
	code, err := m.state.ActiveRoom()
	if err != nil || code == "" {
		return "", false
	}
	return code, true
}
