package session

import (
	"time"

	"github.com/goldforge/goldforge/game/engine"
	"github.com/goldforge/goldforge/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON shape of a stored session. The pack
// is stored by ID and re-resolved on load, so pack file edits apply to
// restored sessions.
type PersistedSessionData struct {
	ID             string        `json:"id"`
	PackID         string        `json:"pack_id"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	GameState      *engine.State `json:"game_state"`
}
