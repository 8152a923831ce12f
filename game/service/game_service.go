package service

import (
	"context"
	"time"

	"github.com/goldforge/goldforge/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, packID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	ApplyRule(ctx context.Context, sessionID string, rule engine.Rule) (*ApplyResult, error)
	Undo(ctx context.Context, sessionID string) (*UndoResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.State, error)
	LoadLevel(ctx context.Context, sessionID string, levelIndex int) (*engine.State, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.State, error)
	GetRuleHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Packs
	ListPacks(ctx context.Context) ([]*PackInfo, error)
	LoadPack(ctx context.Context, packID string) (*engine.LevelPack, error)
	SavePack(ctx context.Context, packID string, pack *engine.LevelPack) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, pack *engine.LevelPack) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, pack *engine.LevelPack) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// PackManager handles level-pack loading
type PackManager interface {
	LoadPack(name string) (*engine.LevelPack, error)
	ListPacks() ([]*PackInfo, error)
	GetDefault() *engine.LevelPack
	SavePack(name string, pack *engine.LevelPack) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.Engine
	Pack           *engine.LevelPack
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
