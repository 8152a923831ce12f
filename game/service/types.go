package service

import (
	"time"

	"github.com/goldforge/goldforge/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	PackID         string            `json:"pack_id"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.State     `json:"game_state"`
	Pack           *engine.LevelPack `json:"pack,omitempty"`
}

// ApplyResult contains the result of a rule application.
// A rejected rule is still a successful API call: Success is false and
// Outcome names the rejection, with board and inventory untouched.
type ApplyResult struct {
	Success   bool   `json:"success"`
	Outcome   string `json:"outcome"` // applied|incomplete_rule|insufficient_resources|invalid_slot
	Moved     int    `json:"moved,omitempty"`
	Changed   int    `json:"changed,omitempty"`
	Message   string `json:"message"`
	GameState *engine.State `json:"game_state"`

	// Level progression, populated when the rule completed the level.
	LevelComplete  bool         `json:"level_complete"`
	CompletedBoard engine.Board `json:"completed_board,omitempty"`
	NextLevel      int          `json:"next_level,omitempty"`
	Wrapped        bool         `json:"wrapped,omitempty"`
	Advanced       bool         `json:"advanced,omitempty"` // session already moved to next_level
}

// UndoResult reports whether a checkpoint was consumed
type UndoResult struct {
	Undone    bool          `json:"undone"`
	Depth     int           `json:"depth"` // checkpoints remaining
	GameState *engine.State `json:"game_state"`
	Message   string        `json:"message"`
}

// HistoryOptions configures rule-log retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains a paginated slice of the rule log
type HistoryResponse struct {
	Entries     []engine.RuleLogEntry `json:"entries"`
	Total       int                   `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
	HasNext     bool                  `json:"has_next"`
	HasPrevious bool                  `json:"has_previous"`
}

// PackInfo provides information about an available level pack
type PackInfo struct {
	Filename    string `json:"filename"`
	PackID      string `json:"pack_id"` // identifier used for session creation
	Name        string `json:"name"`    // display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	LevelCount  int    `json:"level_count"`
}
