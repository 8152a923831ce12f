package engine

// Category classifies the symbols a rule can consume
type Category string

const (
	CategoryColor    Category = "color"
	CategoryAction   Category = "action"
	CategoryAdvanced Category = "advanced"

	// GoldID is the terminal color. Cells that reach gold never change again.
	GoldID = "gold"

	// EmptyCell marks a board cell with no piece on it.
	EmptyCell = ""

	// Validation constants
	DefaultGridSize     = 4
	MinGridSize         = 2
	MaxGridSize         = 12
	WebSocketBufferSize = 256
)

// Symbol is a countable game token the player spends when applying rules
type Symbol struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hex   string `json:"hex,omitempty"` // display color, color/advanced categories only
	Count int    `json:"count"`
}

// SlotRef identifies the symbol dropped into one slot of a rule
type SlotRef struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
}

// Rule is a (source, action, target) triple describing one board transformation.
// A nil slot means the player has not filled it yet.
type Rule struct {
	Source *SlotRef `json:"source"`
	Action *SlotRef `json:"action"`
	Target *SlotRef `json:"target"`
}

// Board is a square grid of cells, each empty or holding a color id
type Board [][]string

// Inventory maps each category to its ordered symbol pool
type Inventory map[Category][]Symbol

// Checkpoint is a full snapshot taken before a rule mutates the board,
// consumed by undo
type Checkpoint struct {
	Board     Board     `json:"board"`
	Inventory Inventory `json:"inventory"`
}

// RuleLogEntry records one apply attempt. The log is cumulative: undo
// restores board and inventory but never rewrites the log.
type RuleLogEntry struct {
	Source     string `json:"source"`
	Action     string `json:"action"`
	Target     string `json:"target"`
	Outcome    string `json:"outcome"` // "applied" or a rejection code
	Moved      int    `json:"moved"`
	Changed    int    `json:"changed"`
	LevelIndex int    `json:"level_index"`
	Timestamp  int64  `json:"timestamp"`
	Success    bool   `json:"success"`
	Seq        int    `json:"seq"`
}

// Level is one board template inside a pack
type Level struct {
	Name   string   `json:"name"`
	Layout []string `json:"layout"` // one string per row, legend characters
}

// InventoryDef declares the starting symbol pools of a pack
type InventoryDef struct {
	Colors   []Symbol `json:"colors"`
	Actions  []Symbol `json:"actions"`
	Advanced []Symbol `json:"advanced"`
}

// PackMessages holds the user-facing strings of a pack
type PackMessages struct {
	Welcome       string `json:"welcome"`
	RuleApplied   string `json:"rule_applied"`
	LevelComplete string `json:"level_complete"`
	PackComplete  string `json:"pack_complete"`
	Insufficient  string `json:"insufficient"`
	Incomplete    string `json:"incomplete"`
	InvalidSlot   string `json:"invalid_slot"`
	Undo          string `json:"undo"`
	Reset         string `json:"reset"`
}

// LevelPack is the game definition loaded from JSON
type LevelPack struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GridSize    int               `json:"grid_size"`
	Legend      map[string]string `json:"legend"` // layout char -> color id ("" for empty)
	Levels      []Level           `json:"levels"`
	Inventory   InventoryDef      `json:"inventory"`
	Messages    PackMessages      `json:"messages"`
}

// State is the complete session state: current board, the pristine copy
// used by reset, the shared inventory, the undo stack, and the rule log.
type State struct {
	PackName      string         `json:"pack_name"`
	LevelIndex    int            `json:"level_index"`
	LevelName     string         `json:"level_name"`
	Board         Board          `json:"board"`
	OriginalBoard Board          `json:"original_board"`
	Inventory     Inventory      `json:"inventory"`
	History       []Checkpoint   `json:"history"`
	RuleLog       []RuleLogEntry `json:"rule_log"`
	TotalAttempts int            `json:"total_attempts"`
	Complete      bool           `json:"complete"`
	Message       string         `json:"message"`
}

// ApplyReport summarizes a successful rule application
type ApplyReport struct {
	Moved         int  `json:"moved"`   // pieces relocated by the slide
	Changed       int  `json:"changed"` // cells recolored by the transform
	LevelComplete bool `json:"level_complete"`
	NextLevel     int  `json:"next_level"`
	Wrapped       bool `json:"wrapped,omitempty"` // next level wraps to the first
}
