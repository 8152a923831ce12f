package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// ValidateLevelPack checks a pack for structural correctness and
// playability before any session is built on it.
func ValidateLevelPack(pack *LevelPack) error {
	if pack.Name == "" {
		return fmt.Errorf("pack validation: name is required")
	}

	if pack.GridSize < MinGridSize || pack.GridSize > MaxGridSize {
		return fmt.Errorf("pack validation: grid_size must be between %d and %d, got %d",
			MinGridSize, MaxGridSize, pack.GridSize)
	}

	if len(pack.Levels) == 0 {
		return fmt.Errorf("pack validation: at least one level is required")
	}

	if len(pack.Legend) == 0 {
		return fmt.Errorf("pack validation: legend is required")
	}

	// Every color id placeable on a board must exist in the inventory
	// symbol set, so boards never reference unknown colors at runtime.
	known := map[string]bool{EmptyCell: true}
	if err := validateInventoryDef(pack.Inventory, known); err != nil {
		return err
	}

	for char, colorID := range pack.Legend {
		if len(char) != 1 {
			return fmt.Errorf("pack validation: legend key %q must be a single character", char)
		}
		if !known[colorID] {
			return fmt.Errorf("pack validation: legend %q maps to unknown color %q", char, colorID)
		}
	}

	for i, level := range pack.Levels {
		if len(level.Layout) != pack.GridSize {
			return fmt.Errorf("pack validation: level %d must have %d rows to match grid_size, got %d",
				i, pack.GridSize, len(level.Layout))
		}
		for r, row := range level.Layout {
			if len(row) != pack.GridSize {
				return fmt.Errorf("pack validation: level %d row %d must have %d characters, got %d",
					i, r, pack.GridSize, len(row))
			}
			for c := range row {
				if _, ok := pack.Legend[string(row[c])]; !ok {
					return fmt.Errorf("pack validation: level %d has unmapped character %q at row %d, col %d",
						i, row[c], r, c)
				}
			}
		}
	}

	if pack.Messages.Welcome == "" {
		return fmt.Errorf("pack validation: messages.welcome is required")
	}
	if pack.Messages.Insufficient == "" {
		return fmt.Errorf("pack validation: messages.insufficient is required")
	}
	if pack.Messages.LevelComplete == "" {
		return fmt.Errorf("pack validation: messages.level_complete is required")
	}

	return nil
}

// validateInventoryDef checks symbol pools and records color-like ids
// into known
func validateInventoryDef(def InventoryDef, known map[string]bool) error {
	if len(def.Actions) == 0 {
		return fmt.Errorf("pack validation: inventory must define at least one action symbol")
	}

	hasGold := false
	pools := []struct {
		name    string
		symbols []Symbol
		colors  bool
	}{
		{"colors", def.Colors, true},
		{"actions", def.Actions, false},
		{"advanced", def.Advanced, true},
	}

	for _, pool := range pools {
		seen := map[string]bool{}
		for _, sym := range pool.symbols {
			if sym.ID == "" {
				return fmt.Errorf("pack validation: inventory.%s contains a symbol without an id", pool.name)
			}
			if seen[sym.ID] {
				return fmt.Errorf("pack validation: inventory.%s has duplicate id %q", pool.name, sym.ID)
			}
			seen[sym.ID] = true
			if sym.Count < 0 {
				return fmt.Errorf("pack validation: inventory.%s %q has negative count %d", pool.name, sym.ID, sym.Count)
			}
			if pool.colors {
				known[sym.ID] = true
			}
			if pool.name == "advanced" && sym.ID == GoldID {
				hasGold = true
			}
		}
	}

	if !hasGold {
		return fmt.Errorf("pack validation: inventory.advanced must include the %q symbol", GoldID)
	}

	return nil
}

// BoardFromLayout builds a board from legend-encoded layout rows
func BoardFromLayout(layout []string, legend map[string]string) (Board, error) {
	board := make(Board, len(layout))
	for y, row := range layout {
		board[y] = make([]string, len(row))
		for x := range row {
			colorID, ok := legend[string(row[x])]
			if !ok {
				return nil, fmt.Errorf("unmapped layout character %q at row %d, col %d", row[x], y, x)
			}
			board[y][x] = colorID
		}
	}
	return board, nil
}

// InitStateFromPack creates a fresh session state on level 0 of the
// pack. The caller validates the pack first; a broken layout here
// yields an empty board rather than a panic.
func InitStateFromPack(pack *LevelPack) *State {
	board, err := BoardFromLayout(pack.Levels[0].Layout, pack.Legend)
	if err != nil {
		board = NewBoard(pack.GridSize)
	}

	return &State{
		PackName:      pack.Name,
		LevelIndex:    0,
		LevelName:     pack.Levels[0].Name,
		Board:         board,
		OriginalBoard: board.Clone(),
		Inventory:     NewInventory(pack.Inventory),
		History:       nil,
		RuleLog:       []RuleLogEntry{},
		TotalAttempts: 0,
		Complete:      false,
		Message:       pack.Messages.Welcome,
	}
}

// LoadLevelPack reads and validates a pack from a JSON file
func LoadLevelPack(filename string) (*LevelPack, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var pack LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, err
	}

	if err := ValidateLevelPack(&pack); err != nil {
		return nil, err
	}

	return &pack, nil
}

// DefaultLevelPack returns the built-in pack used when no pack
// directory is available.
func DefaultLevelPack() *LevelPack {
	pack := &LevelPack{
		Name:        "classic",
		Description: "Built-in starter pack",
		GridSize:    DefaultGridSize,
		Legend: map[string]string{
			".": EmptyCell,
			"r": "red",
			"b": "blue",
			"y": "yellow",
			"g": GoldID,
		},
		Levels: []Level{
			{Name: "First Steps", Layout: []string{
				"....",
				".r..",
				"....",
				"..r.",
			}},
			{Name: "Two Colors", Layout: []string{
				".b..",
				"r...",
				"...r",
				"..b.",
			}},
			{Name: "Crowded House", Layout: []string{
				"rb..",
				".yr.",
				"b..y",
				".r..",
			}},
		},
		Inventory: InventoryDef{
			Colors: []Symbol{
				{ID: "red", Label: "Red", Hex: "#e74c3c", Count: 8},
				{ID: "blue", Label: "Blue", Hex: "#3498db", Count: 8},
				{ID: "yellow", Label: "Yellow", Hex: "#f4d03f", Count: 8},
			},
			Actions: []Symbol{
				{ID: "push-up", Label: "Push Up", Count: 6},
				{ID: "push-down", Label: "Push Down", Count: 6},
				{ID: "push-left", Label: "Push Left", Count: 6},
				{ID: "push-right", Label: "Push Right", Count: 6},
			},
			Advanced: []Symbol{
				{ID: GoldID, Label: "Gold", Hex: "#f1c40f", Count: 12},
			},
		},
	}
	pack.Messages.Welcome = "Forge your rules. Turn every piece to gold!"
	pack.Messages.RuleApplied = "Rule applied"
	pack.Messages.LevelComplete = "Level complete! All pieces are gold."
	pack.Messages.PackComplete = "Pack complete! Wrapping back to the first level."
	pack.Messages.Insufficient = "Not enough resources"
	pack.Messages.Incomplete = "Fill all three rule slots first"
	pack.Messages.InvalidSlot = "That symbol doesn't fit in that slot"
	pack.Messages.Undo = "Last rule undone"
	pack.Messages.Reset = "Level reset"
	return pack
}
