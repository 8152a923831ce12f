package main

import (
	"sort"

	"github.com/goldforge/goldforge/game/engine"
)

// GildStrategy picks rules with a merge-then-gild plan: recolor minority
// colors into the board's majority color using plain paints, then spend
// a single gold symbol to finish the whole group. Gold is the scarce
// resource, so merges always come first when the board is mixed.
type GildStrategy struct{}

func NewGildStrategy() *GildStrategy {
	return &GildStrategy{}
}

// colorCount pairs a color with how many pieces of it are on the board
type colorCount struct {
	id    string
	cells int
}

// NextRule returns the next rule to apply, or nil when no playable rule
// remains (level already complete, or the inventory cannot cover one).
func (s *GildStrategy) NextRule(state *engine.State) *engine.Rule {
	colors := boardColors(state.Board)
	if len(colors) == 0 {
		return nil
	}

	action := bestAction(state.Inventory)
	if action == "" {
		return nil
	}

	counts := symbolCounts(state.Inventory)

	// Mixed board: merge the rarest playable color into the most
	// common other playable color.
	if len(colors) > 1 {
		for i := len(colors) - 1; i > 0; i-- {
			source := colors[i]
			if counts[source.id] == 0 {
				continue
			}
			for j := 0; j < i; j++ {
				target := colors[j]
				if counts[target.id] > 0 {
					return buildRule(source.id, action, target.id, engine.CategoryColor)
				}
			}
		}
	}

	// Single color, or no merge possible: gild the biggest playable group.
	if counts[engine.GoldID] > 0 {
		for _, color := range colors {
			if counts[color.id] > 0 {
				return buildRule(color.id, action, engine.GoldID, engine.CategoryAdvanced)
			}
		}
	}

	return nil
}

func buildRule(source, action, target string, targetCat engine.Category) *engine.Rule {
	return &engine.Rule{
		Source: &engine.SlotRef{ID: source, Category: engine.CategoryColor},
		Action: &engine.SlotRef{ID: action, Category: engine.CategoryAction},
		Target: &engine.SlotRef{ID: target, Category: targetCat},
	}
}

// boardColors returns the non-gold colors on the board, most frequent
// first. Ties break alphabetically so runs are reproducible.
func boardColors(board engine.Board) []colorCount {
	tally := map[string]int{}
	for _, row := range board {
		for _, cell := range row {
			if cell == engine.EmptyCell || cell == engine.GoldID {
				continue
			}
			tally[cell]++
		}
	}

	colors := make([]colorCount, 0, len(tally))
	for id, cells := range tally {
		colors = append(colors, colorCount{id: id, cells: cells})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].cells != colors[j].cells {
			return colors[i].cells > colors[j].cells
		}
		return colors[i].id < colors[j].id
	})
	return colors
}

// bestAction picks the action symbol with the deepest remaining supply.
// Any direction works for recoloring, so supply depth is the only factor.
func bestAction(inv engine.Inventory) string {
	best := ""
	bestCount := 0
	for _, sym := range inv[engine.CategoryAction] {
		if sym.Count > bestCount {
			best = sym.ID
			bestCount = sym.Count
		}
	}
	return best
}

// symbolCounts flattens color and advanced pools into one id -> count map
func symbolCounts(inv engine.Inventory) map[string]int {
	counts := map[string]int{}
	for _, sym := range inv[engine.CategoryColor] {
		counts[sym.ID] = sym.Count
	}
	for _, sym := range inv[engine.CategoryAdvanced] {
		counts[sym.ID] = sym.Count
	}
	return counts
}
