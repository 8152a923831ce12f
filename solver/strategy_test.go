package main

import (
	"testing"

	"github.com/goldforge/goldforge/game/engine"
)

func solverState(board engine.Board, counts map[string]int) *engine.State {
	return &engine.State{
		Board: board,
		Inventory: engine.Inventory{
			engine.CategoryColor: {
				{ID: "red", Label: "Red", Count: counts["red"]},
				{ID: "blue", Label: "Blue", Count: counts["blue"]},
			},
			engine.CategoryAction: {
				{ID: "push-up", Label: "Push Up", Count: counts["push-up"]},
				{ID: "push-down", Label: "Push Down", Count: counts["push-down"]},
			},
			engine.CategoryAdvanced: {
				{ID: "gold", Label: "Gold", Count: counts["gold"]},
			},
		},
	}
}

func TestNextRule_MergesMinorityIntoMajority(t *testing.T) {
	state := solverState(engine.Board{
		{"red", "red", "", ""},
		{"", "blue", "", ""},
		{"", "", "red", ""},
		{"", "", "", ""},
	}, map[string]int{"red": 5, "blue": 5, "push-up": 3, "gold": 2})

	rule := NewGildStrategy().NextRule(state)
	if rule == nil {
		t.Fatal("Expected a rule, got nil")
	}

	if rule.Source.ID != "blue" || rule.Target.ID != "red" {
		t.Errorf("Expected merge blue -> red, got %s -> %s", rule.Source.ID, rule.Target.ID)
	}
	if rule.Target.Category != engine.CategoryColor {
		t.Errorf("Merge target should be a plain color, got %s", rule.Target.Category)
	}
}

func TestNextRule_GildsSingleColor(t *testing.T) {
	state := solverState(engine.Board{
		{"red", "", "", ""},
		{"", "red", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
	}, map[string]int{"red": 2, "blue": 5, "push-up": 3, "gold": 1})

	rule := NewGildStrategy().NextRule(state)
	if rule == nil {
		t.Fatal("Expected a rule, got nil")
	}

	if rule.Source.ID != "red" || rule.Target.ID != engine.GoldID {
		t.Errorf("Expected gild red -> gold, got %s -> %s", rule.Source.ID, rule.Target.ID)
	}
	if rule.Target.Category != engine.CategoryAdvanced {
		t.Errorf("Gold target should be advanced, got %s", rule.Target.Category)
	}
}

func TestNextRule_CompleteBoardReturnsNil(t *testing.T) {
	state := solverState(engine.Board{
		{"gold", "", "", ""},
		{"", "", "", ""},
		{"", "", "gold", ""},
		{"", "", "", ""},
	}, map[string]int{"red": 5, "blue": 5, "push-up": 3, "gold": 2})

	if rule := NewGildStrategy().NextRule(state); rule != nil {
		t.Errorf("Expected nil on an all-gold board, got %v", rule)
	}
}

func TestNextRule_NoActionsReturnsNil(t *testing.T) {
	state := solverState(engine.Board{
		{"red", "", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
	}, map[string]int{"red": 5, "blue": 5, "gold": 2})

	if rule := NewGildStrategy().NextRule(state); rule != nil {
		t.Errorf("Expected nil with no action symbols, got %v", rule)
	}
}

func TestNextRule_NoGoldForFinalColorReturnsNil(t *testing.T) {
	state := solverState(engine.Board{
		{"red", "", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
	}, map[string]int{"red": 5, "blue": 5, "push-up": 3})

	if rule := NewGildStrategy().NextRule(state); rule != nil {
		t.Errorf("Expected nil when gold is exhausted, got %v", rule)
	}
}

func TestNextRule_SkipsUnplayableMergeSource(t *testing.T) {
	// Blue is the minority but has no symbols left, so red merges into
	// nothing - the strategy gilds red directly instead.
	state := solverState(engine.Board{
		{"red", "red", "", ""},
		{"", "blue", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
	}, map[string]int{"red": 5, "push-up": 3, "gold": 2})

	rule := NewGildStrategy().NextRule(state)
	if rule == nil {
		t.Fatal("Expected a rule, got nil")
	}

	if rule.Source.ID != "red" || rule.Target.ID != engine.GoldID {
		t.Errorf("Expected gild red -> gold, got %s -> %s", rule.Source.ID, rule.Target.ID)
	}
}

func TestNextRule_PrefersDeepestActionPool(t *testing.T) {
	state := solverState(engine.Board{
		{"red", "", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
	}, map[string]int{"red": 5, "push-up": 1, "push-down": 4, "gold": 2})

	rule := NewGildStrategy().NextRule(state)
	if rule == nil {
		t.Fatal("Expected a rule, got nil")
	}

	if rule.Action.ID != "push-down" {
		t.Errorf("Expected push-down (deepest pool), got %s", rule.Action.ID)
	}
}

func TestBoardColors_Ordering(t *testing.T) {
	colors := boardColors(engine.Board{
		{"red", "blue", "blue", ""},
		{"", "yellow", "blue", ""},
		{"red", "", "gold", ""},
		{"", "", "", ""},
	})

	want := []string{"blue", "red", "yellow"}
	if len(colors) != len(want) {
		t.Fatalf("Expected %d colors, got %d", len(want), len(colors))
	}
	for i, id := range want {
		if colors[i].id != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, colors[i].id)
		}
	}
}
