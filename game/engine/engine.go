package engine

import (
	"fmt"
	"time"
)

// Engine owns one level session: the current board, the pristine copy
// for reset, the inventory shared across levels, and the undo stack.
// It is not safe for concurrent use; callers serialize operations.
type Engine struct {
	state *State
	pack  *LevelPack
}

// NewEngine creates an engine for the given pack, loading level 0
func NewEngine(pack *LevelPack) (*Engine, error) {
	if err := ValidateLevelPack(pack); err != nil {
		return nil, err
	}

	e := &Engine{
		pack:  pack,
		state: InitStateFromPack(pack),
	}
	return e, nil
}

// NewEngineWithDefaults creates an engine running the built-in pack
func NewEngineWithDefaults() *Engine {
	pack := DefaultLevelPack()
	return &Engine{
		pack:  pack,
		state: InitStateFromPack(pack),
	}
}

// GetState returns the current session state
func (e *Engine) GetState() *State {
	return e.state
}

// SetState replaces the session state (used when loading persisted
// sessions)
func (e *Engine) SetState(state *State) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// GetPack returns the pack this session plays
func (e *Engine) GetPack() *LevelPack {
	return e.pack
}

// LevelCount returns the number of levels in the pack
func (e *Engine) LevelCount() int {
	return len(e.pack.Levels)
}

// ApplyRule runs the rule state machine:
//
//  1. completeness check
//  2. slot category check
//  3. resource availability check, all three slots
//  4. checkpoint push (board + inventory)
//  5. resource deduction, one per slot
//  6. slide (movement actions only) then transform, always in that order
//  7. completion check
//
// Rejections happen before any mutation, so a failed apply leaves board
// and inventory exactly as they were.
func (e *Engine) ApplyRule(rule Rule) (*ApplyReport, error) {
	st := e.state

	if !rule.Complete() {
		e.logAttempt(rule, OutcomeIncomplete, 0, 0)
		st.Message = e.pack.Messages.Incomplete
		return nil, ErrIncompleteRule
	}

	if err := rule.ValidateSlots(); err != nil {
		e.logAttempt(rule, OutcomeInvalidSlot, 0, 0)
		st.Message = e.pack.Messages.InvalidSlot
		return nil, err
	}

	for _, slot := range rule.slots() {
		if !st.Inventory.HasAvailable(slot.Category, slot.ID) {
			e.logAttempt(rule, OutcomeInsufficient, 0, 0)
			st.Message = e.pack.Messages.Insufficient
			return nil, fmt.Errorf("%w: %s %q", ErrInsufficientResources, slot.Category, slot.ID)
		}
	}

	// All preconditions passed; checkpoint before the first mutation.
	st.History = append(st.History, Checkpoint{
		Board:     st.Board.Clone(),
		Inventory: st.Inventory.Snapshot(),
	})

	// Each slot consumes independently, so a symbol filling two slots
	// pays twice.
	for _, slot := range rule.slots() {
		st.Inventory.Decrement(slot.Category, slot.ID)
	}

	kind := ParseActionKind(rule.Action.ID)
	moved := st.Board.Slide(kind, rule.Source.ID)

	// Transform runs for every action kind; movement is additive.
	changed := st.Board.Transform(rule.Source.ID, rule.Target.ID)

	e.logAttempt(rule, OutcomeApplied, moved, changed)
	st.Message = e.pack.Messages.RuleApplied

	report := &ApplyReport{
		Moved:     moved,
		Changed:   changed,
		NextLevel: st.LevelIndex,
	}

	if st.Board.IsComplete() {
		st.Complete = true
		report.LevelComplete = true
		if st.LevelIndex+1 < len(e.pack.Levels) {
			report.NextLevel = st.LevelIndex + 1
			st.Message = e.pack.Messages.LevelComplete
		} else {
			report.NextLevel = 0
			report.Wrapped = true
			st.Message = e.pack.Messages.PackComplete
		}
	}

	return report, nil
}

// Undo pops the most recent checkpoint and restores board and
// inventory from it. With no history it is a silent no-op.
func (e *Engine) Undo() bool {
	st := e.state
	if len(st.History) == 0 {
		return false
	}

	last := st.History[len(st.History)-1]
	st.History = st.History[:len(st.History)-1]
	st.Board = last.Board
	st.Inventory = last.Inventory
	st.Complete = st.Board.IsComplete()
	st.Message = e.pack.Messages.Undo
	return true
}

// Reset restores the board from the level's original template and
// clears history. The inventory is deliberately untouched: spent
// symbols stay spent, unlike undo which refunds them.
func (e *Engine) Reset() *State {
	st := e.state
	st.Board = st.OriginalBoard.Clone()
	st.History = nil
	st.Complete = false
	st.Message = e.pack.Messages.Reset
	return st
}

// LoadLevel replaces the board with a fresh copy of the indexed level
// template, snapshots it as the reset target, and clears history.
// The inventory carries over.
func (e *Engine) LoadLevel(idx int) error {
	if idx < 0 || idx >= len(e.pack.Levels) {
		return fmt.Errorf("level index %d out of range [0,%d)", idx, len(e.pack.Levels))
	}

	level := e.pack.Levels[idx]
	board, err := BoardFromLayout(level.Layout, e.pack.Legend)
	if err != nil {
		return fmt.Errorf("level %d: %w", idx, err)
	}

	st := e.state
	st.LevelIndex = idx
	st.LevelName = level.Name
	st.Board = board
	st.OriginalBoard = board.Clone()
	st.History = nil
	st.Complete = false
	st.Message = e.pack.Messages.Welcome
	return nil
}

// AdvanceLevel loads the next level, wrapping to the first when the
// pack is exhausted. Returns the loaded index.
func (e *Engine) AdvanceLevel() (int, error) {
	next := e.state.LevelIndex + 1
	if next >= len(e.pack.Levels) {
		next = 0
	}
	if err := e.LoadLevel(next); err != nil {
		return 0, err
	}
	return next, nil
}

// IsComplete reports whether the current board is fully golden
func (e *Engine) IsComplete() bool {
	return e.state.Board.IsComplete()
}

// HistoryDepth returns how many undo checkpoints are stacked
func (e *Engine) HistoryDepth() int {
	return len(e.state.History)
}

// GetRuleLog returns the cumulative apply log
func (e *Engine) GetRuleLog() []RuleLogEntry {
	return e.state.RuleLog
}

// GetLastEntry returns the most recent log entry, nil when empty
func (e *Engine) GetLastEntry() *RuleLogEntry {
	if len(e.state.RuleLog) == 0 {
		return nil
	}
	return &e.state.RuleLog[len(e.state.RuleLog)-1]
}

func (e *Engine) logAttempt(rule Rule, outcome string, moved, changed int) {
	st := e.state
	st.TotalAttempts++
	entry := RuleLogEntry{
		Outcome:    outcome,
		Moved:      moved,
		Changed:    changed,
		LevelIndex: st.LevelIndex,
		Timestamp:  time.Now().Unix(),
		Success:    outcome == OutcomeApplied,
		Seq:        st.TotalAttempts,
	}
	if rule.Source != nil {
		entry.Source = rule.Source.ID
	}
	if rule.Action != nil {
		entry.Action = rule.Action.ID
	}
	if rule.Target != nil {
		entry.Target = rule.Target.ID
	}
	st.RuleLog = append(st.RuleLog, entry)
}
