package engine

import (
	"errors"
	"fmt"
)

// Rejection errors. All are recoverable: a rejected rule leaves board
// and inventory untouched.
var (
	ErrIncompleteRule        = errors.New("rule is missing one or more slots")
	ErrInsufficientResources = errors.New("not enough resources")
	ErrInvalidSlot           = errors.New("symbol category not allowed in slot")
)

// Rejection codes surfaced to transports
const (
	OutcomeApplied      = "applied"
	OutcomeIncomplete   = "incomplete_rule"
	OutcomeInsufficient = "insufficient_resources"
	OutcomeInvalidSlot  = "invalid_slot"
)

// Complete reports whether all three slots are populated
func (r Rule) Complete() bool {
	return r.Source != nil && r.Action != nil && r.Target != nil
}

// ValidateSlots enforces the slot category constraints:
//
//	source: color or advanced
//	action: action
//	target: color, or the advanced "gold" symbol
//
// Gold passes through the advanced category even though it behaves as a
// color; that exact carve-out is deliberate and must not be widened.
func (r Rule) ValidateSlots() error {
	if !r.Complete() {
		return ErrIncompleteRule
	}

	switch r.Source.Category {
	case CategoryColor, CategoryAdvanced:
	default:
		return fmt.Errorf("%w: source slot rejects category %q", ErrInvalidSlot, r.Source.Category)
	}

	if r.Action.Category != CategoryAction {
		return fmt.Errorf("%w: action slot rejects category %q", ErrInvalidSlot, r.Action.Category)
	}

	switch {
	case r.Target.Category == CategoryColor:
	case r.Target.Category == CategoryAdvanced && r.Target.ID == GoldID:
	default:
		return fmt.Errorf("%w: target slot rejects %s %q", ErrInvalidSlot, r.Target.Category, r.Target.ID)
	}

	return nil
}

// slots lists the populated slot refs in source, action, target order
func (r Rule) slots() []*SlotRef {
	return []*SlotRef{r.Source, r.Action, r.Target}
}

// CanApply reports whether the rule is complete, well-formed, and fully
// funded by the inventory. It never mutates anything.
func (r Rule) CanApply(inv Inventory) bool {
	if err := r.ValidateSlots(); err != nil {
		return false
	}
	for _, slot := range r.slots() {
		if !inv.HasAvailable(slot.Category, slot.ID) {
			return false
		}
	}
	return true
}

// String renders the rule for logs
func (r Rule) String() string {
	part := func(s *SlotRef) string {
		if s == nil {
			return "_"
		}
		return s.ID
	}
	return fmt.Sprintf("%s %s %s", part(r.Source), part(r.Action), part(r.Target))
}
