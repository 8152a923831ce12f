// Package engine provides the core game logic for Goldforge.
//
// The engine package implements the rule-application mechanics:
//   - A square board of colored pieces with directional sliding
//   - Bulk color transformation with gold as the terminal color
//   - A finite symbol inventory spent by applied rules
//   - Checkpointed undo history and level progression
//   - Level-pack loading and validation
//
// Core Types:
//
// Engine owns one level session and exposes ApplyRule, Undo, Reset,
// LoadLevel and AdvanceLevel. State is the complete serializable
// session state. LevelPack defines levels, inventory and messages
// loaded from JSON files.
//
// Usage:
//
//	pack, err := engine.LoadLevelPack("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(pack)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := eng.ApplyRule(engine.Rule{
//		Source: &engine.SlotRef{ID: "red", Category: engine.CategoryColor},
//		Action: &engine.SlotRef{ID: "push-up", Category: engine.CategoryAction},
//		Target: &engine.SlotRef{ID: "gold", Category: engine.CategoryAdvanced},
//	})
//
// Game Rules:
//
// A rule is a (source, action, target) triple. Applying it slides all
// source-colored pieces in the action's direction, then recolors them
// to the target. Each slot consumes one symbol from the inventory. A
// level is complete when every remaining piece is gold; gold itself can
// never be recolored. Undo restores both board and inventory to their
// pre-rule snapshot, while reset restores only the board — spent
// symbols stay spent.
package engine
