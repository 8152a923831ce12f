package engine

// NewInventory builds the session inventory from a pack definition.
// Pool order is preserved so the UI can render symbols in the order
// the pack author declared them.
func NewInventory(def InventoryDef) Inventory {
	inv := Inventory{
		CategoryColor:    append([]Symbol(nil), def.Colors...),
		CategoryAction:   append([]Symbol(nil), def.Actions...),
		CategoryAdvanced: append([]Symbol(nil), def.Advanced...),
	}
	return inv
}

// HasAvailable reports whether the category pool holds the symbol with
// a positive count. Unknown categories or ids are simply unavailable,
// not errors.
func (inv Inventory) HasAvailable(cat Category, id string) bool {
	for _, sym := range inv[cat] {
		if sym.ID == id {
			return sym.Count > 0
		}
	}
	return false
}

// Decrement reduces the matching symbol's count by one. Callers check
// availability first; a count already at zero stays at zero, and
// unknown category/id pairs are ignored. Counts never go negative.
func (inv Inventory) Decrement(cat Category, id string) {
	pool := inv[cat]
	for i := range pool {
		if pool[i].ID == id {
			if pool[i].Count > 0 {
				pool[i].Count--
			}
			return
		}
	}
}

// Count returns the remaining count for a symbol, zero for unknown ones
func (inv Inventory) Count(cat Category, id string) int {
	for _, sym := range inv[cat] {
		if sym.ID == id {
			return sym.Count
		}
	}
	return 0
}

// Snapshot returns a deep copy sharing no mutable structure with the
// original
func (inv Inventory) Snapshot() Inventory {
	out := make(Inventory, len(inv))
	for cat, pool := range inv {
		out[cat] = append([]Symbol(nil), pool...)
	}
	return out
}

// Equal reports whether two inventories hold the same pools in the
// same order with the same counts
func (inv Inventory) Equal(other Inventory) bool {
	if len(inv) != len(other) {
		return false
	}
	for cat, pool := range inv {
		otherPool, ok := other[cat]
		if !ok || len(pool) != len(otherPool) {
			return false
		}
		for i := range pool {
			if pool[i] != otherPool[i] {
				return false
			}
		}
	}
	return true
}
