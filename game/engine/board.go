package engine

// NewBoard creates an empty size x size board
func NewBoard(size int) Board {
	b := make(Board, size)
	for i := range b {
		b[i] = make([]string, size)
	}
	return b
}

// Clone returns a deep copy with independent storage
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for y, row := range b {
		c[y] = make([]string, len(row))
		copy(c[y], row)
	}
	return c
}

// Size returns the board edge length
func (b Board) Size() int {
	return len(b)
}

// ActionKind tags the movement effect of an action symbol
type ActionKind int

const (
	ActionUnhandled ActionKind = iota
	ActionPushUp
	ActionPushDown
	ActionPushLeft
	ActionPushRight
)

// ParseActionKind maps an action symbol id to its movement effect.
// Ids without a movement (advanced actions) map to ActionUnhandled:
// the transform still runs for them, movement does not.
func ParseActionKind(id string) ActionKind {
	switch id {
	case "push-up":
		return ActionPushUp
	case "push-down":
		return ActionPushDown
	case "push-left":
		return ActionPushLeft
	case "push-right":
		return ActionPushRight
	default:
		return ActionUnhandled
	}
}

// Delta returns the per-step cell offset for a movement action.
// ok is false for kinds with no movement effect.
func (k ActionKind) Delta() (dx, dy int, ok bool) {
	switch k {
	case ActionPushUp:
		return 0, -1, true
	case ActionPushDown:
		return 0, 1, true
	case ActionPushLeft:
		return -1, 0, true
	case ActionPushRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// Slide moves every cell holding color as far as possible toward the
// action's direction, through contiguous empty cells, stopping at the
// edge or the first occupied cell. Pieces move independently, never
// stack, and the result is a single deterministic pass.
//
// The scan starts with the piece nearest the destination edge, so a
// piece that vacates a cell lets the trailing same-color piece behind
// it advance into that cell within the same sweep.
//
// Returns the number of pieces that changed position.
func (b Board) Slide(kind ActionKind, color string) int {
	dx, dy, ok := kind.Delta()
	if !ok || color == EmptyCell {
		return 0
	}

	n := b.Size()
	moved := 0

	slideFrom := func(x, y int) {
		if b[y][x] != color {
			return
		}
		cx, cy := x, y
		for {
			nx, ny := cx+dx, cy+dy
			if nx < 0 || nx >= n || ny < 0 || ny >= n {
				break
			}
			if b[ny][nx] != EmptyCell {
				break
			}
			cx, cy = nx, ny
		}
		if cx != x || cy != y {
			b[cy][cx] = color
			b[y][x] = EmptyCell
			moved++
		}
	}

	switch kind {
	case ActionPushUp:
		for x := 0; x < n; x++ {
			for y := 1; y < n; y++ {
				slideFrom(x, y)
			}
		}
	case ActionPushDown:
		for x := 0; x < n; x++ {
			for y := n - 2; y >= 0; y-- {
				slideFrom(x, y)
			}
		}
	case ActionPushLeft:
		for y := 0; y < n; y++ {
			for x := 1; x < n; x++ {
				slideFrom(x, y)
			}
		}
	case ActionPushRight:
		for y := 0; y < n; y++ {
			for x := n - 2; x >= 0; x-- {
				slideFrom(x, y)
			}
		}
	}

	return moved
}

// Transform recolors every cell holding source to target. Gold is
// terminal: if source is gold the whole call is a no-op.
// Returns the number of cells changed.
func (b Board) Transform(source, target string) int {
	if source == GoldID || source == EmptyCell {
		return 0
	}

	changed := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x] == source {
				b[y][x] = target
				changed++
			}
		}
	}
	return changed
}

// IsComplete reports whether every non-empty cell holds gold.
// An all-empty board counts as complete.
func (b Board) IsComplete() bool {
	for _, row := range b {
		for _, cell := range row {
			if cell != EmptyCell && cell != GoldID {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells hold the given color
func (b Board) Count(color string) int {
	total := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == color {
				total++
			}
		}
	}
	return total
}

// Equal reports whether two boards have identical dimensions and cells
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for y := range b {
		if len(b[y]) != len(other[y]) {
			return false
		}
		for x := range b[y] {
			if b[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}
