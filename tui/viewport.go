// ABOUTME: Viewport manager for cursor-to-middle scrolling
// ABOUTME: Implements vim/less style viewport scrolling behavior

package tui

// ViewportManager handles cursor visibility and viewport scrolling
// Implements vim/less style scrolling: cursor moves to middle, then content scrolls
type ViewportManager struct {
	height     int // Viewport height in lines
	cursorPos  int // Current cursor position
	totalItems int // Total number of items
}

// NewViewportManager creates a new viewport manager
func NewViewportManager(height, cursorPos, totalItems int) *ViewportManager {
	return &ViewportManager{
		height:     height,
		cursorPos:  cursorPos,
		totalItems: totalItems,
	}
}

// CalculateOffset computes the viewport Y offset to keep cursor visible
//
// Scrolling behavior:
// - Phase 1 (top): Cursor moves freely, viewport stays at 0
// - Phase 2 (middle): Cursor stays at middle, content scrolls
// - Phase 3 (bottom): Viewport shows end, cursor moves to bottom
func (vm *ViewportManager) CalculateOffset() int {
	switch vm.Phase() {
	case TopPhase:
		return 0
	case MiddlePhase:
		return vm.cursorPos - vm.height/2
	default:
		return max(vm.totalItems-vm.height, 0)
	}
}

// ScrollPhase returns which scrolling phase the cursor is currently in
type ScrollPhase int

// Scroll phases define viewport scrolling behavior: top (cursor moves), middle (content scrolls), bottom (cursor moves).
const (
	TopPhase    ScrollPhase = iota // Cursor moves, viewport at top
	MiddlePhase                    // Cursor at middle, content scrolls
	BottomPhase                    // Viewport at bottom, cursor moves
)

// Phase returns the current scrolling phase
func (vm *ViewportManager) Phase() ScrollPhase {
	if vm.totalItems == 0 || vm.height < 1 {
		return TopPhase
	}

	middle := vm.height / 2
	if vm.cursorPos < middle {
		return TopPhase
	}

	if vm.cursorPos < vm.totalItems-vm.height+middle {
		return MiddlePhase
	}

	return BottomPhase
}

// clampCursor keeps pos inside [0, total)
func clampCursor(pos, total int) int {
	if total == 0 || pos < 0 {
		return 0
	}

	if pos >= total {
		return total - 1
	}

	return pos
}
