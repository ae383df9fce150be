package history

import (
	"errors"
	"sync"

	"github.com/dshills/calcstorm/internal/calc"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// DefaultMaxEntries bounds the live sequence and the undo stack when no
// explicit limit is configured.
const DefaultMaxEntries = 50

// History owns the live sequence of calculations and the undo/redo stacks.
// The interactive session is single-actor, but the mutex keeps the
// snapshot-then-mutate sequences atomic for any future multi-caller use.
type History struct {
	mu sync.Mutex

	live      []calc.Calculation
	undoStack []*Memento
	redoStack []*Memento

	maxEntries int
}

// NewHistory creates a history manager bounded to maxEntries.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record appends a calculation to the live sequence.
// The prior state is snapshotted onto the undo stack first, the oldest live
// entry is evicted if the sequence would exceed the cap, and the redo stack
// is cleared. Record never fails: validation happened before the
// Calculation existed.
func (h *History) Record(c calc.Calculation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pushUndoLocked(capture(h.live))

	h.live = append(h.live, c)
	if len(h.live) > h.maxEntries {
		excess := len(h.live) - h.maxEntries
		h.live = append([]calc.Calculation(nil), h.live[excess:]...)
	}

	h.redoStack = nil
}

// Undo restores the most recent snapshot.
// It returns the calculation the undo removed (the last entry of the
// sequence being replaced) when one exists.
func (h *History) Undo() (calc.Calculation, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return calc.Calculation{}, false, ErrNothingToUndo
	}

	var removed calc.Calculation
	ok := len(h.live) > 0
	if ok {
		removed = h.live[len(h.live)-1]
	}

	h.redoStack = append(h.redoStack, capture(h.live))

	m := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.live = m.Records()

	return removed, ok, nil
}

// Redo reapplies the most recently undone snapshot.
// It returns the last calculation of the restored sequence when one exists.
func (h *History) Redo() (calc.Calculation, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return calc.Calculation{}, false, ErrNothingToRedo
	}

	h.pushUndoLocked(capture(h.live))

	m := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.live = m.Records()

	var restored calc.Calculation
	ok := len(h.live) > 0
	if ok {
		restored = h.live[len(h.live)-1]
	}
	return restored, ok, nil
}

// Clear empties the live sequence. The cleared state is snapshotted first so
// the clear itself is undoable; the redo stack is invalidated.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pushUndoLocked(capture(h.live))
	h.live = nil
	h.redoStack = nil
}

// Replace swaps in a whole sequence, e.g. one loaded from disk. Like any
// other state change it is undoable and clears the redo stack. Sequences
// longer than the cap keep their most recent entries.
func (h *History) Replace(records []calc.Calculation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pushUndoLocked(capture(h.live))

	if len(records) > h.maxEntries {
		records = records[len(records)-h.maxEntries:]
	}
	h.live = append([]calc.Calculation(nil), records...)
	h.redoStack = nil
}

// List returns the live sequence in chronological order, most recent last.
func (h *History) List() []calc.Calculation {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]calc.Calculation, len(h.live))
	copy(out, h.live)
	return out
}

// Last returns the most recent calculation.
func (h *History) Last() (calc.Calculation, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.live) == 0 {
		return calc.Calculation{}, false
	}
	return h.live[len(h.live)-1], true
}

// Len returns the number of live entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// CanUndo reports whether undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo snapshots available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo snapshots available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// SetMaxEntries changes the history cap. If the live sequence or the undo
// stack is larger, oldest entries are dropped.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.live) > max {
		excess := len(h.live) - max
		h.live = append([]calc.Calculation(nil), h.live[excess:]...)
	}
	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the configured history cap.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// pushUndoLocked appends a snapshot, evicting the oldest past the cap.
func (h *History) pushUndoLocked(m *Memento) {
	h.undoStack = append(h.undoStack, m)
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}
