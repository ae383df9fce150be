// Package history manages the calculator's record of past calculations and
// its undo/redo state.
//
// # Mementos
//
// A Memento is an immutable full copy of the calculation sequence at a point
// in time. Snapshots are whole-sequence copies rather than deltas; the
// configured history cap keeps each snapshot small, and restoring is a single
// swap.
//
// # Stacks
//
// The History type owns the live sequence plus an undo stack and a redo
// stack of mementos:
//
//	h := NewHistory(50)
//	h.Record(c)            // snapshots prior state, clears redo
//	removed, ok, _ := h.Undo()
//	restored, ok, _ := h.Redo()
//
// Recording anything new clears the redo stack: redo is only valid
// immediately after an undo with no intervening activity. Both the live
// sequence and the undo stack are bounded by the configured maximum; the
// oldest entry is dropped on overflow, and because the snapshot is taken
// before the eviction, the eviction itself is undoable.
package history
