package history

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dshills/calcstorm/internal/calc"
)

// numbered builds a deterministic, distinguishable calculation so that
// equal indexes compare equal across calls.
func numbered(n int) calc.Calculation {
	d := decimal.NewFromInt(int64(n))
	ts := time.Date(2024, 1, 1, 0, 0, 0, n, time.UTC)
	return calc.Restore("add", d, d, d.Add(d), ts)
}

func fill(h *History, n int) []calc.Calculation {
	recs := make([]calc.Calculation, 0, n)
	for i := 1; i <= n; i++ {
		c := numbered(i)
		h.Record(c)
		recs = append(recs, c)
	}
	return recs
}

func sameSequence(a, b []calc.Calculation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func TestRecordAndList(t *testing.T) {
	h := NewHistory(10)
	recs := fill(h, 3)

	got := h.List()
	if !sameSequence(got, recs) {
		t.Errorf("List() = %v, want %v", got, recs)
	}

	// Inspection is idempotent.
	if !sameSequence(h.List(), got) {
		t.Error("two List() calls without intervening activity should be equal")
	}
}

func TestUndoRedoAreInverses(t *testing.T) {
	h := NewHistory(10)
	recs := fill(h, 4)

	removed, ok, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !ok || !removed.Equal(recs[3]) {
		t.Errorf("Undo removed %v, want %v", removed, recs[3])
	}
	if !sameSequence(h.List(), recs[:3]) {
		t.Errorf("after undo List() = %v, want first three records", h.List())
	}

	restored, ok, err := h.Redo()
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !ok || !restored.Equal(recs[3]) {
		t.Errorf("Redo restored %v, want %v", restored, recs[3])
	}
	if !sameSequence(h.List(), recs) {
		t.Errorf("after redo List() = %v, want original sequence", h.List())
	}
}

func TestUndoEmptyStack(t *testing.T) {
	h := NewHistory(10)

	_, _, err := h.Undo()
	if !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty stack error = %v, want ErrNothingToUndo", err)
	}
	if h.Len() != 0 {
		t.Error("failed undo must leave history unchanged")
	}
}

func TestUndoPastBottom(t *testing.T) {
	h := NewHistory(10)
	fill(h, 2)

	for i := 0; i < 2; i++ {
		if _, _, err := h.Undo(); err != nil {
			t.Fatalf("Undo %d: %v", i+1, err)
		}
	}

	before := h.List()
	_, _, err := h.Undo()
	if !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo past bottom error = %v, want ErrNothingToUndo", err)
	}
	if !sameSequence(h.List(), before) {
		t.Error("failed undo must leave history unchanged")
	}
}

func TestRedoEmptyStack(t *testing.T) {
	h := NewHistory(10)
	fill(h, 1)

	_, _, err := h.Redo()
	if !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo without prior undo error = %v, want ErrNothingToRedo", err)
	}
}

func TestRecordInvalidatesRedo(t *testing.T) {
	h := NewHistory(10)
	fill(h, 1)

	if _, _, err := h.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	h.Record(numbered(99))

	if h.CanRedo() {
		t.Error("recording after undo must clear the redo stack")
	}
	_, _, err := h.Redo()
	if !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo after new record error = %v, want ErrNothingToRedo", err)
	}
}

func TestEvictionOldestFirst(t *testing.T) {
	const max = 5
	h := NewHistory(max)
	recs := fill(h, max+1)

	got := h.List()
	if len(got) != max {
		t.Fatalf("len(List()) = %d, want %d", len(got), max)
	}
	if !sameSequence(got, recs[1:]) {
		t.Errorf("List() = %v, want oldest entry evicted", got)
	}
}

func TestEvictionIsUndoable(t *testing.T) {
	const max = 3
	h := NewHistory(max)
	recs := fill(h, max+1)

	if _, _, err := h.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	// The snapshot predates both the append and the eviction, so the
	// evicted oldest entry is back.
	if !sameSequence(h.List(), recs[:max]) {
		t.Errorf("after undo List() = %v, want pre-eviction sequence %v", h.List(), recs[:max])
	}
}

func TestClearIsUndoable(t *testing.T) {
	h := NewHistory(10)
	recs := fill(h, 3)

	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", h.Len())
	}
	if h.CanRedo() {
		t.Error("Clear must invalidate the redo stack")
	}

	removed, ok, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo after Clear: %v", err)
	}
	if ok {
		t.Errorf("undoing a clear removed %v from an empty sequence", removed)
	}
	if !sameSequence(h.List(), recs) {
		t.Errorf("after undoing clear List() = %v, want %v", h.List(), recs)
	}
}

func TestReplaceIsUndoable(t *testing.T) {
	h := NewHistory(10)
	recs := fill(h, 2)

	loaded := []calc.Calculation{numbered(7), numbered(8), numbered(9)}
	h.Replace(loaded)

	if !sameSequence(h.List(), loaded) {
		t.Errorf("after Replace List() = %v, want %v", h.List(), loaded)
	}
	if _, _, err := h.Undo(); err != nil {
		t.Fatalf("Undo after Replace: %v", err)
	}
	if !sameSequence(h.List(), recs) {
		t.Errorf("after undoing replace List() = %v, want %v", h.List(), recs)
	}
}

func TestReplaceKeepsMostRecentPastCap(t *testing.T) {
	h := NewHistory(2)

	h.Replace([]calc.Calculation{numbered(1), numbered(2), numbered(3)})
	got := h.List()
	if len(got) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(got))
	}
	if !got[0].Equal(numbered(2)) || !got[1].Equal(numbered(3)) {
		t.Errorf("Replace should keep the most recent entries, got %v", got)
	}
}

func TestUndoStackBounded(t *testing.T) {
	const max = 4
	h := NewHistory(max)
	fill(h, max*3)

	if got := h.UndoCount(); got != max {
		t.Errorf("UndoCount() = %d, want %d", got, max)
	}
}

func TestSetMaxEntriesTrims(t *testing.T) {
	h := NewHistory(10)
	recs := fill(h, 6)

	h.SetMaxEntries(3)
	if h.MaxEntries() != 3 {
		t.Errorf("MaxEntries() = %d, want 3", h.MaxEntries())
	}
	if !sameSequence(h.List(), recs[3:]) {
		t.Errorf("List() after trim = %v, want last three records", h.List())
	}
	if h.UndoCount() > 3 {
		t.Errorf("UndoCount() after trim = %d, want <= 3", h.UndoCount())
	}
}

func TestLast(t *testing.T) {
	h := NewHistory(10)
	if _, ok := h.Last(); ok {
		t.Error("Last() on empty history should report none")
	}

	recs := fill(h, 2)
	last, ok := h.Last()
	if !ok || !last.Equal(recs[1]) {
		t.Errorf("Last() = %v, want %v", last, recs[1])
	}
}

func TestMementoEqual(t *testing.T) {
	a := capture([]calc.Calculation{numbered(1), numbered(2)})
	b := capture(a.Records())
	c := capture([]calc.Calculation{numbered(1)})

	if !a.Equal(b) {
		t.Error("snapshots of equal sequences should compare equal")
	}
	if a.Equal(c) {
		t.Error("snapshots of different sequences should not compare equal")
	}
}

func TestMementoIsolation(t *testing.T) {
	recs := []calc.Calculation{numbered(1), numbered(2)}
	m := capture(recs)

	recs[0] = numbered(42)
	if got := m.Records(); !got[0].Equal(numbered(1)) {
		t.Error("mutating the source slice must not affect the snapshot")
	}

	out := m.Records()
	out[1] = numbered(43)
	if got := m.Records(); !got[1].Equal(numbered(2)) {
		t.Error("mutating a returned copy must not affect the snapshot")
	}
}

func TestManyUndosRestoreEachStep(t *testing.T) {
	h := NewHistory(20)
	recs := fill(h, 5)

	for step := 4; step >= 0; step-- {
		if _, _, err := h.Undo(); err != nil {
			t.Fatalf("Undo to length %d: %v", step, err)
		}
		if !sameSequence(h.List(), recs[:step]) {
			t.Fatalf("after undo List() = %v, want %v", h.List(), recs[:step])
		}
	}
	for step := 1; step <= 5; step++ {
		if _, _, err := h.Redo(); err != nil {
			t.Fatalf("Redo to length %d: %v", step, err)
		}
		if !sameSequence(h.List(), recs[:step]) {
			t.Fatalf("after redo List() = %v, want %v", h.List(), recs[:step])
		}
	}
}

func ExampleHistory() {
	h := NewHistory(10)
	h.Record(calc.NewCalculation("add",
		decimal.NewFromInt(5), decimal.NewFromInt(7), decimal.NewFromInt(12)))

	removed, _, _ := h.Undo()
	fmt.Println(removed.String())
	fmt.Println(h.Len())
	// Output:
	// add(5, 7) = 12
	// 0
}
