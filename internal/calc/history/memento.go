package history

import "github.com/dshills/calcstorm/internal/calc"

// Memento is an immutable snapshot of the calculation sequence.
// Only the History caretaker creates and restores mementos.
type Memento struct {
	records []calc.Calculation
}

// capture copies the given sequence into a new memento.
func capture(records []calc.Calculation) *Memento {
	snapshot := make([]calc.Calculation, len(records))
	copy(snapshot, records)
	return &Memento{records: snapshot}
}

// Records returns a copy of the snapshotted sequence.
func (m *Memento) Records() []calc.Calculation {
	out := make([]calc.Calculation, len(m.records))
	copy(out, m.records)
	return out
}

// Len returns the number of snapshotted calculations.
func (m *Memento) Len() int { return len(m.records) }

// Equal reports structural equality of two snapshots.
func (m *Memento) Equal(o *Memento) bool {
	if len(m.records) != len(o.records) {
		return false
	}
	for i := range m.records {
		if !m.records[i].Equal(o.records[i]) {
			return false
		}
	}
	return true
}
