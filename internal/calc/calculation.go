package calc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Calculation is an immutable record of one evaluated operation.
// It is constructed by NewCalculation when the engine commits a result,
// or by Restore when the persistence layer reloads a previous session.
type Calculation struct {
	Op        string
	A         decimal.Decimal
	B         decimal.Decimal
	Result    decimal.Decimal
	Timestamp time.Time
}

// NewCalculation creates a Calculation stamped with the current time.
// The result is expected to be already rounded; no rounding happens here.
func NewCalculation(op string, a, b, result decimal.Decimal) Calculation {
	return Calculation{
		Op:        op,
		A:         a,
		B:         b,
		Result:    result,
		Timestamp: time.Now(),
	}
}

// Restore rebuilds a Calculation from persisted fields, preserving the
// original timestamp.
func Restore(op string, a, b, result decimal.Decimal, ts time.Time) Calculation {
	return Calculation{
		Op:        op,
		A:         a,
		B:         b,
		Result:    result,
		Timestamp: ts,
	}
}

// String renders the record as "op(a, b) = result".
func (c Calculation) String() string {
	return fmt.Sprintf("%s(%s, %s) = %s", c.Op, c.A, c.B, c.Result)
}

// Equal reports structural equality. Decimal fields compare by value, not
// by internal representation, so 12 and 12.0 are equal.
func (c Calculation) Equal(o Calculation) bool {
	return c.Op == o.Op &&
		c.A.Equal(o.A) &&
		c.B.Equal(o.B) &&
		c.Result.Equal(o.Result) &&
		c.Timestamp.Equal(o.Timestamp)
}
