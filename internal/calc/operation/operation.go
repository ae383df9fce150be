package operation

import "github.com/shopspring/decimal"

// Operation is a stateless binary arithmetic operation.
type Operation interface {
	// Name is the registry key, e.g. "add" or "int_divide".
	Name() string

	// Description is a one-line summary for the help menu.
	Description() string

	// Apply evaluates the operation. The result is unrounded; the engine
	// applies the configured precision exactly once when it builds the
	// Calculation record.
	Apply(a, b decimal.Decimal) (decimal.Decimal, error)
}

// Func adapts a plain function into an Operation.
type Func struct {
	OpName string
	Desc   string
	Fn     func(a, b decimal.Decimal) (decimal.Decimal, error)
}

// Name implements Operation.
func (f Func) Name() string { return f.OpName }

// Description implements Operation.
func (f Func) Description() string { return f.Desc }

// Apply implements Operation.
func (f Func) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return f.Fn(a, b)
}
