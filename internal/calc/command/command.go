// Package command wraps one operation with its operands into an executable
// unit. Execution is pure computation: the command adds no failure modes of
// its own and leaves recording, notification and display to the engine.
package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dshills/calcstorm/internal/calc/operation"
)

// Command binds an operation to two validated operands.
type Command struct {
	op operation.Operation
	a  decimal.Decimal
	b  decimal.Decimal
}

// New creates a command for op over the given operands.
func New(op operation.Operation, a, b decimal.Decimal) *Command {
	return &Command{op: op, a: a, b: b}
}

// Execute evaluates the bound operation. Operation errors propagate
// unchanged.
func (c *Command) Execute() (decimal.Decimal, error) {
	return c.op.Apply(c.a, c.b)
}

// Name returns the bound operation's name.
func (c *Command) Name() string { return c.op.Name() }

// Operands returns the bound operands.
func (c *Command) Operands() (a, b decimal.Decimal) { return c.a, c.b }

// String renders the request as "op(a, b)" for logging.
func (c *Command) String() string {
	return fmt.Sprintf("%s(%s, %s)", c.op.Name(), c.a, c.b)
}
