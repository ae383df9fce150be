package engine

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dshills/calcstorm/internal/calc"
	"github.com/dshills/calcstorm/internal/calc/command"
	"github.com/dshills/calcstorm/internal/calc/history"
	"github.com/dshills/calcstorm/internal/calc/operation"
	"github.com/dshills/calcstorm/internal/event"
)

// Options configure a Calculator.
type Options struct {
	// Precision is the number of decimal places applied to every result,
	// exactly once, when the Calculation record is built.
	Precision int32

	// MaxInput caps the absolute magnitude of operands.
	MaxInput decimal.Decimal

	// MaxHistory bounds the live history and the undo stack.
	MaxHistory int
}

// DefaultOptions mirror the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Precision:  2,
		MaxInput:   decimal.NewFromInt(1_000_000),
		MaxHistory: history.DefaultMaxEntries,
	}
}

// Calculator coordinates operation resolution, command execution, history
// recording and subscriber notification.
type Calculator struct {
	registry *operation.Registry
	hist     *history.History
	hub      *event.Hub

	// Tunables may be updated by a config reload while the session runs.
	mu        sync.RWMutex
	precision int32
	maxInput  decimal.Decimal
}

// New creates a Calculator over the given registry.
func New(registry *operation.Registry, opts Options) *Calculator {
	if opts.MaxInput.IsZero() {
		opts.MaxInput = DefaultOptions().MaxInput
	}
	return &Calculator{
		registry:  registry,
		hist:      history.NewHistory(opts.MaxHistory),
		hub:       event.NewHub(),
		precision: opts.Precision,
		maxInput:  opts.MaxInput,
	}
}

// Perform resolves, validates and executes one operation, records the
// result and notifies subscribers.
//
// On an event.ObserverError the returned Calculation is valid and already
// in history; only subscriber side effects failed. Any other error means no
// state changed.
func (c *Calculator) Perform(name string, a, b decimal.Decimal) (calc.Calculation, error) {
	op, err := c.registry.Resolve(name)
	if err != nil {
		return calc.Calculation{}, err
	}

	maxInput := c.MaxInput()
	if err := calc.CheckMagnitude(a, maxInput); err != nil {
		return calc.Calculation{}, err
	}
	if err := calc.CheckMagnitude(b, maxInput); err != nil {
		return calc.Calculation{}, err
	}

	result, err := command.New(op, a, b).Execute()
	if err != nil {
		return calc.Calculation{}, err
	}

	rec := calc.NewCalculation(name, a, b, result.Round(c.Precision()))
	c.hist.Record(rec)

	if err := c.hub.Publish(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Undo reverts the last state change and returns the calculation it
// removed, when one exists.
func (c *Calculator) Undo() (calc.Calculation, bool, error) {
	return c.hist.Undo()
}

// Redo reapplies the last undone state change and returns the calculation
// it restored, when one exists.
func (c *Calculator) Redo() (calc.Calculation, bool, error) {
	return c.hist.Redo()
}

// History returns the recorded calculations in chronological order.
func (c *Calculator) History() []calc.Calculation {
	return c.hist.List()
}

// Clear empties the history. The clear is undoable.
func (c *Calculator) Clear() {
	c.hist.Clear()
}

// LoadHistory replaces the live history with records restored from the
// persistence boundary. The previous state remains reachable via undo.
func (c *Calculator) LoadHistory(records []calc.Calculation) {
	c.hist.Replace(records)
}

// CanUndo reports whether undo is available.
func (c *Calculator) CanUndo() bool { return c.hist.CanUndo() }

// CanRedo reports whether redo is available.
func (c *Calculator) CanRedo() bool { return c.hist.CanRedo() }

// Subscribe registers a subscriber for committed calculations and returns
// its subscription id.
func (c *Calculator) Subscribe(s event.Subscriber) string {
	return c.hub.Subscribe(s)
}

// Unsubscribe removes a subscription by id.
func (c *Calculator) Unsubscribe(id string) bool {
	return c.hub.Unsubscribe(id)
}

// Operations returns the registered operations sorted by name, for help
// output and command-table generation.
func (c *Calculator) Operations() []operation.Operation {
	return c.registry.All()
}

// Precision returns the configured result precision.
func (c *Calculator) Precision() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.precision
}

// SetPrecision updates the result precision for subsequent operations.
func (c *Calculator) SetPrecision(p int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.precision = p
}

// MaxInput returns the configured operand magnitude cap.
func (c *Calculator) MaxInput() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxInput
}

// SetMaxInput updates the operand magnitude cap.
func (c *Calculator) SetMaxInput(max decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxInput = max
}

// SetMaxHistory updates the history cap, trimming oldest entries if needed.
func (c *Calculator) SetMaxHistory(max int) {
	c.hist.SetMaxEntries(max)
}
