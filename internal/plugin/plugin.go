// Package plugin loads user-defined operations from Lua scripts.
//
// Each *.lua file in the plugin directory defines one operation:
//
//	name = "hypot"
//	description = "Length of the hypotenuse"
//
//	function apply(a, b)
//	    return math.sqrt(a * a + b * b)
//	end
//
// The script runs in a Lua state with only the base, math, string and table
// libraries opened; io, os, debug and package stay closed. Operands cross
// the boundary as float64, so plugin operations carry float precision, not
// decimal precision; the engine still rounds results to the configured
// precision like any builtin.
package plugin

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/calcstorm/internal/calc/operation"
)

// ErrInvalidPlugin indicates a script missing its name or apply function,
// or declaring them with the wrong types.
var ErrInvalidPlugin = errors.New("plugin: invalid operation script")

// Operation is a Lua-backed operation. It satisfies operation.Operation and
// registers through the same registry extension point as builtins.
type Operation struct {
	name string
	desc string

	// gopher-lua states are not goroutine-safe.
	mu sync.Mutex
	st *lua.LState
	fn *lua.LFunction
}

// Name implements operation.Operation.
func (o *Operation) Name() string { return o.name }

// Description implements operation.Operation.
func (o *Operation) Description() string { return o.desc }

// Apply calls the script's apply(a, b). A Lua error or a non-numeric,
// non-finite return value reports a domain error.
func (o *Operation) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.st.CallByParam(lua.P{Fn: o.fn, NRet: 1, Protect: true},
		lua.LNumber(a.InexactFloat64()), lua.LNumber(b.InexactFloat64())); err != nil {
		return decimal.Zero, fmt.Errorf("plugin %s: %v: %w", o.name, err, operation.ErrDomain)
	}

	ret := o.st.Get(-1)
	o.st.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return decimal.Zero, fmt.Errorf("plugin %s returned %s, not a number: %w", o.name, ret.Type(), operation.ErrDomain)
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("plugin %s returned a non-finite result: %w", o.name, operation.ErrDomain)
	}
	return decimal.NewFromFloat(f), nil
}

// Close releases the operation's Lua state.
func (o *Operation) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.st.Close()
}

// LoadDir loads every *.lua file in dir, sorted by file name. A missing
// directory yields no operations and no error; a broken script fails the
// whole load so a typo cannot silently drop an operation.
func LoadDir(dir string) ([]*Operation, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".lua" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	ops := make([]*Operation, 0, len(paths))
	for _, path := range paths {
		op, err := loadFile(path)
		if err != nil {
			for _, o := range ops {
				o.Close()
			}
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func loadFile(path string) (*Operation, error) {
	st := newState()

	if err := st.DoFile(path); err != nil {
		st.Close()
		return nil, fmt.Errorf("plugin: running %s: %v: %w", path, err, ErrInvalidPlugin)
	}

	name, ok := st.GetGlobal("name").(lua.LString)
	if !ok || name == "" {
		st.Close()
		return nil, fmt.Errorf("plugin: %s must set a string global 'name': %w", path, ErrInvalidPlugin)
	}
	fn, ok := st.GetGlobal("apply").(*lua.LFunction)
	if !ok {
		st.Close()
		return nil, fmt.Errorf("plugin: %s must define a function 'apply(a, b)': %w", path, ErrInvalidPlugin)
	}

	desc := "User operation " + string(name)
	if d, ok := st.GetGlobal("description").(lua.LString); ok && d != "" {
		desc = string(d)
	}

	return &Operation{
		name: string(name),
		desc: desc,
		st:   st,
		fn:   fn,
	}, nil
}

// newState creates a Lua state with only safe standard libraries.
func newState() *lua.LState {
	st := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Open base library (type, pairs, tostring, error, ...)
	lua.OpenBase(st)

	// Open safe libraries
	lua.OpenTable(st)
	lua.OpenString(st)
	lua.OpenMath(st)

	// io, os, debug and package stay closed: plugins compute, they
	// don't touch the system.
	return st
}
