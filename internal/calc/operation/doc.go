// Package operation defines the arithmetic operations and the registry that
// resolves them by name.
//
// Every operation is a stateless implementation of the Operation interface.
// The Registry is built once at startup with the ten builtin variants; adding
// a new variant means implementing Operation and calling Register — no
// dispatch code changes. The plugin loader uses the same extension point for
// Lua-defined operations.
//
// Operands and results are decimals. Power and root evaluate through float64
// because fractional exponents have no exact decimal form; a non-real or
// non-finite outcome reports ErrDomain.
package operation
