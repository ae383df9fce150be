// Package calc defines the core value types shared by the calculator engine:
// the immutable Calculation record and the operand validation rules that run
// before any operation executes.
//
// A Calculation is created only by a successful operation execution (or by the
// persistence loader restoring a previous session) and is never mutated. Its
// subpackages build on it:
//
//   - operation: the arithmetic variants and the name registry (Factory)
//   - command: the executable operation+operand binding (Command)
//   - history: the bounded live sequence with memento undo/redo stacks
package calc
