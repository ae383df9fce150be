// Package dispatcher maps interactive command names to handlers.
//
// It is a plain name table: the application registers its commands once at
// startup (arithmetic commands are generated from the operation registry,
// so new operations get commands without touching this package) and the
// REPL resolves each input line against it.
package dispatcher

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownCommand indicates no command is registered under a name.
var ErrUnknownCommand = errors.New("dispatcher: unknown command")

// RunFunc executes one command invocation with its already-split
// arguments.
type RunFunc func(args []string) error

// Command is one registered interactive command.
type Command struct {
	Name string
	Desc string
	Run  RunFunc
}

// Registry holds the command table.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command, replacing any previous entry with the same name.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name] = cmd
}

// Resolve returns the command registered under name.
func (r *Registry) Resolve(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	if !ok {
		return Command{}, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	return cmd, nil
}

// Dispatch resolves name and runs it with args.
func (r *Registry) Dispatch(name string, args []string) error {
	cmd, err := r.Resolve(name)
	if err != nil {
		return err
	}
	return cmd.Run(args)
}

// Commands returns all registered commands sorted by name, for the help
// menu.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
