package app

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/dshills/calcstorm/internal/calc"
	"github.com/dshills/calcstorm/internal/calc/history"
	"github.com/dshills/calcstorm/internal/calc/operation"
	"github.com/dshills/calcstorm/internal/dispatcher"
)

// Run drives the interactive read-eval-print loop until the input is
// exhausted, the exit command is issued, or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	a.ui.Headerf("calcstorm — interactive calculator")
	a.ui.Printf("Type 'help' for a list of commands, 'exit' to quit.")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	a.ui.Prompt()
	for {
		select {
		case <-ctx.Done():
			a.ui.Printf("")
			a.ui.Infof("Interrupted, goodbye.")
			a.log.Info("session interrupted")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return err
					}
				default:
				}
				a.ui.Infof("Goodbye.")
				a.log.Info("session ended")
				return nil
			}
			if err := a.handleLine(line); err != nil {
				if errors.Is(err, errQuit) {
					a.ui.Infof("Goodbye.")
					a.log.Info("session ended")
					return nil
				}
				a.report(err)
			}
			a.ui.Prompt()
		}
	}
}

// handleLine tokenizes one input line and dispatches it. Blank lines
// are ignored.
func (a *App) handleLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return a.commands.Dispatch(strings.ToLower(fields[0]), fields[1:])
}

// report prints a user-facing message for a command failure. Expected
// conditions (unknown command, bad input, empty undo stack) are warnings,
// anything else is an error.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, dispatcher.ErrUnknownCommand):
		a.ui.Warnf("Unknown command. Type 'help' for a list of commands.")
	case errors.Is(err, calc.ErrInvalidInput):
		a.ui.Warnf("Invalid input: %v", err)
	case errors.Is(err, operation.ErrDivisionByZero):
		a.ui.Warnf("Division by zero is not allowed.")
	case operation.IsDomain(err):
		a.ui.Warnf("Result is undefined for those operands: %v", err)
	case errors.Is(err, history.ErrNothingToUndo):
		a.ui.Warnf("Nothing to undo.")
	case errors.Is(err, history.ErrNothingToRedo):
		a.ui.Warnf("Nothing to redo.")
	default:
		a.ui.Errorf("Error: %v", err)
		a.log.Error("command failed: %v", err)
	}
}
