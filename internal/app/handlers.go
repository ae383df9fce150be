package app

import (
	"errors"
	"fmt"

	"github.com/dshills/calcstorm/internal/calc"
	"github.com/dshills/calcstorm/internal/dispatcher"
	"github.com/dshills/calcstorm/internal/event"
)

// errQuit signals a clean session exit from the exit command.
var errQuit = errors.New("app: quit")

// buildCommands assembles the interactive command table. Arithmetic
// commands are generated from the operation registry, so a newly
// registered operation (builtin or plugin) gets its command without any
// change here.
func (a *App) buildCommands() *dispatcher.Registry {
	reg := dispatcher.NewRegistry()

	for _, op := range a.calc.Operations() {
		reg.Register(dispatcher.Command{
			Name: op.Name(),
			Desc: op.Description(),
			Run:  a.runOperation(op.Name()),
		})
	}

	reg.Register(dispatcher.Command{
		Name: "undo",
		Desc: "Undo the last operation",
		Run:  a.runUndo,
	})
	reg.Register(dispatcher.Command{
		Name: "redo",
		Desc: "Redo a previously undone operation",
		Run:  a.runRedo,
	})
	reg.Register(dispatcher.Command{
		Name: "history",
		Desc: "Display calculation history",
		Run:  a.runHistory,
	})
	reg.Register(dispatcher.Command{
		Name: "clear",
		Desc: "Clear the history (undoable)",
		Run:  a.runClear,
	})
	reg.Register(dispatcher.Command{
		Name: "save",
		Desc: "Save calculation history to file",
		Run:  a.runSave,
	})
	reg.Register(dispatcher.Command{
		Name: "load",
		Desc: "Load calculation history from file",
		Run:  a.runLoad,
	})
	reg.Register(dispatcher.Command{
		Name: "help",
		Desc: "Show available commands",
		Run: func([]string) error {
			a.printHelp(reg)
			return nil
		},
	})
	reg.Register(dispatcher.Command{
		Name: "exit",
		Desc: "Exit the calculator",
		Run:  func([]string) error { return errQuit },
	})

	return reg
}

// runOperation returns the handler for one arithmetic command.
func (a *App) runOperation(name string) dispatcher.RunFunc {
	return func(args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%s requires exactly two numbers: %w", name, calc.ErrInvalidInput)
		}
		opA, err := calc.ParseOperand(args[0])
		if err != nil {
			return err
		}
		opB, err := calc.ParseOperand(args[1])
		if err != nil {
			return err
		}

		rec, err := a.calc.Perform(name, opA, opB)
		if err != nil {
			var obsErr *event.ObserverError
			if errors.As(err, &obsErr) {
				// The calculation is committed; only side effects failed.
				a.ui.Successf("Result: %s", rec.Result)
				a.ui.Warnf("Logging or autosave failed; history may not be persisted: %v", obsErr)
				a.log.Warn("subscriber failure after commit: %v", obsErr)
				return nil
			}
			return err
		}

		a.ui.Successf("Result: %s", rec.Result)
		return nil
	}
}

func (a *App) runUndo([]string) error {
	removed, ok, err := a.calc.Undo()
	if err != nil {
		return err
	}
	if ok {
		a.ui.Infof("Undid %s", removed)
	} else {
		a.ui.Infof("Undid last change.")
	}
	a.log.Info("undo executed")
	return nil
}

func (a *App) runRedo([]string) error {
	restored, ok, err := a.calc.Redo()
	if err != nil {
		return err
	}
	if ok {
		a.ui.Infof("Redid %s", restored)
	} else {
		a.ui.Infof("Redid last change.")
	}
	a.log.Info("redo executed")
	return nil
}

func (a *App) runHistory([]string) error {
	records := a.calc.History()
	if len(records) == 0 {
		a.ui.Warnf("(no history yet)")
		return nil
	}

	a.ui.Headerf("Calculation history:")
	for i, rec := range records {
		a.ui.Printf("  %2d. %s", i+1, rec)
	}
	return nil
}

func (a *App) runClear([]string) error {
	a.calc.Clear()
	a.ui.Infof("History cleared.")
	a.log.Info("history cleared")
	return nil
}

func (a *App) runSave([]string) error {
	if err := a.store.Save(a.calc.History()); err != nil {
		return err
	}
	a.ui.Infof("History saved to %s", a.store.Path())
	a.log.Info("history saved to %s", a.store.Path())
	return nil
}

func (a *App) runLoad([]string) error {
	records, err := a.store.Load()
	if err != nil {
		return err
	}
	a.calc.LoadHistory(records)
	a.ui.Infof("Loaded %d calculations from %s", len(records), a.store.Path())
	a.log.Info("history loaded from %s", a.store.Path())
	return nil
}

func (a *App) printHelp(reg *dispatcher.Registry) {
	a.ui.Headerf("Available commands:")
	for _, cmd := range reg.Commands() {
		a.ui.Printf("  %-12s %s", cmd.Name, cmd.Desc)
	}
	a.ui.Printf("")
	a.ui.Printf("Arithmetic commands take two numbers, e.g. 'add 5 7'.")
}
