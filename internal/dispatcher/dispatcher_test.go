package dispatcher

import (
	"errors"
	"testing"
)

func TestRegisterAndDispatch(t *testing.T) {
	r := NewRegistry()
	var got []string
	r.Register(Command{
		Name: "echo",
		Desc: "Echo the arguments",
		Run: func(args []string) error {
			got = args
			return nil
		},
	})

	if err := r.Dispatch("echo", []string{"5", "7"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(got) != 2 || got[0] != "5" || got[1] != "7" {
		t.Errorf("handler received %v, want [5 7]", got)
	}
}

func TestDispatchUnknown(t *testing.T) {
	err := NewRegistry().Dispatch("launch", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Dispatch error = %v, want ErrUnknownCommand", err)
	}
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("handler failed")
	r.Register(Command{Name: "boom", Run: func([]string) error { return boom }})

	if err := r.Dispatch("boom", nil); !errors.Is(err, boom) {
		t.Errorf("Dispatch error = %v, want handler error unchanged", err)
	}
}

func TestCommandsSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"undo", "add", "history", "redo"} {
		r.Register(Command{Name: name, Run: func([]string) error { return nil }})
	}

	cmds := r.Commands()
	if len(cmds) != 4 {
		t.Fatalf("len(Commands()) = %d, want 4", len(cmds))
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1].Name >= cmds[i].Name {
			t.Errorf("Commands() not sorted: %q before %q", cmds[i-1].Name, cmds[i].Name)
		}
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(Command{Name: "dup", Desc: "first", Run: func([]string) error { return nil }})
	r.Register(Command{Name: "dup", Desc: "second", Run: func([]string) error { return nil }})

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	cmd, err := r.Resolve("dup")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Desc != "second" {
		t.Errorf("Desc = %q, want the replacing registration", cmd.Desc)
	}
}
