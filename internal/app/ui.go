package app

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI styles for the interactive session.
const (
	styleReset  = "\033[0m"
	styleGreen  = "\033[32m"
	styleRed    = "\033[31m"
	styleYellow = "\033[33m"
	styleCyan   = "\033[36m"
	styleBold   = "\033[1m"
)

// UI writes styled terminal output. Styling is enabled only when the
// writer is a terminal and not explicitly disabled, so piped output stays
// clean.
type UI struct {
	out   io.Writer
	color bool
}

// NewUI creates a UI over out. noColor forces plain output.
func NewUI(out io.Writer, noColor bool) *UI {
	color := false
	if !noColor {
		if f, ok := out.(*os.File); ok {
			color = term.IsTerminal(int(f.Fd()))
		}
	}
	return &UI{out: out, color: color}
}

// Printf writes unstyled output.
func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}

// Successf writes a result line.
func (u *UI) Successf(format string, args ...any) {
	u.styled(styleGreen, format, args...)
}

// Errorf writes an error line.
func (u *UI) Errorf(format string, args ...any) {
	u.styled(styleRed, format, args...)
}

// Warnf writes a warning line.
func (u *UI) Warnf(format string, args ...any) {
	u.styled(styleYellow, format, args...)
}

// Infof writes an informational line.
func (u *UI) Infof(format string, args ...any) {
	u.styled(styleCyan, format, args...)
}

// Headerf writes an emphasized line, used for the banner and help menu.
func (u *UI) Headerf(format string, args ...any) {
	u.styled(styleBold, format, args...)
}

// Prompt writes the input prompt without a trailing newline.
func (u *UI) Prompt() {
	fmt.Fprint(u.out, ">>> ")
}

func (u *UI) styled(style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if u.color {
		fmt.Fprint(u.out, style+msg+styleReset+"\n")
		return
	}
	fmt.Fprintln(u.out, msg)
}
