package util

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return IsTerminal(os.Stdout)
}

// IsInteractive reports whether both stdin and stdout are terminals, which
// the shelf view and confirmation prompts need.
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// InitColor turns console color off for --no-color, NO_COLOR or a
// non-terminal stdout.
func InitColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !IsTTY() {
		color.NoColor = true
	}
}
