package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Fits reports whether a cols x rows block of text fits on screen
func Fits(cols, rows int) bool {
	w, h := GetSize()
	return cols <= w && rows <= h
}

// IsInteractive reports whether stdin and stdout are both terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Clear homes the cursor and wipes the screen
func Clear(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}
