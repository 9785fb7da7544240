// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/renderer"
)

const boardDumpFilename = "board.txt"

// writeBoard writes the board rows, top to bottom
func writeBoard(b *strings.Builder, f *renderer.Frame) {
	for y := f.Lo.Y; y <= f.Hi.Y; y++ {
		for x := f.Lo.X; x <= f.Hi.X; x++ {
			b.WriteString(f.Glyph(world.C(x, y)))
		}
		b.WriteString("\n")
	}
}

// DumpBoard renders a frame as plain text: metadata, legend, the board and
// the enemy list. The format is human- and LLM-readable.
func DumpBoard(f *renderer.Frame) string {
	var b strings.Builder
	if f == nil {
		return ""
	}

	b.WriteString("=== BOARD DUMP ===\n\n")
	b.WriteString("--- Metadata ---\n")
	fmt.Fprintf(&b, "level: %d\n", f.Level+1)
	fmt.Fprintf(&b, "level_name: %q\n", f.LevelName)
	fmt.Fprintf(&b, "state: %s\n", f.Run.State)
	fmt.Fprintf(&b, "heat: %d/%d\n", f.Run.Heat, f.Run.MaxHeat)
	fmt.Fprintf(&b, "actions_left: %d\n", f.Run.ActionsLeft)
	fmt.Fprintf(&b, "burn_streak: %d\n", f.Run.BurnStreak)
	fmt.Fprintf(&b, "player: %s\n", f.Player)
	fmt.Fprintf(&b, "start: %s\n", f.Start)
	fmt.Fprintf(&b, "goal: %s\n", f.Goal)
	fmt.Fprintf(&b, "bounds: %s..%s\n", f.Lo, f.Hi)
	b.WriteString("\n")

	b.WriteString("--- Legend ---\n")
	b.WriteString("< = start  > = goal  . = sun  ^ = burn  h/H = shade (one-shot/permanent)  d/D = drink (one-shot/permanent)  # = blocked  @ = player  e = enemy\n\n")

	b.WriteString("--- Board ---\n")
	writeBoard(&b, f)
	b.WriteString("\n")

	b.WriteString("--- Enemies ---\n")
	if len(f.Enemies) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range f.Enemies {
		fmt.Fprintf(&b, "  name: %q at: %s health: %d threat: %v\n", e.Name, e.At, e.Health, e.Threat)
	}
	return b.String()
}

// DumpBoardToFile writes DumpBoard to board.txt in the working directory and
// returns its absolute path
func DumpBoardToFile(f *renderer.Frame) (string, error) {
	if f == nil {
		return "", fmt.Errorf("no board")
	}
	absPath, err := filepath.Abs(boardDumpFilename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(absPath, []byte(DumpBoard(f)), 0o644); err != nil {
		return "", err
	}
	return absPath, nil
}

// CopyBoard puts the plain board rows on the system clipboard
func CopyBoard(f *renderer.Frame) error {
	if f == nil {
		return fmt.Errorf("no board")
	}
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	var b strings.Builder
	writeBoard(&b, f)
	return clipboard.WriteAll(b.String())
}
