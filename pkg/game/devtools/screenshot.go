package devtools

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/renderer"
)

const screenshotStyle = `<style>
        body { background-color: #2b1d0e; color: #f3e3c3; font-family: 'Courier New', monospace; padding: 20px; }
        .header { color: #ffb347; font-size: 18px; margin-bottom: 10px; }
        .status { color: #c9a66b; margin-bottom: 20px; }
        .board { background-color: #1a1208; padding: 20px; border-radius: 8px; display: inline-block; margin: 20px 0; }
        .row { white-space: pre; line-height: 1.2; font-size: 16px; }
        .player { color: #00ff00; font-weight: bold; }
        .enemy { color: #ff4444; font-weight: bold; }
        .start { color: #4488ff; }
        .end { color: #ffd700; font-weight: bold; }
        .sun { color: #c9a66b; }
        .burn { color: #ff6a00; }
        .shade { color: #5fa8a8; }
        .drink { color: #44ccff; }
        .blocked { color: #666; }
        .void { color: #2b1d0e; }
        .messages { margin-top: 20px; border-top: 1px solid #5a4020; padding-top: 10px; }
        .message { color: #ddd; margin: 5px 0; }
    </style>`

// SaveScreenshotHTML writes the frame as a standalone HTML page and returns the filename
func SaveScreenshotHTML(f *renderer.Frame) (string, error) {
	if f == nil {
		return "", fmt.Errorf("no board")
	}
	filename := fmt.Sprintf("screenshot-%s.html", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(filename, []byte(ScreenshotHTML(f)), 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// ScreenshotHTML renders the frame as HTML
func ScreenshotHTML(f *renderer.Frame) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n    <meta charset=\"UTF-8\">\n    <title>Sunstroke - Screenshot</title>\n    ")
	b.WriteString(screenshotStyle)
	b.WriteString("\n</head>\n<body>\n")

	fmt.Fprintf(&b, `    <div class="header">Level %d: %s</div>`+"\n", f.Level+1, html.EscapeString(f.LevelName))
	fmt.Fprintf(&b, `    <div class="status">Heat %d/%d, actions %d, %s</div>`+"\n", f.Run.Heat, f.Run.MaxHeat, f.Run.ActionsLeft, f.Run.State)

	b.WriteString(`    <div class="board">` + "\n")
	for y := f.Lo.Y; y <= f.Hi.Y; y++ {
		b.WriteString(`        <div class="row">`)
		for x := f.Lo.X; x <= f.Hi.X; x++ {
			c := world.C(x, y)
			fmt.Fprintf(&b, `<span class="%s">%s</span>`, cellClass(f, c), html.EscapeString(f.Glyph(c)))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("    </div>\n")

	if len(f.Messages) > 0 {
		b.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range f.Messages {
			fmt.Fprintf(&b, `        <div class="message">%s</div>`+"\n", html.EscapeString(renderer.Plain(msg)))
		}
		b.WriteString("    </div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// cellClass returns the CSS class for the cell at c
func cellClass(f *renderer.Frame, c world.Coord) string {
	if c == f.Player {
		return "player"
	}
	if _, ok := f.Enemy(c); ok {
		return "enemy"
	}
	t, ok := f.Tile(c)
	if !ok {
		return "void"
	}
	return t.Type.String()
}
