package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"sunstroke/pkg/engine/input"
	"sunstroke/pkg/engine/terminal"
	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/renderer"
	"sunstroke/pkg/game/state"
)

const (
	heatBarWidth = 20
	redrawPeriod = 100 * time.Millisecond
	// lines drawn around the board: header, bars, legend, messages pane, controls
	chromeRows = 16
)

// TUIRenderer is the terminal frontend
type TUIRenderer struct {
	out      io.Writer
	bindings *input.Bindings

	// readKey blocks for one key press; replaceable in tests
	readKey func() (string, error)

	colorPlayer  color.Style
	colorEnemy   color.Style
	colorThreat  color.Style
	colorStart   color.Style
	colorGoal    color.Style
	colorSun     color.Style
	colorBurn    color.Style
	colorShade   color.Style
	colorDrink   color.Style
	colorBlocked color.Style
	colorHeat    color.Style
	colorAction  color.Style
	colorDenied  color.Style
	colorSubtle  color.Style
}

// New creates a terminal renderer writing to out. Nil bindings use the defaults.
func New(out io.Writer, bindings *input.Bindings) *TUIRenderer {
	if bindings == nil {
		bindings = input.DefaultBindings()
	}
	t := &TUIRenderer{out: out, bindings: bindings, readKey: input.ReadKey}
	t.Init()
	return t
}

// Init sets up the colour palette
func (t *TUIRenderer) Init() {
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorEnemy = color.Style{color.FgRed}
	t.colorThreat = color.Style{color.FgRed, color.OpBold, color.OpReverse}
	t.colorStart = color.Style{color.FgBlue}
	t.colorGoal = color.Style{color.FgYellow, color.OpBold}
	t.colorSun = color.Style{color.FgYellow}
	t.colorBurn = color.Style{color.FgLightRed, color.OpBold}
	t.colorShade = color.Style{color.FgCyan}
	t.colorDrink = color.Style{color.FgLightBlue, color.OpBold}
	t.colorBlocked = color.Style{color.FgGray}
	t.colorHeat = color.Style{color.FgLightRed}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
}

// Run draws frames and forwards key presses until the player quits or ctx is done
func (t *TUIRenderer) Run(ctx context.Context, c renderer.Controller) error {
	if !terminal.IsInteractive() {
		return input.ErrNotTerminal
	}

	keys := make(chan string)
	keyErr := make(chan error, 1)
	go func() {
		for {
			code, err := t.readKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keys <- code:
			case <-ctx.Done():
				return
			}
		}
	}()

	evs, unsubscribe := c.Events(64)
	defer unsubscribe()

	ticker := time.NewTicker(redrawPeriod)
	defer ticker.Stop()

	var last *renderer.Frame
	redraw := func() {
		if f := c.Frame(); f != nil && f != last {
			last = f
			t.Draw(f)
		}
	}
	redraw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-keyErr:
			return err
		case code := <-keys:
			intent := t.bindings.MapToIntent(input.NewDebouncedInput(input.RawInput{
				Device:    input.DeviceTerminal,
				Code:      code,
				Timestamp: time.Now(),
			}))
			if intent.Action == input.ActionQuit {
				return nil
			}
			c.Submit(intent)
		case _, ok := <-evs:
			if !ok {
				return nil
			}
			redraw()
		case <-ticker.C:
			redraw()
		}
	}
}

// Draw clears the screen and writes one frame
func (t *TUIRenderer) Draw(f *renderer.Frame) {
	var b strings.Builder
	terminal.Clear(&b)
	t.render(&b, f)
	io.WriteString(t.out, b.String())
}

func (t *TUIRenderer) render(b *strings.Builder, f *renderer.Frame) {
	b.WriteString(t.colorAction.Sprint(gotext.Get("LEVEL_HEADER", f.Level+1, f.LevelName)))
	b.WriteString("  ")
	b.WriteString(t.stateLabel(f.Run.State))
	b.WriteString("\n\n")

	fmt.Fprintf(b, "%s %s %d/%d\n",
		t.colorSubtle.Sprintf("%-7s", gotext.Get("LABEL_HEAT")),
		t.colorHeat.Sprint(renderer.HeatBar(f.Run.Heat, f.Run.MaxHeat, heatBarWidth)),
		f.Run.Heat, f.Run.MaxHeat)
	fmt.Fprintf(b, "%s %s  %s %d\n\n",
		t.colorSubtle.Sprintf("%-7s", gotext.Get("LABEL_ACTIONS")),
		t.colorAction.Sprint(strings.Repeat("●", max(f.Run.ActionsLeft, 0))),
		t.colorSubtle.Sprint(gotext.Get("LABEL_BURN_STREAK")),
		f.Run.BurnStreak)

	w, h := f.Size()
	if !terminal.Fits(w*2, h+chromeRows) {
		b.WriteString(t.colorDenied.Sprint(gotext.Get("TERMINAL_TOO_SMALL")))
		b.WriteString("\n")
	}
	for y := f.Lo.Y; y <= f.Hi.Y; y++ {
		b.WriteString("  ")
		for x := f.Lo.X; x <= f.Hi.X; x++ {
			b.WriteString(t.cell(f, world.C(x, y)))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.colorSubtle.Sprint("< start  > goal  . sun  ^ burn  h/H shade  d/D drink  # rock  e enemy"))
	b.WriteString("\n")

	t.messagesPane(b, f.Messages)
	b.WriteString(t.FormatText("ACTION{wasd} Move  " + t.controls()))
	b.WriteString("\n")
}

// cell returns the styled glyph for one board position
func (t *TUIRenderer) cell(f *renderer.Frame, c world.Coord) string {
	glyph := f.Glyph(c)
	if c == f.Player {
		return t.colorPlayer.Sprint(glyph)
	}
	if e, ok := f.Enemy(c); ok {
		if e.Threat {
			return t.colorThreat.Sprint(glyph)
		}
		return t.colorEnemy.Sprint(glyph)
	}
	tile, ok := f.Tile(c)
	if !ok {
		return glyph
	}
	switch tile.Type {
	case world.Start:
		return t.colorStart.Sprint(glyph)
	case world.End:
		return t.colorGoal.Sprint(glyph)
	case world.Burn:
		return t.colorBurn.Sprint(glyph)
	case world.Shade:
		return t.colorShade.Sprint(glyph)
	case world.Drink:
		return t.colorDrink.Sprint(glyph)
	case world.Blocked:
		return t.colorBlocked.Sprint(glyph)
	}
	return t.colorSun.Sprint(glyph)
}

func (t *TUIRenderer) stateLabel(s state.TurnState) string {
	switch s {
	case state.PlayerTurn:
		return t.colorAction.Sprint(gotext.Get("STATE_PLAYER_TURN"))
	case state.EnemyTurn:
		return t.colorEnemy.Sprint(gotext.Get("STATE_ENEMY_TURN"))
	case state.Busy:
		return t.colorSubtle.Sprint(gotext.Get("STATE_BUSY"))
	case state.Won:
		return t.colorGoal.Sprint(gotext.Get("STATE_WON"))
	case state.Lost:
		return t.colorDenied.Sprint(gotext.Get("STATE_LOST"))
	}
	return s.String()
}

// FormatText styles HEAT{}, ACTION{} and friends
func (t *TUIRenderer) FormatText(msg string) string {
	var b strings.Builder
	for _, seg := range renderer.Parse(msg) {
		switch seg.Style {
		case renderer.StyleHeat:
			b.WriteString(t.colorHeat.Sprint(seg.Text))
		case renderer.StyleAction:
			b.WriteString(t.colorAction.Sprint(seg.Text))
		case renderer.StyleEnemy:
			b.WriteString(t.colorEnemy.Sprint(seg.Text))
		case renderer.StyleGoal:
			b.WriteString(t.colorGoal.Sprint(seg.Text))
		case renderer.StyleDenied:
			b.WriteString(t.colorDenied.Sprint(seg.Text))
		case renderer.StyleSubtle:
			b.WriteString(t.colorSubtle.Sprint(seg.Text))
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// messagesPane renders the message log between two rules
func (t *TUIRenderer) messagesPane(b *strings.Builder, messages []string) {
	width, _ := terminal.GetSize()
	label := " Messages "
	sideLen := (width - len(label)) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := max(width-sideLen-len(label), 1)

	b.WriteString("\n")
	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", sideLen) + label + strings.Repeat("─", rightLen)))
	b.WriteString("\n")
	if len(messages) == 0 {
		b.WriteString(t.colorSubtle.Sprint("  (no messages)"))
		b.WriteString("\n")
	}
	for _, msg := range messages {
		fmt.Fprintf(b, "  %s\n", t.FormatText(msg))
	}
	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", max(width, 1))))
	b.WriteString("\n")
}

// controls lists the bound keys of the actions worth showing, e.g. "ACTION{e} End Turn"
func (t *TUIRenderer) controls() string {
	byAction := t.bindings.ByAction()
	var parts []string
	for _, a := range []input.Action{input.ActionEndTurn, input.ActionRetry, input.ActionDumpBoard, input.ActionCopyBoard, input.ActionQuit} {
		codes := byAction[a]
		if len(codes) == 0 {
			continue
		}
		parts = append(parts, renderer.Markup("ACTION", "%s", codes[0])+" "+input.ActionName(a))
	}
	return strings.Join(parts, "  ")
}

var _ renderer.Renderer = (*TUIRenderer)(nil)
