package ebiten

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/entities"
	"sunstroke/pkg/game/renderer"
	"sunstroke/pkg/game/state"
)

// Draw renders the latest frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	f := e.frame
	if f == nil {
		return
	}
	now := time.Now()
	l := e.layout()
	w, h := f.Size()

	e.drawHeader(screen, f)

	bw, bh := float32(w*l.TileSize+tileGap), float32(h*l.TileSize+tileGap)
	vector.DrawFilledRect(screen, float32(l.OriginX-tileGap), float32(l.OriginY-tileGap), bw, bh, colorBoardBackground, false)

	mx, my := ebiten.CursorPosition()
	hover, hovering := l.CellAt(mx, my)

	for _, t := range f.Tiles {
		x, y := l.ScreenPos(float64(t.At.X), float64(t.At.Y))
		size := float32(l.TileSize - tileGap)
		vector.DrawFilledRect(screen, x, y, size, size, tileColor(t, now), false)
		if hovering && hover == t.At && f.Run.State == state.PlayerTurn {
			vector.DrawFilledRect(screen, x, y, size, size, colorHoverBg, false)
		}
	}

	for _, en := range f.Enemies {
		if en.Threat {
			x, y := l.ScreenPos(float64(en.At.X), float64(en.At.Y))
			size := float32(l.TileSize - tileGap)
			vector.DrawFilledRect(screen, x, y, size, size, colorThreatBg, false)
		}
		ex, ey := e.tweens.Position(en.Name, en.At, now)
		e.drawToken(screen, l, ex, ey, renderer.EnemyIcon, colorEnemy)
		e.drawHealth(screen, l, ex, ey, en.Health)
	}

	px, py := e.tweens.Position(entities.PlayerID, f.Player, now)
	e.drawToken(screen, l, px, py, renderer.PlayerIcon, colorPlayer)

	_, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	e.drawMessages(screen, f.Messages, sh-messagesHeight)

	if f.Run.State.Terminal() {
		e.drawOutcome(screen, f.Run.State)
	}
}

func tileColor(t renderer.TileView, now time.Time) color.Color {
	switch t.Type {
	case world.Start:
		return colorStart
	case world.End:
		return pulsingColor(colorGoal, now)
	case world.Burn:
		return colorBurn
	case world.Shade:
		return colorShade
	case world.Drink:
		return colorDrink
	case world.Blocked:
		return colorBlocked
	}
	return colorSun
}

// drawToken draws a glyph centred on a tile position
func (e *EbitenRenderer) drawToken(screen *ebiten.Image, l renderer.BoardLayout, x, y float64, glyph string, clr color.Color) {
	sx, sy := l.ScreenPos(x, y)
	half := float32(l.TileSize-tileGap) / 2
	vector.DrawFilledCircle(screen, sx+half, sy+half, half*0.7, colorBoardBackground, true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(sx+half)-textWidth(glyph)/2, float64(sy+half)-lineHeight/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, glyph, uiFace, op)
}

// drawHealth draws one pip per health point under a token
func (e *EbitenRenderer) drawHealth(screen *ebiten.Image, l renderer.BoardLayout, x, y float64, health int) {
	sx, sy := l.ScreenPos(x, y)
	for i := 0; i < health; i++ {
		vector.DrawFilledRect(screen, sx+2+float32(i*5), sy+float32(l.TileSize-tileGap)-5, 3, 3, colorEnemy, false)
	}
}

func (e *EbitenRenderer) drawHeader(screen *ebiten.Image, f *renderer.Frame) {
	drawText(screen, gotext.Get("LEVEL_HEADER", f.Level+1, f.LevelName), boardMargin, 8, colorAction)
	drawText(screen, stateLabel(f.Run.State), boardMargin+320, 8, colorSubtle)

	// heat bar
	const barWidth, barHeight = 200, 10
	y := float32(28)
	vector.DrawFilledRect(screen, boardMargin, y, barWidth, barHeight, colorPanelBackground, false)
	if f.Run.MaxHeat > 0 {
		fill := float32(barWidth) * float32(f.Run.Heat) / float32(f.Run.MaxHeat)
		vector.DrawFilledRect(screen, boardMargin, y, fill, barHeight, colorHeat, false)
	}
	drawText(screen, gotext.Get("HUD_HEAT", f.Run.Heat, f.Run.MaxHeat), boardMargin+barWidth+8, 26, colorHeat)
	drawText(screen, gotext.Get("HUD_ACTIONS", f.Run.ActionsLeft, f.Run.BurnStreak), boardMargin+barWidth+120, 26, colorText)
}

// drawMessages renders the log with markup colours, oldest first
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, messages []string, top int) {
	sw := screen.Bounds().Dx()
	vector.DrawFilledRect(screen, 0, float32(top), float32(sw), messagesHeight, colorPanelBackground, false)
	for i, msg := range messages {
		x := float64(boardMargin)
		y := float64(top + 6 + i*lineHeight)
		for _, seg := range renderer.Parse(msg) {
			drawText(screen, seg.Text, x, y, segmentColor(seg.Style))
			x += textWidth(seg.Text)
		}
	}
}

func (e *EbitenRenderer) drawOutcome(screen *ebiten.Image, s state.TurnState) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, float32(sh/2-30), float32(sw), 60, colorPanelBackground, false)

	msg := gotext.Get("GAME_WON")
	clr := color.Color(colorGoal)
	if s == state.Lost {
		msg = gotext.Get("GAME_LOST")
		clr = colorDenied
	}
	msg = renderer.Plain(msg)
	drawText(screen, msg, (float64(sw)-textWidth(msg))/2, float64(sh/2-lineHeight), clr)

	hint := gotext.Get("RETRY_HINT")
	drawText(screen, hint, (float64(sw)-textWidth(hint))/2, float64(sh/2+2), colorSubtle)
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, uiFace, op)
}

func segmentColor(s renderer.Style) color.Color {
	switch s {
	case renderer.StyleHeat:
		return colorHeat
	case renderer.StyleAction:
		return colorAction
	case renderer.StyleEnemy:
		return colorEnemy
	case renderer.StyleGoal:
		return colorGoal
	case renderer.StyleDenied:
		return colorDenied
	case renderer.StyleSubtle:
		return colorSubtle
	}
	return colorText
}

func stateLabel(s state.TurnState) string {
	switch s {
	case state.PlayerTurn:
		return gotext.Get("STATE_PLAYER_TURN")
	case state.EnemyTurn:
		return gotext.Get("STATE_ENEMY_TURN")
	case state.Busy:
		return gotext.Get("STATE_BUSY")
	case state.Won:
		return gotext.Get("STATE_WON")
	case state.Lost:
		return gotext.Get("STATE_LOST")
	}
	return s.String()
}
