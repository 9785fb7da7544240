package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "sunstroke/pkg/engine/input"
	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/renderer"
)

// repeatKeys are held to walk; codes match the input bindings
var repeatKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyL, "l"},
}

// pressKeys fire once per press
var pressKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeySpace, "space"},
	{ebiten.KeyE, "e"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyF5, "f5"},
	{ebiten.KeyP, "p"},
	{ebiten.KeyY, "y"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
}

// checkInput returns the intent for this tick's keyboard or mouse input
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	now := time.Now()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if c, ok := e.layout().CellAt(mx, my); ok {
			if _, onBoard := e.frame.Tile(c); onBoard {
				return e.intentFor(engineinput.DeviceMouse, "mouse_left", c, now)
			}
		}
	}

	for _, k := range repeatKeys {
		if e.repeat.Should(k.code, ebiten.IsKeyPressed(k.key), now) {
			return e.intentFor(engineinput.DeviceKeyboard, k.code, world.Coord{}, now)
		}
	}
	for _, k := range pressKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			return e.intentFor(engineinput.DeviceKeyboard, k.code, world.Coord{}, now)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && ebiten.IsKeyPressed(ebiten.KeyControl) {
		return e.intentFor(engineinput.DeviceKeyboard, "ctrl_c", world.Coord{}, now)
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}

func (e *EbitenRenderer) intentFor(device engineinput.Device, code string, at world.Coord, now time.Time) engineinput.Intent {
	return e.bindings.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device:    device,
		Code:      code,
		At:        at,
		Timestamp: now,
	}))
}

func (e *EbitenRenderer) layout() renderer.BoardLayout {
	l := renderer.BoardLayout{OriginX: boardMargin, OriginY: headerHeight, TileSize: e.tileSize, Gap: tileGap}
	if e.frame != nil {
		l.Lo = e.frame.Lo
	}
	return l
}

// handleZoom grows or shrinks tiles with =/- and resets them with 0
func (e *EbitenRenderer) handleZoom() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		e.tileSize = min(e.tileSize+tileSizeStep, maxTileSize)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		e.tileSize = max(e.tileSize-tileSizeStep, minTileSize)
	case inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0):
		e.tileSize = defaultTileSize
	}
}
