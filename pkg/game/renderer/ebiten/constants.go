package ebiten

import (
	"image/color"
	"time"
)

// Colour palette, sun-bleached
var (
	colorBackground      = color.RGBA{43, 29, 14, 255}
	colorBoardBackground = color.RGBA{26, 18, 8, 255}
	colorPlayer          = color.RGBA{0, 255, 0, 255}
	colorEnemy           = color.RGBA{255, 80, 80, 255}
	colorThreatBg        = color.RGBA{110, 30, 30, 220}
	colorStart           = color.RGBA{70, 110, 170, 255}
	colorGoal            = color.RGBA{255, 215, 0, 255}
	colorSun             = color.RGBA{201, 166, 107, 255}
	colorBurn            = color.RGBA{255, 106, 0, 255}
	colorShade           = color.RGBA{95, 168, 168, 255}
	colorDrink           = color.RGBA{68, 204, 255, 255}
	colorBlocked         = color.RGBA{90, 80, 70, 255}
	colorHoverBg         = color.RGBA{255, 255, 255, 40}
	colorText            = color.RGBA{243, 227, 195, 255}
	colorSubtle          = color.RGBA{160, 140, 110, 255}
	colorHeat            = color.RGBA{255, 120, 60, 255}
	colorAction          = color.RGBA{220, 170, 255, 255}
	colorDenied          = color.RGBA{255, 100, 100, 255}
	colorPanelBackground = color.RGBA{30, 20, 10, 220}
)

// Layout in pixels
const (
	defaultTileSize = 40
	minTileSize     = 16
	maxTileSize     = 96
	tileSizeStep    = 8
	tileGap         = 2
	boardMargin     = 16
	headerHeight    = 56
	messagesHeight  = 96
	lineHeight      = 16

	windowWidth  = 800
	windowHeight = 600
)

// Key repeat timings
const (
	keyRepeatInitialDelay = 350 * time.Millisecond
	keyRepeatInterval     = 120 * time.Millisecond
)
