package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// uiFace is the bitmap face used for every label and glyph
var uiFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// textWidth returns the advance of s in pixels
func textWidth(s string) float64 {
	w, _ := text.Measure(s, uiFace, lineHeight)
	return w
}
