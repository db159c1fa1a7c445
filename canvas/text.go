package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// face is the fixed 7x13 bitmap face used for host-drawn text (error
// placeholders, the builtin clock). A bitmap face keeps output
// deterministic: no anti-aliasing, no shaping.
var face = basicfont.Face7x13

// DrawCenteredString draws text centered in img in the given color.
// Text wider than the image is clipped at the image edges.
func DrawCenteredString(img *image.RGBA, text string, col color.Color) {
	b := img.Bounds()

	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Ascent.Ceil() + face.Metrics().Descent.Ceil()

	x := b.Min.X + (b.Dx()-w)/2
	y := b.Min.Y + (b.Dy()-h)/2 + face.Metrics().Ascent.Ceil()

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
