package canvas

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// monoThreshold is the luma cutoff between black and white when reducing
// a color to a monochrome display.
const monoThreshold = 128

// Normalize adapts a plugin-produced image to exactly width x height in
// the given color mode. Images of the wrong size are resized with a
// bilinear scaler; color content is coerced to the target mode. The
// mapping is deterministic: the same input always yields the same output.
func Normalize(src image.Image, width, height int, mode Mode) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	} else {
		xdraw.BiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}

	if mode == ModeMono {
		thresholdInPlace(dst)
	}
	return dst
}

// thresholdInPlace reduces every pixel of img to pure black or pure white
// by BT.601 luma, and forces full opacity.
func thresholdInPlace(img *image.RGBA) {
	p := img.Pix
	for i := 0; i < len(p); i += 4 {
		// Fixed-point BT.601: (299R + 587G + 114B) / 1000.
		y := (299*int(p[i]) + 587*int(p[i+1]) + 114*int(p[i+2])) / 1000
		var v uint8
		if y >= monoThreshold {
			v = 255
		}
		p[i], p[i+1], p[i+2], p[i+3] = v, v, v, 255
	}
}
