// Package canvas provides the pixel buffer a tile composition is rendered
// into, along with the color handling shared by the compositor and its
// hosted plugins.
package canvas

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Mode is the color mode of a canvas.
type Mode uint8

const (
	// ModeRGB is full 24-bit color.
	ModeRGB Mode = iota

	// ModeMono is 1-bit black and white, as used by monochrome e-ink
	// panels. Pixels are coerced to pure black or pure white.
	ModeMono
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRGB:
		return "RGB"
	case ModeMono:
		return "Mono"
	default:
		return "Unknown"
	}
}

// Canvas represents a rectangular pixel buffer in a single color mode.
type Canvas struct {
	width  int
	height int
	mode   Mode
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// New creates a new canvas with the given dimensions and mode.
func New(width, height int, mode Mode) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		mode:   mode,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.height
}

// Mode returns the color mode of the canvas.
func (c *Canvas) Mode() Mode {
	return c.mode
}

// Data returns the raw pixel data (RGBA format).
func (c *Canvas) Data() []uint8 {
	return c.data
}

// coerce maps a color into the canvas mode. In mono mode the color is
// reduced to pure black or pure white by luma threshold.
func (c *Canvas) coerce(col Color) color.NRGBA {
	if c.mode == ModeMono {
		if col.Luma() < monoThreshold {
			return color.NRGBA{A: 255}
		}
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return col.NRGBA()
}

// SetPixel sets the color of a single pixel.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	n := c.coerce(col)
	i := (y*c.width + x) * 4
	c.data[i+0] = n.R
	c.data[i+1] = n.G
	c.data[i+2] = n.B
	c.data[i+3] = n.A
}

// GetPixel returns the color of a single pixel.
func (c *Canvas) GetPixel(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	i := (y*c.width + x) * 4
	return Color{
		R: float64(c.data[i+0]) / 255,
		G: float64(c.data[i+1]) / 255,
		B: float64(c.data[i+2]) / 255,
		A: float64(c.data[i+3]) / 255,
	}
}

// Clear fills the entire canvas with a color.
func (c *Canvas) Clear(col Color) {
	n := c.coerce(col)
	for i := 0; i < len(c.data); i += 4 {
		c.data[i+0] = n.R
		c.data[i+1] = n.G
		c.data[i+2] = n.B
		c.data[i+3] = n.A
	}
}

// Paste copies src into the canvas with its top-left corner at (x, y).
// The destination region is fully overwritten; there is no blending.
// Src must already be in the canvas color mode (see Normalize); rows are
// copied directly so concurrent pastes into disjoint regions are safe.
func (c *Canvas) Paste(src *image.RGBA, x, y int) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// Clip to the canvas.
	sx := 0
	if x < 0 {
		sx, w, x = -x, w+x, 0
	}
	if x+w > c.width {
		w = c.width - x
	}
	if w <= 0 {
		return
	}

	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= c.height {
			continue
		}
		srcOff := src.PixOffset(b.Min.X+sx, b.Min.Y+row)
		dstOff := (dy*c.width + x) * 4
		copy(c.data[dstOff:dstOff+w*4], src.Pix[srcOff:srcOff+w*4])
	}
}

// HLine draws a 1-pixel horizontal line at row y spanning [x0, x1).
func (c *Canvas) HLine(x0, x1, y int, col Color) {
	for x := x0; x < x1; x++ {
		c.SetPixel(x, y, col)
	}
}

// VLine draws a 1-pixel vertical line at column x spanning [y0, y1).
func (c *Canvas) VLine(x, y0, y1 int, col Color) {
	for y := y0; y < y1; y++ {
		c.SetPixel(x, y, col)
	}
}

// ToImage converts the canvas to an image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.data)
	return img
}

// SavePNG saves the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, c.ToImage())
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.GetPixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.NRGBAModel
}
