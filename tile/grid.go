package tile

import (
	"image"

	"github.com/arkottke/InkyPi/canvas"
)

// Grid dimension limits. The smallest supported layout is 2x2, the
// largest 10x10, matching the grid size presets offered to users.
const (
	MinGridDim = 2
	MaxGridDim = 10
)

// GridSpec describes one composition: the grid partition, the device
// resolution it maps onto, and the canvas cosmetics. A GridSpec is
// immutable for the duration of a render.
type GridSpec struct {
	// Rows and Cols partition the display, each in [MinGridDim, MaxGridDim].
	Rows int
	Cols int

	// DeviceWidth and DeviceHeight are the display resolution in pixels.
	DeviceWidth  int
	DeviceHeight int

	// ShowBorders draws 1-pixel grid lines over the finished composition.
	ShowBorders bool

	// BorderColor and BackgroundColor are ignored in mono mode, which
	// always uses black borders on a white background.
	BorderColor     canvas.Color
	BackgroundColor canvas.Color

	// Mode is the color mode of the whole render.
	Mode canvas.Mode
}

// XEdge returns the pixel x coordinate of the i-th vertical grid edge,
// for i in [0, Cols]. Edges are computed cumulatively (i*width/cols) so
// adjacent tiles share exact boundaries with no rounding drift: the grid
// always covers the canvas gap-free.
func (g *GridSpec) XEdge(i int) int {
	return i * g.DeviceWidth / g.Cols
}

// YEdge returns the pixel y coordinate of the j-th horizontal grid edge,
// for j in [0, Rows].
func (g *GridSpec) YEdge(j int) int {
	return j * g.DeviceHeight / g.Rows
}

// CellWidth returns the width of the first grid column in pixels. When
// the device width is not divisible by Cols, individual columns may
// differ by one pixel; per-tile geometry always comes from XEdge.
func (g *GridSpec) CellWidth() int {
	return g.XEdge(1)
}

// CellHeight returns the height of the first grid row in pixels.
func (g *GridSpec) CellHeight() int {
	return g.YEdge(1)
}

// PixelRect returns the exact pixel rectangle of rec on this grid.
func (g *GridSpec) PixelRect(rec TileRecord) image.Rectangle {
	return image.Rect(
		g.XEdge(rec.X),
		g.YEdge(rec.Y),
		g.XEdge(rec.X+rec.Width),
		g.YEdge(rec.Y+rec.Height),
	)
}

// Check verifies the spec's own invariants: grid dimensions in range,
// positive device resolution, and non-degenerate cell size.
func (g *GridSpec) Check() error {
	if g.Rows < MinGridDim || g.Rows > MaxGridDim {
		return &GridSpecError{Field: "rows", Value: g.Rows}
	}
	if g.Cols < MinGridDim || g.Cols > MaxGridDim {
		return &GridSpecError{Field: "cols", Value: g.Cols}
	}
	if g.DeviceWidth <= 0 {
		return &GridSpecError{Field: "deviceWidth", Value: g.DeviceWidth}
	}
	if g.DeviceHeight <= 0 {
		return &GridSpecError{Field: "deviceHeight", Value: g.DeviceHeight}
	}
	if g.CellWidth() <= 0 || g.CellHeight() <= 0 {
		return &GridSpecError{Field: "cell size", Value: 0}
	}
	return nil
}
