package tile

import (
	"fmt"

	"github.com/arkottke/InkyPi/plugin"
)

// TileRecord is one configured tile: a rectangle of grid cells assigned
// to a target plugin, plus that plugin's opaque settings.
type TileRecord struct {
	// X and Y are the top-left cell coordinates, zero-based.
	X int
	Y int

	// Width and Height are the tile's extent in cells, at least 1.
	Width  int
	Height int

	// PluginID identifies the plugin that renders this tile.
	PluginID string

	// Settings is handed to the plugin unmodified.
	Settings plugin.Settings
}

// String formats the record for diagnostics.
func (r TileRecord) String() string {
	return fmt.Sprintf("(%d,%d %dx%d -> %q)", r.X, r.Y, r.Width, r.Height, r.PluginID)
}

// Intersects reports whether the cell rectangles of r and o overlap.
// Two axis-aligned rectangles overlap iff their x ranges and y ranges
// both intersect.
func (r TileRecord) Intersects(o TileRecord) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// TileSet is an ordered sequence of tiles. Insertion order is the render
// order and the tie-break for diagnostics; it carries no uniqueness
// constraint beyond the validator's non-overlap check.
type TileSet []TileRecord
