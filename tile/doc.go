// Package tile implements the grid composition engine: it partitions a
// display canvas into a rows x cols grid, delegates rectangular tile
// regions to hosted plugins, and composites their outputs (plus optional
// grid borders and background) into one final bitmap.
//
// The pipeline is linear and stateless. A GridSpec and an ordered TileSet
// are validated as a whole (bounds, positive extents, self-reference,
// pairwise non-overlap); a rejected set produces no output. Validated
// tiles are rendered in isolation, sequentially or on a worker pool, with
// every per-tile failure (unknown plugin, render error, panic, timeout)
// absorbed as an in-canvas placeholder so sibling tiles are never
// affected. Borders are drawn last so they stay visible on top.
//
//	spec := &tile.GridSpec{Rows: 2, Cols: 2, DeviceWidth: 200, DeviceHeight: 100}
//	tiles := tile.TileSet{
//		{X: 0, Y: 0, Width: 1, Height: 1, PluginID: "clock"},
//		{X: 1, Y: 0, Width: 1, Height: 1, PluginID: "weather"},
//	}
//	cv, err := tile.Compose(ctx, spec, tiles, registry)
package tile
