package tile

// Validate checks a tile set against a grid spec: positive extents,
// in-bounds placement, sane plugin targets, and pairwise non-overlap.
// hostID is the composing plugin's own identifier; a tile targeting it
// is rejected to prevent recursive self-hosting.
//
// Validate is pure. It returns nil only when every tile passes every
// check; the composer refuses to render anything from a set that did
// not validate, so a bad configuration never produces partial output.
//
// The overlap check is O(N^2) rectangle intersection tests, which is
// fine: N is bounded by the grid cell count (at most 100).
func Validate(spec *GridSpec, tiles TileSet, hostID string) error {
	if err := spec.Check(); err != nil {
		return err
	}

	for i, rec := range tiles {
		switch {
		case rec.X < 0:
			return &ExtentError{Index: i, Field: "x", Value: rec.X}
		case rec.Y < 0:
			return &ExtentError{Index: i, Field: "y", Value: rec.Y}
		case rec.Width <= 0:
			return &ExtentError{Index: i, Field: "width", Value: rec.Width}
		case rec.Height <= 0:
			return &ExtentError{Index: i, Field: "height", Value: rec.Height}
		}

		if rec.X+rec.Width > spec.Cols || rec.Y+rec.Height > spec.Rows {
			return &OutOfBoundsError{Index: i, Rec: rec, Rows: spec.Rows, Cols: spec.Cols}
		}

		if rec.PluginID == "" {
			return &SelfReferenceError{Index: i}
		}
		if rec.PluginID == hostID {
			return &SelfReferenceError{Index: i, HostID: hostID}
		}
	}

	for i := 0; i < len(tiles); i++ {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i].Intersects(tiles[j]) {
				return &OverlapError{I: i, J: j, RecI: tiles[i], RecJ: tiles[j]}
			}
		}
	}

	return nil
}
