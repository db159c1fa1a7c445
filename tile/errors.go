package tile

import "fmt"

// GridSpecError reports an invalid GridSpec field.
type GridSpecError struct {
	Field string
	Value int
}

func (e *GridSpecError) Error() string {
	switch e.Field {
	case "rows", "cols":
		return fmt.Sprintf("tile: %s must be between %d and %d, got %d",
			e.Field, MinGridDim, MaxGridDim, e.Value)
	case "cell size":
		return "tile: device resolution too small for grid, cell size would be zero"
	default:
		return fmt.Sprintf("tile: %s must be positive, got %d", e.Field, e.Value)
	}
}

// ExtentError reports a tile with a non-positive span or a negative
// position.
type ExtentError struct {
	Index int
	Field string
	Value int
}

func (e *ExtentError) Error() string {
	switch e.Field {
	case "x", "y":
		return fmt.Sprintf("tile: tile %d: %s must not be negative, got %d",
			e.Index, e.Field, e.Value)
	default:
		return fmt.Sprintf("tile: tile %d: %s must be positive, got %d",
			e.Index, e.Field, e.Value)
	}
}

// OutOfBoundsError reports a tile extending past the grid.
type OutOfBoundsError struct {
	Index int
	Rec   TileRecord
	Rows  int
	Cols  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("tile: tile %d %v exceeds the %dx%d grid",
		e.Index, e.Rec, e.Cols, e.Rows)
}

// SelfReferenceError reports a tile targeting the hosting plugin itself,
// which would recurse.
type SelfReferenceError struct {
	Index  int
	HostID string
}

func (e *SelfReferenceError) Error() string {
	if e.HostID == "" {
		return fmt.Sprintf("tile: tile %d: plugin id must not be empty", e.Index)
	}
	return fmt.Sprintf("tile: tile %d targets the hosting plugin %q", e.Index, e.HostID)
}

// OverlapError reports two tiles whose cell rectangles intersect. The
// indices are in insertion order, I < J.
type OverlapError struct {
	I, J int
	RecI TileRecord
	RecJ TileRecord
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("tile: tiles %d %v and %d %v overlap",
		e.I, e.RecI, e.J, e.RecJ)
}
