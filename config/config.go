// Package config parses the loosely-typed JSON a tile layout arrives as
// (device description plus grid settings with a tile placement array)
// into the strongly-typed GridSpec and TileSet the compositor consumes.
//
// All shape problems are caught here, before validation logic proper:
// a malformed entry is rejected with an error naming the offending entry
// index and field.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arkottke/InkyPi/canvas"
	"github.com/arkottke/InkyPi/plugin"
	"github.com/arkottke/InkyPi/tile"
)

// Default cosmetics, applied when the settings JSON omits them.
const (
	DefaultGridSize        = "4x4"
	DefaultBorderColor     = "#cccccc"
	DefaultBackgroundColor = "#ffffff"
)

// Device describes the physical display a layout is composed for.
type Device struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Orientation is "horizontal" (default) or "vertical"; vertical
	// swaps the reported resolution.
	Orientation string `json:"orientation,omitempty"`

	// Color is "color" (default) or "bw".
	Color string `json:"color,omitempty"`

	// Extra carries any additional device settings plugins may query
	// through their scoped configuration.
	Extra map[string]string `json:"extra,omitempty"`
}

// Resolution returns the device resolution with orientation applied.
func (d Device) Resolution() (width, height int) {
	if d.Orientation == "vertical" {
		return d.Height, d.Width
	}
	return d.Width, d.Height
}

// Mode returns the canvas color mode for this device.
func (d Device) Mode() canvas.Mode {
	if d.Color == "bw" {
		return canvas.ModeMono
	}
	return canvas.ModeRGB
}

// Value implements plugin.ConfigSource, so a Device can be attached to a
// composition with tile.WithDevice and queried by hosted plugins.
func (d Device) Value(key string) (string, bool) {
	switch key {
	case "orientation":
		return d.Orientation, d.Orientation != ""
	case "color":
		return d.Color, d.Color != ""
	}
	v, ok := d.Extra[key]
	return v, ok
}

// Settings mirrors the tile layout settings JSON as stored by the
// surrounding application.
type Settings struct {
	GridSize        string `json:"gridSize,omitempty"`
	ShowBorders     *bool  `json:"showBorders,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`

	// TilesConfig is either a JSON array of tile entries or, as older
	// stored settings have it, a string containing that array.
	TilesConfig json.RawMessage `json:"tilesConfig,omitempty"`
}

// File is the top-level document the CLI consumes: a device description
// plus the layout settings.
type File struct {
	Device   Device   `json:"device"`
	Settings Settings `json:"settings"`
}

// ParseFile parses a full layout document.
func ParseFile(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	return f, nil
}

// FieldError reports a malformed value at the configuration boundary,
// attributing it to a specific setting, or to a specific tile entry's
// field when Index >= 0.
type FieldError struct {
	Index  int // tile entry index, -1 for top-level settings
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("config: tile %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Build turns a device description and layout settings into the typed
// GridSpec and TileSet the compositor consumes. Shape errors (bad grid
// size, malformed colors, mistyped tile fields) surface as *FieldError;
// geometry and overlap checking stay with tile.Validate.
func Build(dev Device, s Settings) (*tile.GridSpec, tile.TileSet, error) {
	width, height := dev.Resolution()
	if width <= 0 || height <= 0 {
		return nil, nil, &FieldError{Index: -1, Field: "device",
			Reason: fmt.Sprintf("resolution must be positive, got %dx%d", width, height)}
	}

	cols, rows, err := parseGridSize(s.GridSize)
	if err != nil {
		return nil, nil, err
	}

	borderColor, err := parseColor("borderColor", s.BorderColor, DefaultBorderColor)
	if err != nil {
		return nil, nil, err
	}
	backgroundColor, err := parseColor("backgroundColor", s.BackgroundColor, DefaultBackgroundColor)
	if err != nil {
		return nil, nil, err
	}

	showBorders := true
	if s.ShowBorders != nil {
		showBorders = *s.ShowBorders
	}

	spec := &tile.GridSpec{
		Rows:            rows,
		Cols:            cols,
		DeviceWidth:     width,
		DeviceHeight:    height,
		ShowBorders:     showBorders,
		BorderColor:     borderColor,
		BackgroundColor: backgroundColor,
		Mode:            dev.Mode(),
	}

	tiles, err := parseTiles(s.TilesConfig)
	if err != nil {
		return nil, nil, err
	}

	return spec, tiles, nil
}

// parseGridSize parses a "COLSxROWS" preset such as "4x4". Presets range
// from 2x2 to 10x10. An unknown preset is a configuration error rather
// than a silent fallback, so a typo in stored settings is caught loudly.
func parseGridSize(size string) (cols, rows int, err error) {
	if size == "" {
		size = DefaultGridSize
	}

	c, r, ok := strings.Cut(size, "x")
	if !ok {
		return 0, 0, &FieldError{Index: -1, Field: "gridSize",
			Reason: fmt.Sprintf("%q is not of the form COLSxROWS", size)}
	}

	cols, errC := strconv.Atoi(c)
	rows, errR := strconv.Atoi(r)
	if errC != nil || errR != nil ||
		cols < tile.MinGridDim || cols > tile.MaxGridDim ||
		rows < tile.MinGridDim || rows > tile.MaxGridDim {
		return 0, 0, &FieldError{Index: -1, Field: "gridSize",
			Reason: fmt.Sprintf("%q is not a supported grid size (%dx%d through %dx%d)",
				size, tile.MinGridDim, tile.MinGridDim, tile.MaxGridDim, tile.MaxGridDim)}
	}

	return cols, rows, nil
}

// parseColor parses a hex color setting, applying fallback for an absent
// value and failing for a present but malformed one.
func parseColor(field, value, fallback string) (canvas.Color, error) {
	if value == "" {
		value = fallback
	}
	c, ok := canvas.ParseHex(value)
	if !ok {
		return canvas.Color{}, &FieldError{Index: -1, Field: field,
			Reason: fmt.Sprintf("%q is not a hex color", value)}
	}
	return c, nil
}

// rawTile is the wire form of one tile entry. Pointers distinguish
// absent fields from zero values so defaults can be applied.
type rawTile struct {
	X        *int           `json:"x"`
	Y        *int           `json:"y"`
	Width    *int           `json:"width"`
	Height   *int           `json:"height"`
	PluginID *string        `json:"plugin_id"`
	Settings map[string]any `json:"plugin_settings"`
}

// parseTiles decodes the tile placement array. Entries are decoded one
// at a time so a type error can be attributed to its entry index and
// field.
func parseTiles(raw json.RawMessage) (tile.TileSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	// Older stored settings wrap the array in a JSON string.
	data := []byte(raw)
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, &FieldError{Index: -1, Field: "tilesConfig",
				Reason: "not valid JSON"}
		}
		data = []byte(inner)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &FieldError{Index: -1, Field: "tilesConfig",
			Reason: "not a JSON array of tile entries"}
	}

	tiles := make(tile.TileSet, 0, len(entries))
	for i, entry := range entries {
		var rt rawTile
		if err := json.Unmarshal(entry, &rt); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				return nil, &FieldError{Index: i, Field: typeErr.Field,
					Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
			}
			return nil, &FieldError{Index: i, Field: "entry",
				Reason: "not a JSON object"}
		}

		if rt.PluginID == nil || *rt.PluginID == "" {
			return nil, &FieldError{Index: i, Field: "plugin_id", Reason: "missing"}
		}

		rec := tile.TileRecord{
			Width:    1,
			Height:   1,
			PluginID: *rt.PluginID,
			Settings: plugin.Settings(rt.Settings),
		}
		if rt.X != nil {
			rec.X = *rt.X
		}
		if rt.Y != nil {
			rec.Y = *rt.Y
		}
		if rt.Width != nil {
			rec.Width = *rt.Width
		}
		if rt.Height != nil {
			rec.Height = *rt.Height
		}

		tiles = append(tiles, rec)
	}

	return tiles, nil
}
