// Package plugin defines the contract between the tile compositor and the
// plugins it hosts, and the registry tiles are resolved against.
//
// A plugin renders one bitmap for one tile. It is handed a ScopedConfig
// describing a display exactly the size of its tile, so it never needs to
// know it is being hosted inside a larger canvas.
package plugin

import (
	"context"
	"image"

	"github.com/arkottke/InkyPi/canvas"
)

// ConfigSource exposes device-level settings a plugin may consult beyond
// its pixel dimensions (orientation, hardware model, and so on).
type ConfigSource interface {
	// Value returns the setting for key, and whether it is present.
	Value(key string) (string, bool)
}

// ScopedConfig is the device view handed to a hosted plugin. It reports
// only the tile's pixel dimensions and color mode, never the full
// device's. Non-dimension queries pass through to the parent device.
type ScopedConfig struct {
	Width  int
	Height int
	Mode   canvas.Mode

	// Device is the parent device's configuration, may be nil.
	Device ConfigSource
}

// Value looks up a device setting, passing through to the parent device
// configuration when one is attached.
func (c ScopedConfig) Value(key string) (string, bool) {
	if c.Device == nil {
		return "", false
	}
	return c.Device.Value(key)
}

// Settings is the opaque per-tile configuration blob passed through to
// the target plugin unmodified.
type Settings map[string]any

// String returns the string value for key, or fallback when the key is
// absent or not a string.
func (s Settings) String(key, fallback string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return fallback
}

// Renderer is the single capability a hosted plugin must provide.
//
// Render produces a bitmap for the display described by cfg. The returned
// image need not match cfg's dimensions or color mode exactly; the host
// normalizes it. A failed render returns a non-nil error and is shown as
// a placeholder in the tile's region, never aborting sibling tiles.
type Renderer interface {
	Render(ctx context.Context, cfg ScopedConfig, settings Settings) (image.Image, error)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(ctx context.Context, cfg ScopedConfig, settings Settings) (image.Image, error)

// Render implements Renderer.
func (f RendererFunc) Render(ctx context.Context, cfg ScopedConfig, settings Settings) (image.Image, error) {
	return f(ctx, cfg, settings)
}
