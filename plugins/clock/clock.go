// Package clock is a builtin plugin rendering the current time as text.
// It exists chiefly to exercise the hosted-plugin render contract end to
// end; the interesting machinery lives in the tile package.
package clock

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/arkottke/InkyPi/canvas"
	"github.com/arkottke/InkyPi/plugin"
)

// ID is the registry identifier for this plugin.
const ID = "clock"

// Plugin renders a digital clock. Settings:
//
//	"format": a Go time layout, default "15:04"
type Plugin struct {
	// Now supplies the displayed time; overridden in tests for
	// deterministic output. Defaults to time.Now.
	Now func() time.Time
}

// New creates a clock plugin using the wall clock.
func New() *Plugin {
	return &Plugin{Now: time.Now}
}

// Render implements plugin.Renderer.
func (p *Plugin) Render(_ context.Context, cfg plugin.ScopedConfig, settings plugin.Settings) (image.Image, error) {
	format := settings.String("format", "15:04")

	// Black on white reads the same on color and mono panels.
	fg := color.NRGBA{A: 255}
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	canvas.DrawCenteredString(img, p.Now().Format(format), fg)
	return img, nil
}
