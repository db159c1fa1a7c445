package tile

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/arkottke/InkyPi/canvas"
	"github.com/arkottke/InkyPi/plugin"
)

// Resolver looks up a tile's target plugin by id. *plugin.Registry
// implements it.
type Resolver interface {
	Resolve(id string) (plugin.Renderer, error)
}

// renderResult is the outcome of one tile render: an exact-sized bitmap
// in the canvas color mode, which is a placeholder when the plugin
// failed. renderTile never returns anything else, so the composer needs
// no further adaptation before pasting.
type renderResult struct {
	img         *image.RGBA
	placeholder bool
	reason      string
}

// renderTile renders one tile in isolation. Every failure mode of the
// target plugin (unknown id, returned error, panic, timeout, malformed
// output) is absorbed here and converted into a placeholder; nothing
// propagates to sibling tiles or the composer.
func renderTile(ctx context.Context, spec *GridSpec, index int, rec TileRecord, resolver Resolver, o *composeOptions) renderResult {
	rect := spec.PixelRect(rec)
	pw, ph := rect.Dx(), rect.Dy()

	fail := func(reason string) renderResult {
		Logger().Warn("tile render failed",
			"tile", index, "plugin", rec.PluginID, "reason", reason)
		return renderResult{
			img:         placeholderImage(pw, ph, spec.Mode, rec.PluginID),
			placeholder: true,
			reason:      reason,
		}
	}

	p, err := resolver.Resolve(rec.PluginID)
	if err != nil {
		return fail(err.Error())
	}

	scoped := plugin.ScopedConfig{
		Width:  pw,
		Height: ph,
		Mode:   spec.Mode,
		Device: o.device,
	}

	start := time.Now()
	img, err := invoke(ctx, p, scoped, rec.Settings, o.timeout)
	switch {
	case err != nil:
		return fail(err.Error())
	case img == nil:
		return fail("plugin returned no image")
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fail(fmt.Sprintf("plugin returned empty %dx%d image", b.Dx(), b.Dy()))
	}

	Logger().Debug("tile rendered",
		"tile", index, "plugin", rec.PluginID,
		"rect", rect, "elapsed", time.Since(start))

	return renderResult{img: canvas.Normalize(img, pw, ph, spec.Mode)}
}

// invoke runs one plugin render as an independently scoped unit: the
// call happens on its own goroutine so a hung plugin can be abandoned at
// the deadline, and a panicking plugin surfaces as an error instead of
// unwinding the composition.
func invoke(ctx context.Context, p plugin.Renderer, cfg plugin.ScopedConfig, settings plugin.Settings, timeout time.Duration) (image.Image, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		img image.Image
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("plugin panicked: %v", r)}
			}
		}()
		img, err := p.Render(ctx, cfg, settings)
		done <- outcome{img: img, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.img, out.err
	}
}

// Placeholder palette, matching the host's established look: a light red
// wash with black text on color displays, inverted on mono displays.
var (
	placeholderFillRGB = color.NRGBA{R: 255, G: 200, B: 200, A: 255}
	placeholderTextRGB = color.NRGBA{A: 255}

	placeholderFillMono = color.NRGBA{A: 255}
	placeholderTextMono = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// placeholderImage builds the bitmap shown in a tile whose plugin failed:
// a filled rectangle with a short centered diagnostic.
func placeholderImage(w, h int, mode canvas.Mode, pluginID string) *image.RGBA {
	fill, text := placeholderFillRGB, placeholderTextRGB
	if mode == canvas.ModeMono {
		fill, text = placeholderFillMono, placeholderTextMono
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	canvas.DrawCenteredString(img, "Error: "+pluginID, text)
	return img
}
