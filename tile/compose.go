package tile

import (
	"context"
	"sync/atomic"

	"github.com/arkottke/InkyPi/canvas"
	"github.com/arkottke/InkyPi/internal/parallel"
)

// Compose validates tiles against spec and renders them into a single
// canvas of the device resolution.
//
// Validation is atomic: on any configuration error Compose returns
// (nil, err) and produces no output. Once validation has succeeded the
// composition itself never fails; per-tile runtime failures are absorbed
// as in-canvas placeholders (see renderTile).
//
// Tiles are rendered in insertion order when sequential. With
// WithWorkers(n > 1) they render concurrently: each tile owns its
// destination sub-rectangle exclusively and the validator proved the
// rectangles disjoint, so unlocked writes into the shared canvas buffer
// are safe. Order does not affect the result either way; identical
// inputs with deterministic plugins yield byte-identical canvases.
func Compose(ctx context.Context, spec *GridSpec, tiles TileSet, resolver Resolver, opts ...Option) (*canvas.Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := Validate(spec, tiles, o.hostID); err != nil {
		return nil, err
	}

	cv := canvas.New(spec.DeviceWidth, spec.DeviceHeight, spec.Mode)

	// Mono panels always compose on white, mirroring the hardware's
	// idle state; the configured background applies to color panels.
	background := spec.BackgroundColor
	if spec.Mode == canvas.ModeMono {
		background = canvas.White
	}
	cv.Clear(background)

	var placeholders atomic.Int64
	renderOne := func(i int) func() {
		rec := tiles[i]
		return func() {
			res := renderTile(ctx, spec, i, rec, resolver, &o)
			if res.placeholder {
				placeholders.Add(1)
			}
			rect := spec.PixelRect(rec)
			cv.Paste(res.img, rect.Min.X, rect.Min.Y)
		}
	}

	if o.workers != 1 && len(tiles) > 1 {
		pool := parallel.NewPool(o.workers)
		work := make([]func(), len(tiles))
		for i := range tiles {
			work[i] = renderOne(i)
		}
		pool.ExecuteAll(work)
		pool.Close()
	} else {
		for i := range tiles {
			renderOne(i)()
		}
	}

	// Borders go on after every tile has been pasted so they are always
	// visible on top.
	if spec.ShowBorders {
		drawBorders(cv, spec)
	}

	Logger().Debug("composition finished",
		"tiles", len(tiles), "placeholders", placeholders.Load(),
		"cols", spec.Cols, "rows", spec.Rows,
		"mode", spec.Mode.String())

	return cv, nil
}

// drawBorders draws 1-pixel lines along every internal grid-cell
// boundary and the canvas perimeter.
func drawBorders(cv *canvas.Canvas, spec *GridSpec) {
	col := spec.BorderColor
	if spec.Mode == canvas.ModeMono {
		col = canvas.Black
	}

	w, h := spec.DeviceWidth, spec.DeviceHeight

	for i := 1; i < spec.Cols; i++ {
		cv.VLine(spec.XEdge(i), 0, h, col)
	}
	for j := 1; j < spec.Rows; j++ {
		cv.HLine(0, w, spec.YEdge(j), col)
	}

	// Perimeter.
	cv.HLine(0, w, 0, col)
	cv.HLine(0, w, h-1, col)
	cv.VLine(0, 0, h, col)
	cv.VLine(w-1, 0, h, col)
}
