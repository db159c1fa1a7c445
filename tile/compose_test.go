package tile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/arkottke/InkyPi/canvas"
	"github.com/arkottke/InkyPi/plugin"
)

// solid returns a stub plugin filling its whole tile with one color.
func solid(c color.NRGBA) plugin.Renderer {
	return plugin.RendererFunc(func(_ context.Context, cfg plugin.ScopedConfig, _ plugin.Settings) (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		return img, nil
	})
}

func failing(msg string) plugin.Renderer {
	return plugin.RendererFunc(func(context.Context, plugin.ScopedConfig, plugin.Settings) (image.Image, error) {
		return nil, errors.New(msg)
	})
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func testRegistry() *plugin.Registry {
	reg := plugin.NewRegistry()
	reg.Register("clock", solid(red))
	reg.Register("weather", solid(green))
	reg.Register("calendar", solid(blue))
	return reg
}

func scenarioSpec() *GridSpec {
	return &GridSpec{
		Rows: 2, Cols: 2,
		DeviceWidth: 200, DeviceHeight: 100,
		BackgroundColor: canvas.White,
	}
}

func scenarioTiles() TileSet {
	return TileSet{
		{X: 0, Y: 0, Width: 1, Height: 1, PluginID: "clock"},
		{X: 1, Y: 0, Width: 1, Height: 1, PluginID: "weather"},
		{X: 0, Y: 1, Width: 2, Height: 1, PluginID: "calendar"},
	}
}

func probe(t *testing.T, cv *canvas.Canvas, x, y int, want color.NRGBA, what string) {
	t.Helper()
	got := cv.GetPixel(x, y).NRGBA()
	if got != want {
		t.Errorf("%s: pixel (%d,%d) = %+v, want %+v", what, x, y, got, want)
	}
}

func TestComposeScenario(t *testing.T) {
	cv, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), testRegistry())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if cv.Width() != 200 || cv.Height() != 100 {
		t.Fatalf("canvas = %dx%d, want 200x100", cv.Width(), cv.Height())
	}

	probe(t, cv, 50, 25, red, "clock in [0,0]-[100,50]")
	probe(t, cv, 150, 25, green, "weather in [100,0]-[200,50]")
	probe(t, cv, 100, 75, blue, "calendar in [0,50]-[200,100]")

	// Exact boundary: column 99 belongs to the clock, column 100 to the
	// weather tile.
	probe(t, cv, 99, 25, red, "last clock column")
	probe(t, cv, 100, 25, green, "first weather column")
	// Row 49 is the last clock row, row 50 the first calendar row.
	probe(t, cv, 25, 49, red, "last clock row")
	probe(t, cv, 25, 50, blue, "first calendar row")
}

func TestComposeOverlapProducesNoCanvas(t *testing.T) {
	tiles := append(scenarioTiles(),
		TileRecord{X: 1, Y: 0, Width: 1, Height: 1, PluginID: "clock"})

	cv, err := Compose(context.Background(), scenarioSpec(), tiles, testRegistry())
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("Compose() error = %v, want OverlapError", err)
	}
	if cv != nil {
		t.Error("Compose returned a canvas alongside a validation error")
	}
	if overlap.I != 1 || overlap.J != 3 {
		t.Errorf("overlap indices = %d,%d, want 1,3", overlap.I, overlap.J)
	}
}

func TestComposeEmptySetIsAllBackground(t *testing.T) {
	spec := scenarioSpec()
	spec.BackgroundColor = canvas.Hex("#123456")

	cv, err := Compose(context.Background(), spec, nil, testRegistry())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}
	for _, p := range [][2]int{{0, 0}, {199, 99}, {100, 50}, {37, 81}} {
		probe(t, cv, p[0], p[1], want, "background")
	}
}

func TestComposeIdempotent(t *testing.T) {
	a, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("two composes of the same input differ")
	}
}

func TestComposeParallelMatchesSequential(t *testing.T) {
	spec := &GridSpec{Rows: 4, Cols: 4, DeviceWidth: 400, DeviceHeight: 400,
		BackgroundColor: canvas.White, ShowBorders: true,
		BorderColor: canvas.Hex("#cccccc")}

	var tiles TileSet
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			id := []string{"clock", "weather", "calendar"}[(x+y)%3]
			tiles = append(tiles, TileRecord{X: x, Y: y, Width: 1, Height: 1, PluginID: id})
		}
	}

	seq, err := Compose(context.Background(), spec, tiles, testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	par, err := Compose(context.Background(), spec, tiles, testRegistry(), WithWorkers(8))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(seq.Data(), par.Data()) {
		t.Error("parallel composition differs from sequential")
	}
}

func TestComposePlaceholderOnFailure(t *testing.T) {
	reg := testRegistry()
	reg.Register("weather", failing("service unavailable"))

	cv, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), reg)
	if err != nil {
		t.Fatalf("Compose() error = %v, want contained failure", err)
	}

	// The failed tile shows the placeholder wash exactly in its region.
	wash := color.NRGBA{R: 255, G: 200, B: 200, A: 255}
	probe(t, cv, 101, 1, wash, "placeholder corner")
	probe(t, cv, 198, 48, wash, "placeholder far corner")

	// Siblings are unaffected.
	probe(t, cv, 50, 25, red, "clock beside failed tile")
	probe(t, cv, 100, 75, blue, "calendar below failed tile")

	// The placeholder does not bleed past the tile boundary.
	probe(t, cv, 99, 1, red, "pixel left of placeholder")
}

func TestComposeUnknownPluginBecomesPlaceholder(t *testing.T) {
	tiles := TileSet{
		{X: 0, Y: 0, Width: 1, Height: 1, PluginID: "nonexistent"},
		{X: 1, Y: 0, Width: 1, Height: 1, PluginID: "weather"},
	}

	cv, err := Compose(context.Background(), scenarioSpec(), tiles, testRegistry())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	wash := color.NRGBA{R: 255, G: 200, B: 200, A: 255}
	probe(t, cv, 1, 1, wash, "unknown plugin placeholder")
	probe(t, cv, 150, 25, green, "registered plugin")
}

func TestComposePanicContained(t *testing.T) {
	reg := testRegistry()
	reg.Register("clock", plugin.RendererFunc(func(context.Context, plugin.ScopedConfig, plugin.Settings) (image.Image, error) {
		panic("boom")
	}))

	cv, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), reg)
	if err != nil {
		t.Fatalf("Compose() error = %v, want contained panic", err)
	}
	wash := color.NRGBA{R: 255, G: 200, B: 200, A: 255}
	probe(t, cv, 1, 1, wash, "panicking plugin placeholder")
}

func TestComposeTimeoutBecomesPlaceholder(t *testing.T) {
	reg := testRegistry()
	reg.Register("clock", plugin.RendererFunc(func(ctx context.Context, _ plugin.ScopedConfig, _ plugin.Settings) (image.Image, error) {
		<-ctx.Done() // simulate a hang until cancelled
		return nil, ctx.Err()
	}))

	start := time.Now()
	cv, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), reg,
		WithRenderTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("composition blocked for %v", elapsed)
	}

	wash := color.NRGBA{R: 255, G: 200, B: 200, A: 255}
	probe(t, cv, 1, 1, wash, "timed-out plugin placeholder")
	probe(t, cv, 150, 25, green, "sibling of timed-out tile")
}

func TestComposeNilOutputBecomesPlaceholder(t *testing.T) {
	reg := testRegistry()
	reg.Register("clock", plugin.RendererFunc(func(context.Context, plugin.ScopedConfig, plugin.Settings) (image.Image, error) {
		return nil, nil
	}))

	cv, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), reg)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	wash := color.NRGBA{R: 255, G: 200, B: 200, A: 255}
	probe(t, cv, 1, 1, wash, "nil output placeholder")
}

func TestComposeResizesWrongSizedOutput(t *testing.T) {
	reg := testRegistry()
	// Plugin ignores the scoped dimensions and renders 10x10.
	reg.Register("clock", plugin.RendererFunc(func(context.Context, plugin.ScopedConfig, plugin.Settings) (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, 10, 10))
		draw.Draw(img, img.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)
		return img, nil
	}))

	cv, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), reg)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	// The 10x10 output is stretched over the whole 100x50 tile.
	probe(t, cv, 1, 1, red, "stretched top-left")
	probe(t, cv, 99, 49, red, "stretched bottom-right")
}

func TestComposeBordersOnTop(t *testing.T) {
	spec := scenarioSpec()
	spec.ShowBorders = true
	spec.BorderColor = canvas.Hex("#cccccc")

	cv, err := Compose(context.Background(), scenarioSpec(), scenarioTiles(), testRegistry())
	if err != nil {
		t.Fatal(err)
	}
	// Without borders the internal boundary belongs to the tiles.
	probe(t, cv, 100, 25, green, "no border drawn")

	cv, err = Compose(context.Background(), spec, scenarioTiles(), testRegistry())
	if err != nil {
		t.Fatal(err)
	}

	grey := color.NRGBA{R: 204, G: 204, B: 204, A: 255}
	probe(t, cv, 100, 25, grey, "internal vertical border over tile")
	probe(t, cv, 25, 50, grey, "internal horizontal border over tile")
	probe(t, cv, 0, 25, grey, "left perimeter")
	probe(t, cv, 199, 75, grey, "right perimeter")
	probe(t, cv, 150, 0, grey, "top perimeter")
	probe(t, cv, 50, 99, grey, "bottom perimeter")

	// Tiles remain visible between the borders.
	probe(t, cv, 50, 25, red, "tile next to border")
}

func TestComposeMonoForcesPalette(t *testing.T) {
	spec := scenarioSpec()
	spec.Mode = canvas.ModeMono
	spec.ShowBorders = true
	spec.BackgroundColor = canvas.Hex("#ff0000") // ignored in mono
	spec.BorderColor = canvas.Hex("#00ff00")     // ignored in mono

	// One tile only; the rest of the canvas is background.
	tiles := TileSet{{X: 0, Y: 0, Width: 1, Height: 1, PluginID: "clock"}}

	cv, err := Compose(context.Background(), spec, tiles, testRegistry())
	if err != nil {
		t.Fatal(err)
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}

	// Background is white, borders black, regardless of configuration.
	probe(t, cv, 150, 75, white, "mono background")
	probe(t, cv, 100, 75, black, "mono border")

	// The red tile thresholds to black (luma 76).
	probe(t, cv, 50, 25, black, "red tile in mono")
}

func TestComposeSelfHostingRejected(t *testing.T) {
	tiles := TileSet{{X: 0, Y: 0, Width: 1, Height: 1, PluginID: "grid"}}

	_, err := Compose(context.Background(), scenarioSpec(), tiles, testRegistry(),
		WithHostID("grid"))
	var self *SelfReferenceError
	if !errors.As(err, &self) {
		t.Fatalf("Compose() error = %v, want SelfReferenceError", err)
	}
}

func TestComposeScopedConfigReportsTileSize(t *testing.T) {
	var got [][2]int
	reg := plugin.NewRegistry()
	reg.Register("probe", plugin.RendererFunc(func(_ context.Context, cfg plugin.ScopedConfig, _ plugin.Settings) (image.Image, error) {
		got = append(got, [2]int{cfg.Width, cfg.Height})
		return image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)), nil
	}))

	tiles := TileSet{
		{X: 0, Y: 0, Width: 1, Height: 1, PluginID: "probe"},
		{X: 0, Y: 1, Width: 2, Height: 1, PluginID: "probe"},
	}
	_, err := Compose(context.Background(), scenarioSpec(), tiles, reg)
	if err != nil {
		t.Fatal(err)
	}

	want := [][2]int{{100, 50}, {200, 50}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("scoped dimensions = %v, want %v", got, want)
	}
}
