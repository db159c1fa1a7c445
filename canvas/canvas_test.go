package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	cv := New(200, 100, ModeRGB)
	if cv.Width() != 200 {
		t.Errorf("Width = %d, want 200", cv.Width())
	}
	if cv.Height() != 100 {
		t.Errorf("Height = %d, want 100", cv.Height())
	}
	if cv.Mode() != ModeRGB {
		t.Errorf("Mode = %v, want ModeRGB", cv.Mode())
	}
	if len(cv.Data()) != 200*100*4 {
		t.Errorf("Data length = %d, want %d", len(cv.Data()), 200*100*4)
	}
}

func TestClear(t *testing.T) {
	cv := New(10, 10, ModeRGB)
	cv.Clear(RGB(1, 0, 0))

	px := cv.GetPixel(5, 5)
	if px.R != 1.0 || px.G != 0.0 || px.B != 0.0 {
		t.Errorf("Pixel color = %+v, want red", px)
	}
}

func TestMonoCoercion(t *testing.T) {
	cv := New(4, 4, ModeMono)

	// Dark colors snap to black, light colors to white.
	cv.SetPixel(0, 0, RGB(0.2, 0.2, 0.2))
	cv.SetPixel(1, 0, RGB(0.9, 0.9, 0.9))

	if got := cv.GetPixel(0, 0); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("dark pixel = %+v, want black", got)
	}
	if got := cv.GetPixel(1, 0); got.R != 1 || got.G != 1 || got.B != 1 {
		t.Errorf("light pixel = %+v, want white", got)
	}
}

func TestPaste(t *testing.T) {
	cv := New(10, 10, ModeRGB)
	cv.Clear(White)

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.NRGBA{B: 255, A: 255}), image.Point{}, draw.Src)
	cv.Paste(src, 3, 3)

	if got := cv.GetPixel(4, 4); got.B != 1 || got.R != 0 {
		t.Errorf("pixel inside paste = %+v, want blue", got)
	}
	if got := cv.GetPixel(2, 2); got.R != 1 || got.G != 1 || got.B != 1 {
		t.Errorf("pixel outside paste = %+v, want white", got)
	}
	// Paste overwrites fully: last row/col of the region.
	if got := cv.GetPixel(6, 6); got.B != 1 {
		t.Errorf("pixel at paste edge = %+v, want blue", got)
	}
	if got := cv.GetPixel(7, 7); got.B != 0 {
		t.Errorf("pixel past paste edge = %+v, want white", got)
	}
}

func TestPasteDisjointConcurrent(t *testing.T) {
	// Concurrent pastes into disjoint regions must not interfere.
	cv := New(100, 100, ModeRGB)

	mk := func(c color.NRGBA) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 50, 50))
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		return img
	}

	quads := []struct {
		x, y int
		c    color.NRGBA
	}{
		{0, 0, color.NRGBA{R: 255, A: 255}},
		{50, 0, color.NRGBA{G: 255, A: 255}},
		{0, 50, color.NRGBA{B: 255, A: 255}},
		{50, 50, color.NRGBA{R: 255, G: 255, A: 255}},
	}

	var wg sync.WaitGroup
	for _, q := range quads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cv.Paste(mk(q.c), q.x, q.y)
		}()
	}
	wg.Wait()

	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{25, 25, color.NRGBA{R: 255, A: 255}},
		{75, 25, color.NRGBA{G: 255, A: 255}},
		{25, 75, color.NRGBA{B: 255, A: 255}},
		{75, 75, color.NRGBA{R: 255, G: 255, A: 255}},
	}
	for _, c := range checks {
		got := cv.GetPixel(c.x, c.y).NRGBA()
		if got != c.want {
			t.Errorf("pixel (%d,%d) = %+v, want %+v", c.x, c.y, got, c.want)
		}
	}
}

func TestLines(t *testing.T) {
	cv := New(10, 10, ModeRGB)
	cv.Clear(White)

	cv.HLine(0, 10, 5, Black)
	cv.VLine(3, 0, 10, Black)

	if got := cv.GetPixel(7, 5); got.R != 0 {
		t.Errorf("pixel on hline = %+v, want black", got)
	}
	if got := cv.GetPixel(3, 8); got.R != 0 {
		t.Errorf("pixel on vline = %+v, want black", got)
	}
	if got := cv.GetPixel(7, 4); got.R != 1 {
		t.Errorf("pixel off lines = %+v, want white", got)
	}
}

func TestToImage(t *testing.T) {
	cv := New(5, 5, ModeRGB)
	cv.Clear(RGB(0, 1, 0))

	img := cv.ToImage()
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 5 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(2, 2).RGBA()
	if r != 0 || g != 0xffff || b != 0 {
		t.Errorf("image pixel = %d,%d,%d, want green", r, g, b)
	}

	// ToImage copies; mutating the image must not touch the canvas.
	img.Pix[0] = 123
	if cv.Data()[0] == 123 {
		t.Error("ToImage shares the canvas buffer")
	}
}
