// Package script is a builtin plugin that renders a tile from a
// user-supplied Lua snippet, for dashboards that need a custom readout
// without writing a Go plugin.
//
// The snippet runs in a fresh Lua state per render with a small pixel
// API in scope:
//
//	width, height          -- tile dimensions in pixels
//	fill(r, g, b)          -- flood the tile with a color (components 0..255)
//	set_pixel(x, y, r, g, b)
//	rect(x, y, w, h, r, g, b)
//
// Settings:
//
//	"script": the Lua source (required)
package script

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/arkottke/InkyPi/plugin"
)

// ID is the registry identifier for this plugin.
const ID = "script"

// ErrNoScript reports a tile configured with no "script" setting.
var ErrNoScript = errors.New("script: no script configured")

// Plugin runs Lua snippets against a per-render pixel buffer, caching
// compiled chunks across renders.
type Plugin struct {
	protos *lru.Cache[string, *glua.FunctionProto]
}

// protoCacheSize bounds the compiled-chunk cache. A dashboard reuses the
// same handful of snippets across renders, so this stays small.
const protoCacheSize = 32

// New creates a script plugin with an empty compilation cache.
func New() *Plugin {
	cache, _ := lru.New[string, *glua.FunctionProto](protoCacheSize)
	return &Plugin{protos: cache}
}

// Render implements plugin.Renderer. Each render gets its own Lua state;
// only compiled function prototypes are shared, and those are immutable.
func (p *Plugin) Render(ctx context.Context, cfg plugin.ScopedConfig, settings plugin.Settings) (image.Image, error) {
	src := settings.String("script", "")
	if src == "" {
		return nil, ErrNoScript
	}

	proto, err := p.compile(src)
	if err != nil {
		return nil, err
	}

	L := glua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	registerAPI(L, img)

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, glua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	return img, nil
}

// compile returns the cached prototype for src, compiling on a miss.
func (p *Plugin) compile(src string) (*glua.FunctionProto, error) {
	if proto, ok := p.protos.Get(src); ok {
		return proto, nil
	}

	chunk, err := parse.Parse(strings.NewReader(src), "tile")
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	proto, err := glua.Compile(chunk, "tile")
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	p.protos.Add(src, proto)
	return proto, nil
}

// registerAPI installs the pixel API into L, drawing onto img.
func registerAPI(L *glua.LState, img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	setPixel := func(x, y int, c color.NRGBA) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		img.Set(x, y, c)
	}

	argColor := func(L *glua.LState, first int) color.NRGBA {
		return color.NRGBA{
			R: uint8(L.CheckInt(first)),
			G: uint8(L.CheckInt(first + 1)),
			B: uint8(L.CheckInt(first + 2)),
			A: 255,
		}
	}

	L.SetGlobal("width", glua.LNumber(w))
	L.SetGlobal("height", glua.LNumber(h))

	L.SetGlobal("fill", L.NewFunction(func(L *glua.LState) int {
		c := argColor(L, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				setPixel(x, y, c)
			}
		}
		return 0
	}))

	L.SetGlobal("set_pixel", L.NewFunction(func(L *glua.LState) int {
		x, y := L.CheckInt(1), L.CheckInt(2)
		setPixel(x, y, argColor(L, 3))
		return 0
	}))

	L.SetGlobal("rect", L.NewFunction(func(L *glua.LState) int {
		rx, ry := L.CheckInt(1), L.CheckInt(2)
		rw, rh := L.CheckInt(3), L.CheckInt(4)
		c := argColor(L, 5)
		for y := ry; y < ry+rh; y++ {
			for x := rx; x < rx+rw; x++ {
				setPixel(x, y, c)
			}
		}
		return 0
	}))
}
