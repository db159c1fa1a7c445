package tile

import (
	"time"

	"github.com/arkottke/InkyPi/plugin"
)

// DefaultHostID is the plugin identifier the compositor itself is
// registered under. A tile may never target it.
const DefaultHostID = "tile"

// Option configures a composition.
//
// Example:
//
//	cv, err := tile.Compose(ctx, spec, tiles, reg,
//		tile.WithWorkers(4),
//		tile.WithRenderTimeout(10*time.Second))
type Option func(*composeOptions)

// composeOptions holds optional configuration for one composition.
type composeOptions struct {
	workers int
	timeout time.Duration
	hostID  string
	device  plugin.ConfigSource
}

// defaultOptions returns the default composition options.
func defaultOptions() composeOptions {
	return composeOptions{
		workers: 1, // sequential unless asked otherwise
		hostID:  DefaultHostID,
	}
}

// WithWorkers renders tiles concurrently on n workers. n <= 0 uses one
// worker per available CPU. Tiles write to disjoint canvas regions, so
// concurrency does not change the output.
func WithWorkers(n int) Option {
	return func(o *composeOptions) {
		o.workers = n
	}
}

// WithRenderTimeout bounds each individual plugin invocation. A plugin
// exceeding d is abandoned and its tile shows a placeholder; sibling
// tiles are unaffected. Zero means no timeout.
func WithRenderTimeout(d time.Duration) Option {
	return func(o *composeOptions) {
		o.timeout = d
	}
}

// WithHostID overrides the compositor's own plugin identifier used by
// the self-reference check.
func WithHostID(id string) Option {
	return func(o *composeOptions) {
		o.hostID = id
	}
}

// WithDevice attaches the parent device configuration, so plugins can
// pass through non-dimension queries (orientation, hardware model).
func WithDevice(src plugin.ConfigSource) Option {
	return func(o *composeOptions) {
		o.device = src
	}
}
