package sysfont

import (
	"log/slog"

	"github.com/gogpu/sysfont/text"
)

// DefaultFontSize is the font size in pixels used when a Style has none.
const DefaultFontSize = 12

// Option configures a Renderer during creation.
//
// Example:
//
//	r := sysfont.NewRenderer(pub,
//	    sysfont.WithDefaultFontSize(16),
//	    sysfont.WithShaper(text.NewGoTextShaper()),
//	)
type Option func(*config)

// config holds optional configuration for a Renderer.
type config struct {
	library     *text.Library
	shaper      text.Shaper
	fontSize    float64
	flipY       bool
	lineSpacing float64
	workers     int
	logger      *slog.Logger
}

// defaultConfig returns the default renderer configuration.
func defaultConfig() config {
	return config{
		fontSize:    DefaultFontSize,
		flipY:       true,
		lineSpacing: 1,
	}
}

// WithFontLibrary sets the fonts the renderer resolves family names
// against. By default each renderer creates a text.NewLibrary with the
// embedded families.
func WithFontLibrary(lib *text.Library) Option {
	return func(c *config) {
		c.library = lib
	}
}

// WithShaper sets the shaper used for measuring and layout.
// Nil uses text.GetShaper at request time.
func WithShaper(s text.Shaper) Option {
	return func(c *config) {
		c.shaper = s
	}
}

// WithDefaultFontSize sets the size used for styles with a non-positive
// FontSize. Non-positive values are ignored.
func WithDefaultFontSize(px float64) Option {
	return func(c *config) {
		if px > 0 {
			c.fontSize = px
		}
	}
}

// WithFlipY controls whether label rows are flipped vertically before
// upload. It is on by default.
func WithFlipY(flip bool) Option {
	return func(c *config) {
		c.flipY = flip
	}
}

// WithLineSpacing multiplies the distance between baselines.
// Non-positive values are ignored.
func WithLineSpacing(m float64) Option {
	return func(c *config) {
		if m > 0 {
			c.lineSpacing = m
		}
	}
}

// WithWorkers sets the number of goroutines RenderAll rasterizes on.
// Zero or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger sets the logger of one renderer, overriding the package
// logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
