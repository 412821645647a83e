package sysfont

import (
	"log/slog"
	"math"
	"strings"

	"github.com/gogpu/sysfont/markup"
	"github.com/gogpu/sysfont/text"
)

// Style selects the font and alignment of a label.
type Style struct {
	// FontName is a family name registered in the font library or a
	// generic name such as "sans", "serif" or "monospace". Unknown and
	// empty names use the library default.
	FontName string

	// FontSize is the size in pixels. Non-positive sizes use the
	// renderer's default size.
	FontSize float64

	Bold   bool
	Italic bool

	Alignment Alignment
}

// Renderer creates label requests that share a font library, a shaper and
// a publisher. It is safe for concurrent use.
type Renderer struct {
	pub Publisher
	cfg config
}

// NewRenderer creates a Renderer that uploads through pub.
// A nil pub is allowed; Render then fails with ErrNoPublisher.
func NewRenderer(pub Publisher, opts ...Option) *Renderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.library == nil {
		cfg.library = text.NewLibrary()
	}
	return &Renderer{pub: pub, cfg: cfg}
}

// Library returns the font library of the renderer.
func (r *Renderer) Library() *text.Library {
	return r.cfg.library
}

// Publisher returns the publisher of the renderer.
func (r *Renderer) Publisher() Publisher {
	return r.pub
}

func (r *Renderer) logger() *slog.Logger {
	if r.cfg.logger != nil {
		return r.cfg.logger
	}
	return Logger()
}

func (r *Renderer) shaper() text.Shaper {
	if r.cfg.shaper != nil {
		return r.cfg.shaper
	}
	return text.GetShaper()
}

// NewRequest parses the color tags of raw and computes the label and
// texture sizes. Nothing is rasterized until Render.
//
// maxWidth and maxHeight bound the label in pixels. A label is never
// smaller than 1x1, so non-positive bounds yield a one-pixel dimension.
func (r *Renderer) NewRequest(raw string, style Style, maxWidth, maxHeight int, tex TextureID) *Request {
	plain, segments := markup.Parse(raw)
	req := &Request{
		renderer:  r,
		text:      plain,
		segments:  segments,
		style:     style,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		texture:   tex,
	}
	req.prepare()
	return req
}

// face resolves the font of style, falling back to the library default.
func (r *Renderer) face(style Style) text.Face {
	size := style.FontSize
	if size <= 0 {
		size = r.cfg.fontSize
	}

	src, found := r.cfg.library.Resolve(style.FontName, style.Bold, style.Italic)
	if !found && strings.TrimSpace(style.FontName) != "" {
		r.logger().Warn("sysfont: unknown font family, using default",
			"family", style.FontName,
			"default", r.cfg.library.Default())
	}
	if src == nil {
		return nil
	}
	return src.Face(size)
}

// clampDimension rounds v up, limits it to limit and keeps it at least 1.
// A non-positive limit allows one pixel.
func clampDimension(v float64, limit int) int {
	n := int(math.Ceil(v))
	if n > limit {
		n = limit
	}
	if n <= 0 {
		n = 1
	}
	return n
}
