package sysfont

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sysfont/markup"
	"github.com/gogpu/sysfont/text"
)

// Request is one label bound to a texture handle. Its sizes are computed
// when it is created and never change.
//
// A Request is used from one goroutine; only IsReady may be called
// concurrently with Render.
type Request struct {
	renderer *Renderer

	text     string
	segments []markup.Segment
	style    Style

	maxWidth  int
	maxHeight int
	texture   TextureID

	face   text.Face
	layout *text.Layout

	textWidth     int
	textHeight    int
	textureWidth  int
	textureHeight int

	ready atomic.Bool
}

// prepare measures the text, lays it out at the clamped width and pads the
// result to powers of two. The layout depends on the width, so the steps
// run in this order.
func (q *Request) prepare() {
	r := q.renderer
	q.face = r.face(q.style)
	if q.face == nil {
		q.textWidth, q.textHeight = 1, 1
		q.textureWidth, q.textureHeight = 1, 1
		return
	}

	shaper := r.shaper()
	desired := text.DesiredWidth(q.text, q.face, shaper)
	q.textWidth = clampDimension(desired, q.maxWidth)

	q.layout = text.LayoutText(q.text, q.face, text.LayoutOptions{
		MaxWidth:    float64(q.textWidth),
		LineSpacing: r.cfg.lineSpacing,
		Alignment:   q.style.Alignment,
		WrapMode:    text.WrapWordChar,
		Shaper:      shaper,
	})
	q.textHeight = clampDimension(q.layout.Height, q.maxHeight)

	q.textureWidth = NextPowerOfTwo(q.textWidth)
	q.textureHeight = NextPowerOfTwo(q.textHeight)

	r.logger().Debug("sysfont: label measured",
		"texture", uint64(q.texture),
		"desired", desired,
		"lines", len(q.layout.Lines),
		"text_size", fmt.Sprintf("%dx%d", q.textWidth, q.textHeight),
		"texture_size", fmt.Sprintf("%dx%d", q.textureWidth, q.textureHeight))
}

// Text returns the label text with the color tags removed.
func (q *Request) Text() string { return q.text }

// Segments returns a copy of the color segments of the text.
func (q *Request) Segments() []markup.Segment {
	return append([]markup.Segment(nil), q.segments...)
}

// Style returns the style the request was created with.
func (q *Request) Style() Style { return q.style }

// Texture returns the texture handle.
func (q *Request) Texture() TextureID { return q.texture }

// TextWidth returns the width of the label in pixels.
func (q *Request) TextWidth() int { return q.textWidth }

// TextHeight returns the height of the label in pixels.
func (q *Request) TextHeight() int { return q.textHeight }

// TextureWidth returns the texture width, a power of two.
func (q *Request) TextureWidth() int { return q.textureWidth }

// TextureHeight returns the texture height, a power of two.
func (q *Request) TextureHeight() int { return q.textureHeight }

// IsReady reports whether Render has completed at least once.
func (q *Request) IsReady() bool { return q.ready.Load() }

// Layout returns the laid out lines, or nil when no font could be loaded.
func (q *Request) Layout() *text.Layout { return q.layout }

// Rasterize draws the label into a new texture-sized bitmap. The label
// occupies the top-left TextWidth x TextHeight pixels; everything else is
// transparent. Rows of the label are flipped when the renderer flips Y.
func (q *Request) Rasterize() *Bitmap {
	bm := NewBitmap(q.textureWidth, q.textureHeight)
	if q.layout == nil {
		return bm
	}

	segments := q.segments
	colorAt := func(cluster int) color.Color {
		return markup.ColorAt(segments, cluster)
	}
	text.DrawLayout(bm.SubImage(q.textWidth, q.textHeight), q.layout, q.face, 0, 0, colorAt)

	if q.renderer.cfg.flipY {
		bm.FlipRows(q.textHeight)
	}
	return bm
}

// Render rasterizes the label, uploads it to the texture handle with linear
// filtering and clamp-to-edge addressing and marks the request ready.
// Render may be called again; the upload is the same every time.
func (q *Request) Render() error {
	if err := q.check(); err != nil {
		return err
	}
	return q.publish(q.Rasterize())
}

// check reports why the request cannot be uploaded.
func (q *Request) check() error {
	if q.renderer.pub == nil {
		return ErrNoPublisher
	}
	if q.texture == InvalidTexture {
		return ErrInvalidTexture
	}
	return nil
}

// publish uploads a rasterized label and marks the request ready.
func (q *Request) publish(bm *Bitmap) error {
	r := q.renderer
	upload := &Upload{
		Texture:       q.texture,
		Width:         bm.Width(),
		Height:        bm.Height(),
		Pixels:        bm.Data(),
		Format:        gputypes.TextureFormatRGBA8Unorm,
		MinFilter:     gputypes.FilterModeLinear,
		MagFilter:     gputypes.FilterModeLinear,
		AddressModeU:  gputypes.AddressModeClampToEdge,
		AddressModeV:  gputypes.AddressModeClampToEdge,
		Premultiplied: true,
	}
	if err := r.pub.Publish(upload); err != nil {
		return fmt.Errorf("sysfont: publish texture %d: %w", q.texture, err)
	}

	r.logger().Debug("sysfont: label uploaded",
		"texture", uint64(q.texture),
		"width", upload.Width,
		"height", upload.Height)
	q.ready.Store(true)
	return nil
}
