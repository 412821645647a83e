package sysfont

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Bitmap is a rectangular RGBA pixel buffer with premultiplied alpha, rows
// top to bottom with a stride of Width*4. It implements draw.Image.
type Bitmap struct {
	img *image.RGBA
}

// NewBitmap creates a transparent bitmap with the given dimensions.
// Non-positive dimensions are treated as 0.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Width returns the width of the bitmap.
func (b *Bitmap) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the height of the bitmap.
func (b *Bitmap) Height() int {
	return b.img.Rect.Dy()
}

// Data returns the raw pixel data. The slice aliases the bitmap.
func (b *Bitmap) Data() []uint8 {
	return b.img.Pix
}

// Image returns the bitmap as an *image.RGBA sharing its pixels.
func (b *Bitmap) Image() *image.RGBA {
	return b.img
}

// SubImage returns the top-left w x h part of the bitmap as a draw target
// sharing its pixels.
func (b *Bitmap) SubImage(w, h int) *image.RGBA {
	return b.img.SubImage(image.Rect(0, 0, w, h)).(*image.RGBA)
}

// FlipRows reverses the order of the first n rows. Rows at and below n are
// left untouched. n is clamped to the bitmap height.
func (b *Bitmap) FlipRows(n int) {
	n = min(n, b.Height())
	stride := b.img.Stride
	tmp := make([]uint8, stride)
	for top, bottom := 0, n-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := b.img.Pix[top*stride : (top+1)*stride]
		u := b.img.Pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
}

// Clear makes every pixel transparent.
func (b *Bitmap) Clear() {
	clear(b.img.Pix)
}

// WritePNG encodes the bitmap as PNG.
func (b *Bitmap) WritePNG(w io.Writer) error {
	return png.Encode(w, b.img)
}

// SavePNG saves the bitmap to a PNG file.
func (b *Bitmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := b.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	return b.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (b *Bitmap) Bounds() image.Rectangle {
	return b.img.Rect
}

// ColorModel implements the image.Image interface.
func (b *Bitmap) ColorModel() color.Model {
	return color.RGBAModel
}

// Set implements the draw.Image interface.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.img.Set(x, y, c)
}
