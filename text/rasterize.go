package text

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// subpixelSteps is the number of horizontal glyph positions rasterized per
// pixel.
const subpixelSteps = 4

// GlyphImage is a rasterized glyph.
type GlyphImage struct {
	// Mask is the coverage of the glyph.
	Mask *image.Alpha

	// Bounds is where Mask goes relative to the integer pen position on the
	// baseline.
	Bounds image.Rectangle
}

// RasterizeOutline renders an outline into an anti-aliased alpha mask,
// shifted right by subX pixels (0 <= subX < 1).
// It returns nil for empty outlines.
func RasterizeOutline(o *GlyphOutline, subX float64) *GlyphImage {
	if o.IsEmpty() || o.Bounds.Empty() {
		return nil
	}

	minX := int(math.Floor(o.Bounds.MinX + subX))
	minY := int(math.Floor(o.Bounds.MinY))
	maxX := int(math.Ceil(o.Bounds.MaxX + subX))
	maxY := int(math.Ceil(o.Bounds.MaxY))
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return nil
	}

	dx := float32(subX) - float32(minX)
	dy := -float32(minY)

	z := vector.NewRasterizer(w, h)
	started := false
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case OutlineOpMoveTo:
			if started {
				z.ClosePath()
			}
			z.MoveTo(p[0].X+dx, p[0].Y+dy)
			started = true
		case OutlineOpLineTo:
			z.LineTo(p[0].X+dx, p[0].Y+dy)
		case OutlineOpQuadTo:
			z.QuadTo(p[0].X+dx, p[0].Y+dy, p[1].X+dx, p[1].Y+dy)
		case OutlineOpCubicTo:
			z.CubeTo(p[0].X+dx, p[0].Y+dy, p[1].X+dx, p[1].Y+dy, p[2].X+dx, p[2].Y+dy)
		}
	}
	if started {
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &GlyphImage{
		Mask:   mask,
		Bounds: image.Rect(minX, minY, maxX, maxY),
	}
}

// quantize splits a position into its integer pixel and the index of its
// subpixel step.
func quantize(pos float64) (int, int) {
	fl := math.Floor(pos)
	step := int(math.Floor((pos - fl) * subpixelSteps))
	if step >= subpixelSteps {
		step = subpixelSteps - 1
	}
	return int(fl), step
}
