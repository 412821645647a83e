package text

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// ColorFunc returns the color of the glyph whose cluster starts at rune
// index cluster.
type ColorFunc func(cluster int) color.Color

// DrawLayout draws every line of l onto dst with the top-left corner of the
// layout at (x, y). Glyphs are anti-aliased and composited with draw.Over.
// A nil colorAt draws everything black.
func DrawLayout(dst draw.Image, l *Layout, face Face, x, y float64, colorAt ColorFunc) {
	if l == nil || face == nil {
		return
	}
	source := face.Source()
	if source == nil {
		return
	}
	if colorAt == nil {
		colorAt = func(int) color.Color { return color.Black }
	}

	type maskKey struct {
		gid  GlyphID
		step int
	}
	masks := make(map[maskKey]*GlyphImage)
	size := face.Size()
	clip := dst.Bounds()

	for _, line := range l.Lines {
		baseY := int(math.Round(y + line.Baseline))
		if baseY-int(math.Ceil(l.Ascent)) >= clip.Max.Y || baseY+int(math.Ceil(l.Descent)) < clip.Min.Y {
			continue
		}
		for _, g := range line.Glyphs {
			px, step := quantize(x + line.X + g.X)
			key := maskKey{g.GID, step}
			img, ok := masks[key]
			if !ok {
				outline, err := source.Outline(g.GID, size)
				if err == nil {
					img = RasterizeOutline(outline, float64(step)/subpixelSteps)
				}
				masks[key] = img
			}
			if img == nil {
				continue
			}

			r := img.Bounds.Add(image.Pt(px, baseY+int(math.Round(g.Y))))
			draw.DrawMask(dst, r, image.NewUniform(colorAt(g.Cluster)), image.Point{}, img.Mask, image.Point{}, draw.Over)
		}
	}
}

// Measure returns the unwrapped width of text and the height of one line.
func Measure(text string, face Face) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return DesiredWidth(text, face, nil), face.Metrics().Height()
}
