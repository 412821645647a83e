package text

// ShapedGlyph is a glyph positioned on a line.
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the index of the first rune of the source text this glyph
	// belongs to. Layout rewrites it to an index into the whole text.
	Cluster int

	// X is the pen position plus any shaping offset, relative to the start
	// of the run. Y is the vertical shaping offset, Y down.
	X, Y float64

	// XAdvance is the horizontal advance to the next glyph.
	XAdvance float64
}
