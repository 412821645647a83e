package text

// BuiltinShaper places one glyph per rune using the font's advances.
// It handles Latin, Cyrillic, Greek, CJK and other scripts that need no
// contextual shaping. Right-to-left runs are mirrored into visual order but
// get no contextual forms; use GoTextShaper for Arabic or Indic text.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements the Shaper interface.
func (s *BuiltinShaper) Shape(text string, face Face, dir Direction) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}
	source := face.Source()
	if source == nil {
		return nil
	}
	parsed := source.Parsed()
	if parsed == nil {
		return nil
	}

	runes := []rune(text)
	result := make([]ShapedGlyph, 0, len(runes))
	size := face.Size()

	var x float64
	emit := func(cluster int) {
		r, _ := normalizeRune(runes[cluster])
		gid := parsed.GlyphIndex(r)
		advance := parsed.GlyphAdvance(gid, size)
		result = append(result, ShapedGlyph{
			GID:      GlyphID(gid),
			Cluster:  cluster,
			X:        x,
			XAdvance: advance,
		})
		x += advance
	}

	if dir == DirectionRTL {
		for i := len(runes) - 1; i >= 0; i-- {
			emit(i)
		}
	} else {
		for i := range runes {
			emit(i)
		}
	}
	return result
}
