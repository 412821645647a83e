package text

import "sync"

// FontParser is an interface for font parsing backends.
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// All sizes are pixels per em.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// Subfamily returns the style name ("Bold Italic", "Regular", ...).
	Subfamily() string

	NumGlyphs() int
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune, 0 if missing.
	GlyphIndex(r rune) uint16

	// GlyphAdvance returns the advance width of a glyph in pixels.
	GlyphAdvance(glyphIndex uint16, ppem float64) float64

	// GlyphBounds returns the bounding box of a glyph in pixels, Y down.
	GlyphBounds(glyphIndex uint16, ppem float64) Rect

	// GlyphOutline returns the vector outline of a glyph in pixels, Y down,
	// relative to the glyph origin on the baseline.
	GlyphOutline(glyphIndex uint16, ppem float64) (*GlyphOutline, error)

	// Metrics returns the font metrics at the given size.
	Metrics(ppem float64) FontMetrics
}

// FontMetrics holds font-level metrics at a specific size.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (negative).
	Descent float64

	LineGap   float64
	XHeight   float64
	CapHeight float64
}

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		defaultParserName: &ximageParser{},
	}
)

// RegisterParser registers a custom font parser under name.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
