package text

import "sync"

// Shaper converts a run of text into positioned glyphs.
//   - BuiltinShaper: one glyph per rune, no kerning or ligatures
//   - GoTextShaper: HarfBuzz shaping via go-text/typesetting
type Shaper interface {
	// Shape converts text into glyphs in visual order using face.
	// Glyph clusters are rune indices into text.
	Shape(text string, face Face, dir Direction) []ShapedGlyph
}

var (
	shaperMu     sync.RWMutex
	globalShaper Shaper = &BuiltinShaper{}
)

// SetShaper sets the shaper used when LayoutOptions.Shaper is nil.
// Pass nil to reset to the default BuiltinShaper.
func SetShaper(s Shaper) {
	shaperMu.Lock()
	defer shaperMu.Unlock()
	if s == nil {
		s = &BuiltinShaper{}
	}
	globalShaper = s
}

// GetShaper returns the current global shaper.
func GetShaper() Shaper {
	shaperMu.RLock()
	defer shaperMu.RUnlock()
	return globalShaper
}

// ShaperByName returns the shaper registered for name: "builtin" or
// "gotext". It reports false for unknown names.
func ShaperByName(name string) (Shaper, bool) {
	switch name {
	case "", "builtin":
		return &BuiltinShaper{}, true
	case "gotext", "harfbuzz":
		return NewGoTextShaper(), true
	default:
		return nil, false
	}
}
