package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnsupportedFontType is returned when a ParsedFont comes from a
	// backend that cannot produce glyph outlines.
	ErrUnsupportedFontType = errors.New("text: unsupported font type")

	// ErrEmptyFamily is returned when registering a font without a family name.
	ErrEmptyFamily = errors.New("text: empty family name")
)

// FontLoadError reports a font file that could not be read or parsed.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	return "text: load " + e.Path + ": " + e.Err.Error()
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}
