// Package text measures, lays out and rasterizes labels.
//
// The pipeline has four pieces:
//
//   - FontSource: a parsed TTF/OTF file, shared across the application
//   - Face: a FontSource at one pixel size
//   - Shaper: turns a run of text into positioned glyphs
//   - Library: resolves a family name plus bold/italic to a FontSource
//
// # Example usage
//
//	lib := text.NewLibrary()
//	face := lib.Resolve("Go", true, false).Face(24)
//
//	layout := text.LayoutText("Hello, world", face, text.LayoutOptions{
//	    MaxWidth:  200,
//	    Alignment: text.AlignCenter,
//	})
//	img := image.NewRGBA(image.Rect(0, 0, 200, int(math.Ceil(layout.Height))))
//	text.DrawLayout(img, layout, face, 0, 0, func(int) color.Color { return color.White })
//
// # Pluggable Parser Backend
//
// Font parsing sits behind the FontParser interface. The default backend
// is golang.org/x/image/font/opentype; others can be added with
// RegisterParser and selected per source with WithParser.
package text
