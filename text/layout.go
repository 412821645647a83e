package text

import (
	"unicode"
)

// Alignment specifies horizontal alignment of lines relative to the
// paragraph direction.
type Alignment int

const (
	// AlignStart aligns to the left edge for LTR paragraphs and to the right
	// edge for RTL paragraphs.
	AlignStart Alignment = iota
	// AlignCenter centers lines.
	AlignCenter
	// AlignEnd is the opposite of AlignStart.
	AlignEnd
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "Start"
	case AlignCenter:
		return "Center"
	case AlignEnd:
		return "End"
	default:
		return unknownStr
	}
}

// LayoutOptions configures text layout behavior.
type LayoutOptions struct {
	// MaxWidth is the wrapping width in pixels. Lines are aligned within it.
	// If 0, paragraphs are not wrapped and lines align within the widest one.
	MaxWidth float64

	// LineSpacing multiplies the distance between baselines. 0 means 1.
	LineSpacing float64

	Alignment Alignment
	WrapMode  WrapMode

	// Shaper shapes each line. Nil uses GetShaper().
	Shaper Shaper
}

// Line is one laid out line of text.
type Line struct {
	// Start and End are the rune range of the line in the text, End
	// exclusive. Trailing whitespace belongs to the line but is not shaped.
	Start, End int

	// Glyphs are in visual order with X relative to the line origin and
	// Cluster indexing runes of the whole text.
	Glyphs []ShapedGlyph

	// Width is the advance of Glyphs.
	Width float64

	// X is the offset of the line origin produced by alignment.
	X float64

	// Baseline is the Y of the baseline, from the top of the layout.
	Baseline float64

	Direction Direction
}

// Layout is the result of LayoutText.
type Layout struct {
	Lines []Line

	// Width is the widest line. Height is the last baseline plus descent.
	Width  float64
	Height float64

	Ascent  float64
	Descent float64
}

// LayoutText splits text into paragraphs at '\n', wraps each paragraph to
// opts.MaxWidth and positions the lines.
// Empty text produces a single empty line one line high.
func LayoutText(text string, face Face, opts LayoutOptions) *Layout {
	shaper := opts.Shaper
	if shaper == nil {
		shaper = GetShaper()
	}
	spacing := opts.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}

	m := face.Metrics()
	layout := &Layout{Ascent: m.Ascent, Descent: m.Descent}

	runes := []rune(text)
	for _, p := range splitParagraphs(runes) {
		para := runes[p.start:p.end]
		dir := runesDirection(para)
		advances := runeAdvances(para, face, shaper, dir)
		starts := wrapRunes(para, advances, opts.MaxWidth, opts.WrapMode)
		for i, s := range starts {
			end := len(para)
			if i+1 < len(starts) {
				end = starts[i+1]
			}
			line := shapeLine(runes, p.start+s, p.start+end, face, shaper, dir)
			layout.Lines = append(layout.Lines, line)
		}
	}

	step := m.Height() * spacing
	for i := range layout.Lines {
		line := &layout.Lines[i]
		line.Baseline = m.Ascent + float64(i)*step
		layout.Width = max(layout.Width, line.Width)
	}
	if n := len(layout.Lines); n > 0 {
		layout.Height = layout.Lines[n-1].Baseline + m.Descent
	}

	avail := opts.MaxWidth
	if avail <= 0 {
		avail = layout.Width
	}
	for i := range layout.Lines {
		alignLine(&layout.Lines[i], opts.Alignment, avail)
	}
	return layout
}

// DesiredWidth returns the width of the widest paragraph of text laid out
// without wrapping, including trailing whitespace.
func DesiredWidth(text string, face Face, shaper Shaper) float64 {
	if shaper == nil {
		shaper = GetShaper()
	}
	runes := []rune(text)
	widest := 0.0
	for _, p := range splitParagraphs(runes) {
		para := runes[p.start:p.end]
		w := 0.0
		for _, a := range runeAdvances(para, face, shaper, runesDirection(para)) {
			w += a
		}
		widest = max(widest, w)
	}
	return widest
}

type span struct{ start, end int }

// splitParagraphs splits runes at '\n'. An empty input yields one empty
// paragraph, and a trailing '\n' yields a final empty paragraph.
func splitParagraphs(runes []rune) []span {
	var out []span
	start := 0
	for i, r := range runes {
		if r == '\n' {
			out = append(out, span{start, i})
			start = i + 1
		}
	}
	return append(out, span{start, len(runes)})
}

// runeAdvances shapes a paragraph and returns the advance owned by each
// rune. A ligature's advance goes to its first rune.
func runeAdvances(para []rune, face Face, shaper Shaper, dir Direction) []float64 {
	advances := make([]float64, len(para))
	if len(para) == 0 {
		return advances
	}
	for _, g := range shaper.Shape(string(para), face, dir) {
		if g.Cluster < 0 || g.Cluster >= len(para) {
			continue
		}
		if _, ok := normalizeRune(para[g.Cluster]); !ok {
			continue
		}
		advances[g.Cluster] += g.XAdvance
	}
	return advances
}

// shapeLine shapes runes[start:end] without its trailing whitespace and
// drops glyphs of control characters.
func shapeLine(runes []rune, start, end int, face Face, shaper Shaper, dir Direction) Line {
	line := Line{Start: start, End: end, Direction: dir}

	trimmed := end
	for trimmed > start && unicode.IsSpace(runes[trimmed-1]) {
		trimmed--
	}
	if trimmed == start {
		return line
	}

	shaped := shaper.Shape(string(runes[start:trimmed]), face, dir)
	line.Glyphs = make([]ShapedGlyph, 0, len(shaped))

	pen, origPen := 0.0, 0.0
	for _, g := range shaped {
		offset := g.X - origPen
		origPen += g.XAdvance
		if g.Cluster >= 0 && g.Cluster < trimmed-start {
			if _, ok := normalizeRune(runes[start+g.Cluster]); !ok {
				continue
			}
		}
		g.X = pen + offset
		g.Cluster += start
		pen += g.XAdvance
		line.Glyphs = append(line.Glyphs, g)
	}
	line.Width = pen
	return line
}

// alignLine sets line.X for the alignment within avail pixels.
func alignLine(line *Line, a Alignment, avail float64) {
	free := avail - line.Width
	if free < 0 {
		free = 0
	}

	right := a == AlignEnd
	if line.Direction == DirectionRTL {
		right = a != AlignEnd
	}

	switch {
	case a == AlignCenter:
		line.X = free / 2
	case right:
		line.X = free
	default:
		line.X = 0
	}
}

// normalizeRune maps a tab to a space and reports false for other control
// characters, which take no space and are not drawn.
func normalizeRune(r rune) (rune, bool) {
	if r == '\t' {
		return ' ', true
	}
	if unicode.IsControl(r) {
		return r, false
	}
	return r, true
}
