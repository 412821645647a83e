package text

import "unicode"

// WrapMode specifies how text is wrapped when it exceeds the maximum width.
type WrapMode uint8

const (
	// WrapWordChar breaks at word boundaries first,
	// then falls back to character boundaries for long words.
	WrapWordChar WrapMode = iota

	// WrapNone disables wrapping; lines may exceed MaxWidth.
	WrapNone

	// WrapWord breaks at word boundaries only.
	// Long words that exceed MaxWidth overflow.
	WrapWord

	// WrapChar breaks at any character boundary.
	WrapChar
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "None"
	case WrapWord:
		return "Word"
	case WrapChar:
		return "Char"
	case WrapWordChar:
		return "WordChar"
	default:
		return unknownStr
	}
}

// breakClass is a simplified UAX #14 line breaking class.
type breakClass uint8

const (
	breakOther breakClass = iota
	// breakSpace allows a break after it.
	breakSpace
	// breakZero is a zero-width space.
	breakZero
	// breakOpen forbids a break after it.
	breakOpen
	// breakClose forbids a break before it.
	breakClose
	// breakHyphen allows a break after it.
	breakHyphen
	// breakIdeographic allows breaks on both sides.
	breakIdeographic
)

func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t', '　':
		return breakSpace
	case '​':
		return breakZero
	case '(', '[', '{', '“', '‘', '«':
		return breakOpen
	case ')', ']', '}', '”', '’', '»', '!', '?', ',', '.', ';', ':', '、', '。':
		return breakClose
	case '-', '‐', '–', '—':
		return breakHyphen
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

// isCJKRune reports whether r is an ideograph or kana that allows breaking
// on either side.
func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0x3040 && r <= 0x309F) || // Hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // Katakana
		(r >= 0xAC00 && r <= 0xD7AF) || // Hangul Syllables
		(r >= 0xFF00 && r <= 0xFFEF) // Fullwidth forms
}

// breakOpportunities returns, for each rune of a paragraph, whether a line
// may start at that rune. Index 0 is always false.
func breakOpportunities(runes []rune, mode WrapMode) []bool {
	breaks := make([]bool, len(runes))
	if mode == WrapNone || len(runes) < 2 {
		return breaks
	}

	classes := make([]breakClass, len(runes))
	for i, r := range runes {
		classes[i] = classifyRune(r)
	}

	for i := 1; i < len(runes); i++ {
		prev, curr := classes[i-1], classes[i]
		switch {
		case curr == breakClose || curr == breakSpace:
			breaks[i] = false
		case prev == breakOpen:
			breaks[i] = false
		case mode == WrapChar:
			breaks[i] = true
		case prev == breakSpace, prev == breakZero:
			breaks[i] = true
		case prev == breakHyphen && curr != breakHyphen && !unicode.IsDigit(runes[i]):
			breaks[i] = true
		case curr == breakIdeographic, prev == breakIdeographic:
			breaks[i] = true
		}
	}
	return breaks
}

// wrapRunes splits a paragraph into lines no wider than maxWidth using the
// per-rune advances. It returns the start index of every line; each line
// runs to the next start (or the end of the paragraph).
//
// Whitespace at the end of a line hangs past maxWidth.
func wrapRunes(runes []rune, advances []float64, maxWidth float64, mode WrapMode) []int {
	starts := []int{0}
	if len(runes) == 0 || maxWidth <= 0 || mode == WrapNone {
		return starts
	}

	breaks := breakOpportunities(runes, mode)
	const eps = 1e-6

	start := 0
	width := 0.0
	lastBreak := -1
	for i := 0; i < len(runes); i++ {
		if i > start && breaks[i] {
			lastBreak = i
		}
		if i == start || unicode.IsSpace(runes[i]) || width+advances[i] <= maxWidth+eps {
			width += advances[i]
			continue
		}

		next := -1
		switch {
		case lastBreak > start:
			next = lastBreak
		case mode == WrapWordChar || mode == WrapChar:
			next = i
		}
		if next < 0 {
			// WrapWord with an over-long word: overflow until the next break.
			width += advances[i]
			continue
		}

		starts = append(starts, next)
		start, width, lastBreak = next, 0, -1
		i = next - 1
	}
	return starts
}
