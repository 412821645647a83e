package markup

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// tagLen is the raw length of a color tag: '[' + 6 hex digits + ']'.
const tagLen = 8

// Segment is a half-open range [Start, End) of runes in the plain text that
// share one color.
type Segment struct {
	Color Color
	Start int
	End   int
}

// Len returns the number of runes covered by the segment.
func (s Segment) Len() int { return s.End - s.Start }

// Empty reports whether the segment covers no runes.
func (s Segment) Empty() bool { return s.End <= s.Start }

// Contains reports whether rune index i falls inside the segment.
func (s Segment) Contains(i int) bool { return s.Start <= i && i < s.End }

// tagLexer splits raw text into color tags and single characters.
// Tag is listed first so it wins over Char at a '['.
var tagLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Tag", Pattern: `\[[0-9A-Fa-f]{6}\]`},
	{Name: "Char", Pattern: `[\s\S]`},
})

var tagType = tagLexer.Symbols()["Tag"]

// Parse removes every well-formed color tag from raw and returns the plain
// text together with the color segments covering it.
//
// The segments are ordered, never overlap and cover [0, n) where n is the
// rune count of plain. A tag closes the pending segment with the color that
// was active before it, so a tag at the very start (or two adjacent tags)
// produces a zero-length segment.
func Parse(raw string) (plain string, segments []Segment) {
	lex, err := tagLexer.Lex("", strings.NewReader(raw))
	if err != nil {
		return raw, []Segment{{Color: White, Start: 0, End: utf8.RuneCountInString(raw)}}
	}

	var sb strings.Builder
	sb.Grow(len(raw))

	active := White
	pending := 0
	cursor := 0
	offset := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			// Unreachable with a catch-all Char rule; keep the rest literal.
			rest := raw[offset:]
			sb.WriteString(rest)
			cursor += utf8.RuneCountInString(rest)
			break
		}
		if tok.EOF() {
			break
		}
		offset += len(tok.Value)
		if tok.Type == tagType && len(tok.Value) == tagLen {
			c, ok := ParseColor(tok.Value[1 : tagLen-1])
			if ok {
				segments = append(segments, Segment{Color: active, Start: pending, End: cursor})
				active = c
				pending = cursor
				continue
			}
		}
		sb.WriteString(tok.Value)
		cursor += utf8.RuneCountInString(tok.Value)
	}
	segments = append(segments, Segment{Color: active, Start: pending, End: cursor})
	return sb.String(), segments
}

// Strip returns raw with all well-formed color tags removed.
func Strip(raw string) string {
	plain, _ := Parse(raw)
	return plain
}

// ColorAt returns the color applied to rune i of the plain text.
// Zero-length segments never apply. Indices outside every segment get White.
func ColorAt(segments []Segment, i int) Color {
	for _, s := range segments {
		if s.Contains(i) {
			return s.Color
		}
	}
	return White
}

// Colors expands segments into one color per rune for text of n runes.
func Colors(segments []Segment, n int) []Color {
	out := make([]Color, n)
	for i := range out {
		out[i] = White
	}
	for _, s := range segments {
		for i := max(s.Start, 0); i < min(s.End, n); i++ {
			out[i] = s.Color
		}
	}
	return out
}
