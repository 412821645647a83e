package text

import "golang.org/x/text/unicode/bidi"

// ParagraphDirection returns the base direction of a paragraph: the
// direction of its first strong character, or DirectionLTR if it has none.
func ParagraphDirection(s string) Direction {
	return runesDirection([]rune(s))
}

func runesDirection(runes []rune) Direction {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
	}
	return DirectionLTR
}
