package sysfont

import "github.com/gogpu/sysfont/text"

// Alignment is the horizontal alignment of lines within the text width,
// relative to the paragraph direction.
type Alignment = text.Alignment

// Alignment values. Start is left for left-to-right paragraphs and right
// for right-to-left ones.
const (
	AlignStart  = text.AlignStart
	AlignCenter = text.AlignCenter
	AlignEnd    = text.AlignEnd
)

// AlignmentFromInt maps an engine alignment code to an Alignment:
// 0 is Start, 1 is Center, 2 is End. Any other value is Start.
func AlignmentFromInt(v int) Alignment {
	switch v {
	case 1:
		return AlignCenter
	case 2:
		return AlignEnd
	default:
		return AlignStart
	}
}
