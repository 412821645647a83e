package text

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

// OutlinePoint is a point of a glyph outline in pixels, Y down.
type OutlinePoint struct {
	X, Y float32
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour.
	OutlineOpMoveTo OutlineOp = iota
	// OutlineOpLineTo draws a line to Points[0].
	OutlineOpLineTo
	// OutlineOpQuadTo draws a quadratic curve through Points[0] to Points[1].
	OutlineOpQuadTo
	// OutlineOpCubicTo draws a cubic curve through Points[0], Points[1] to Points[2].
	OutlineOpCubicTo
)

// String returns the string representation of the op.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return unknownStr
	}
}

// OutlineSegment is one path operation of a glyph outline.
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// GlyphOutline is the vector outline of a glyph at one size.
type GlyphOutline struct {
	GID      GlyphID
	Segments []OutlineSegment

	// Bounds covers every point of Segments, including control points.
	Bounds Rect
}

// IsEmpty reports whether the outline has nothing to draw (e.g. a space).
func (o *GlyphOutline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

func outlineFromSegments(gid GlyphID, segments sfnt.Segments) *GlyphOutline {
	out := &GlyphOutline{GID: gid}
	if len(segments) == 0 {
		return out
	}

	out.Segments = make([]OutlineSegment, 0, len(segments))
	for _, seg := range segments {
		s := OutlineSegment{}
		n := 1
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
			n = 2
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
			n = 3
		}
		for i := 0; i < n; i++ {
			s.Points[i] = fixedPointToOutline(seg.Args[i])
		}
		out.Segments = append(out.Segments, s)
	}

	b := segments.Bounds()
	out.Bounds = Rect{
		MinX: fixedToFloat(b.Min.X),
		MinY: fixedToFloat(b.Min.Y),
		MaxX: fixedToFloat(b.Max.X),
		MaxY: fixedToFloat(b.Max.Y),
	}
	return out
}

func fixedPointToOutline(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{
		X: float32(p.X) / 64.0,
		Y: float32(p.Y) / 64.0,
	}
}
