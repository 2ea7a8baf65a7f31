package renderer

import (
	"fmt"
	"strings"
)

// Expr serializes a timeline into an ffmpeg expression over the running
// frame counter `on`. A single segment becomes a plain linear formula;
// longer timelines become a chain of between() conditionals, each branch
// interpolating its own span, with the final keyframe value as the
// fallthrough.
func (t Timeline) Expr() string {
	if len(t) == 0 {
		return "0.000000"
	}
	if len(t) == 1 {
		return lerpExpr(t[0])
	}

	var b strings.Builder
	for _, seg := range t {
		fmt.Fprintf(&b, "if(between(on,%d,%d),%s,", seg.FromFrame, seg.ToFrame, lerpExpr(seg))
	}
	fmt.Fprintf(&b, "%.6f", t[len(t)-1].To)
	b.WriteString(strings.Repeat(")", len(t)))
	return b.String()
}

// ConstExpr is the expression form of a fixed value, used for degenerate
// single-keyframe motion.
func ConstExpr(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// lerpExpr interpolates one segment linearly across its frame span.
func lerpExpr(seg Segment) string {
	span := seg.ToFrame - seg.FromFrame
	if span <= 0 || seg.From == seg.To {
		return fmt.Sprintf("%.6f", seg.To)
	}
	if seg.FromFrame == 0 {
		return fmt.Sprintf("%.6f+(%.6f-%.6f)*on/%d", seg.From, seg.To, seg.From, span)
	}
	return fmt.Sprintf("%.6f+(on-%d)*(%.6f-%.6f)/%d", seg.From, seg.FromFrame, seg.To, seg.From, span)
}
