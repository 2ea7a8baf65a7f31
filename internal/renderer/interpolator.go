package renderer

import "slidecast/internal/director"

// Segment is one linear span of an animated parameter: the value moves from
// From to To while the frame counter runs FromFrame..ToFrame.
type Segment struct {
	FromFrame int
	ToFrame   int
	From      float64
	To        float64
}

// Timeline is an ordered, contiguous list of segments covering a slide's
// whole frame range. It is the intermediate form between keyframes and the
// textual zoompan expression, and can be evaluated directly in Go.
type Timeline []Segment

// Attr selects one animated parameter from a keyframe.
type Attr func(director.Keyframe) float64

func ZoomAttr(k director.Keyframe) float64 { return k.Zoom }
func XAttr(k director.Keyframe) float64    { return k.X }
func YAttr(k director.Keyframe) float64    { return k.Y }

// NewTimeline builds the interpolation segments for one attribute of an
// ordered keyframe list. Fewer than two keyframes produce an empty timeline;
// callers treat that as a constant.
func NewTimeline(keyframes []director.Keyframe, attr Attr) Timeline {
	if len(keyframes) < 2 {
		return nil
	}
	segments := make(Timeline, 0, len(keyframes)-1)
	for i := 0; i < len(keyframes)-1; i++ {
		segments = append(segments, Segment{
			FromFrame: keyframes[i].Frame,
			ToFrame:   keyframes[i+1].Frame,
			From:      attr(keyframes[i]),
			To:        attr(keyframes[i+1]),
		})
	}
	return segments
}

// ValueAt evaluates the timeline at a frame, clamping outside the covered
// range. This mirrors what the serialized expression computes frame by
// frame inside the renderer.
func (t Timeline) ValueAt(frame int) float64 {
	if len(t) == 0 {
		return 0
	}
	if frame <= t[0].FromFrame {
		return t[0].From
	}
	last := t[len(t)-1]
	if frame >= last.ToFrame {
		return last.To
	}
	for _, seg := range t {
		if frame >= seg.FromFrame && frame <= seg.ToFrame {
			span := seg.ToFrame - seg.FromFrame
			if span == 0 {
				return seg.To
			}
			progress := float64(frame-seg.FromFrame) / float64(span)
			return seg.From + (seg.To-seg.From)*progress
		}
	}
	return last.To
}
