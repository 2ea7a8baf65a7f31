package renderer

import (
	"math"
	"testing"

	"slidecast/internal/director"
)

func testKeyframes() []director.Keyframe {
	return []director.Keyframe{
		{Frame: 0, Zoom: 1.0, X: 0, Y: 0},
		{Frame: 50, Zoom: 1.5, X: 360, Y: 640},
		{Frame: 125, Zoom: 2.0, X: 540, Y: 960},
	}
}

func TestTimelineEndpoints(t *testing.T) {
	keyframes := testKeyframes()

	attrs := []struct {
		name  string
		attr  Attr
		first float64
		last  float64
	}{
		{"zoom", ZoomAttr, 1.0, 2.0},
		{"x", XAttr, 0, 540},
		{"y", YAttr, 0, 960},
	}
	for _, a := range attrs {
		tl := NewTimeline(keyframes, a.attr)
		if got := tl.ValueAt(0); got != a.first {
			t.Errorf("%s at frame 0: expected %v, got %v", a.name, a.first, got)
		}
		if got := tl.ValueAt(125); got != a.last {
			t.Errorf("%s at frame 125: expected %v, got %v", a.name, a.last, got)
		}
	}
}

func TestTimelineInterpolation(t *testing.T) {
	tl := NewTimeline(testKeyframes(), ZoomAttr)

	tests := []struct {
		frame int
		want  float64
	}{
		{25, 1.25},   // midpoint of first segment
		{50, 1.5},    // keyframe boundary
		{100, 1.833}, // two thirds into second segment
	}
	for _, tt := range tests {
		got := tl.ValueAt(tt.frame)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("frame %d: expected ~%v, got %v", tt.frame, tt.want, got)
		}
	}
}

func TestTimelineClampsOutsideRange(t *testing.T) {
	tl := NewTimeline(testKeyframes(), ZoomAttr)
	if got := tl.ValueAt(-10); got != 1.0 {
		t.Errorf("before first keyframe: expected 1.0, got %v", got)
	}
	if got := tl.ValueAt(500); got != 2.0 {
		t.Errorf("after last keyframe: expected 2.0, got %v", got)
	}
}

func TestTimelineSingleKeyframe(t *testing.T) {
	tl := NewTimeline([]director.Keyframe{{Frame: 0, Zoom: 1.0}}, ZoomAttr)
	if tl != nil {
		t.Errorf("expected empty timeline for a single keyframe, got %v", tl)
	}
}
