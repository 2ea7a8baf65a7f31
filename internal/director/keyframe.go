package director

// Keyframe is one control point of a slide's camera motion, expressed in the
// zoompan input's coordinate space: a frame index, a zoom factor and the
// top-left offset of the visible crop window.
type Keyframe struct {
	Frame int     `yaml:"frame"`
	Zoom  float64 `yaml:"zoom"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

// Pattern selects how keyframes are derived for a slide.
type Pattern int

const (
	ZoomIn Pattern = iota
	ZoomOut
	Pan
)

func (p Pattern) String() string {
	switch p {
	case ZoomIn:
		return "zoom_in"
	case ZoomOut:
		return "zoom_out"
	case Pan:
		return "pan"
	}
	return "unknown"
}

// maxOffset is the largest legal crop offset along a dimension: anything
// larger would push the crop window past the source edge.
func maxOffset(dimension float64, zoom float64) float64 {
	if zoom <= 1.0 {
		return 0
	}
	return dimension * (1 - 1/zoom)
}

// centerOffset positions the crop window in the middle of the source.
func centerOffset(dimension float64, zoom float64) float64 {
	return maxOffset(dimension, zoom) / 2
}
