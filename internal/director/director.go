package director

import (
	"math/rand"
)

// Director synthesizes camera motion for slides. Randomness is injected so
// callers can seed it for reproducible runs.
type Director struct {
	Width  int // zoompan input width (prescaled)
	Height int // zoompan input height (prescaled)
	rng    *rand.Rand
}

// NewDirector creates a Director animating over a source of the given
// dimensions.
func NewDirector(width, height int, rng *rand.Rand) *Director {
	return &Director{Width: width, Height: height, rng: rng}
}

// Generate picks a motion pattern uniformly at random and emits its
// keyframes. Intensity scales the zoom ceiling (maxZoom = 1 + 0.5*intensity).
// Frequency is keyframes per second; 0 yields the plain start/end pair. A
// non-positive frame count degenerates to a single static keyframe.
func (d *Director) Generate(duration float64, intensity, frequency float64, fps int) []Keyframe {
	totalFrames := int(duration*float64(fps) + 0.5)
	if totalFrames <= 0 {
		return []Keyframe{{Frame: 0, Zoom: 1.0}}
	}

	maxZoom := 1.0 + 0.5*intensity
	pattern := Pattern(d.rng.Intn(3))
	count := d.keyframeCount(duration, frequency, totalFrames)

	switch pattern {
	case ZoomIn:
		return d.zoomPath(totalFrames, count, 1.0, d.sampleZoom(1.1, maxZoom))
	case ZoomOut:
		return d.zoomPath(totalFrames, count, d.sampleZoom(1.1, maxZoom), 1.0)
	default:
		return d.panPath(totalFrames, count, d.sampleZoom(1.2, maxZoom))
	}
}

// keyframeCount derives how many keyframes the frequency setting asks for,
// capped so frame indices stay strictly increasing.
func (d *Director) keyframeCount(duration, frequency float64, totalFrames int) int {
	count := 2
	if frequency > 0 {
		count = int(duration*frequency+0.5) + 1
		if count < 2 {
			count = 2
		}
	}
	if count > totalFrames+1 {
		count = totalFrames + 1
	}
	return count
}

// sampleZoom draws a zoom from (lo, hi]. A ceiling at or below the floor
// collapses the range to the ceiling, which still honors zoom >= 1.
func (d *Director) sampleZoom(lo, hi float64) float64 {
	if hi <= lo {
		return hi
	}
	return lo + d.rng.Float64()*(hi-lo)
}

// zoomPath moves between two centered zoom levels. Intermediate keyframes
// stay centered so the zoom reads as a straight push or pull.
func (d *Director) zoomPath(totalFrames, count int, zoomFrom, zoomTo float64) []Keyframe {
	keyframes := make([]Keyframe, count)
	for i := range keyframes {
		t := float64(i) / float64(count-1)
		z := zoomFrom + (zoomTo-zoomFrom)*t
		keyframes[i] = Keyframe{
			Frame: frameAt(totalFrames, i, count),
			Zoom:  z,
			X:     centerOffset(float64(d.Width), z),
			Y:     centerOffset(float64(d.Height), z),
		}
	}
	return keyframes
}

// panPath holds a constant zoom and wanders between random crop positions,
// each sampled inside the legal offset range.
func (d *Director) panPath(totalFrames, count int, zoom float64) []Keyframe {
	maxX := maxOffset(float64(d.Width), zoom)
	maxY := maxOffset(float64(d.Height), zoom)

	keyframes := make([]Keyframe, count)
	for i := range keyframes {
		keyframes[i] = Keyframe{
			Frame: frameAt(totalFrames, i, count),
			Zoom:  zoom,
			X:     d.rng.Float64() * maxX,
			Y:     d.rng.Float64() * maxY,
		}
	}
	return keyframes
}

// frameAt spreads count keyframes evenly over [0, totalFrames].
func frameAt(totalFrames, i, count int) int {
	if i == count-1 {
		return totalFrames
	}
	return i * totalFrames / (count - 1)
}
