package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// ValidationError reports a structurally broken manifest. It aborts the run
// before any resource is touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid manifest: %s", e.Reason)
}

// Manifest mirrors the input.json layout: four parallel lists describing the
// slides in order.
type Manifest struct {
	List         []Item   `json:"list"`
	AudioList    []string `json:"audio_list"`
	DurationList []int64  `json:"duration_list"` // milliseconds
	ImageList    []string `json:"image_list"`
}

type Item struct {
	Caption string `json:"cap"`
}

// Slide is one resolved entry of the manifest.
type Slide struct {
	Caption    string
	AudioRef   string
	ImageRef   string
	DurationMS int64
}

// Duration returns the manifest-declared target duration in seconds.
func (s Slide) Duration() float64 {
	return float64(s.DurationMS) / 1000.0
}

// Parse decodes and validates manifest JSON.
func Parse(data []byte) ([]Slide, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	n := len(m.List)
	if n == 0 {
		return nil, &ValidationError{Reason: "empty slide list"}
	}
	if len(m.AudioList) != n || len(m.DurationList) != n || len(m.ImageList) != n {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"list lengths differ: captions=%d audio=%d durations=%d images=%d",
			n, len(m.AudioList), len(m.DurationList), len(m.ImageList))}
	}

	slides := make([]Slide, n)
	for i := 0; i < n; i++ {
		slides[i] = Slide{
			Caption:    m.List[i].Caption,
			AudioRef:   m.AudioList[i],
			ImageRef:   m.ImageList[i],
			DurationMS: m.DurationList[i],
		}
	}
	return slides, nil
}

// Read loads and parses a manifest file.
func Read(path string) ([]Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
