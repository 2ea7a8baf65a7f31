package director

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Plan captures the generated motion of every slide so a run can be audited
// or replayed without re-rolling the random generator.
type Plan struct {
	Version string      `yaml:"version"`
	Slides  []SlidePlan `yaml:"slides"`
}

// SlidePlan is one slide's motion as it was rendered.
type SlidePlan struct {
	Index     int        `yaml:"index"`
	Duration  float64    `yaml:"duration"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

// WritePlan serializes a plan to a YAML file.
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlan loads a previously exported plan.
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Lookup returns the stored keyframes for a slide index, or nil when the
// plan has none for it.
func (p *Plan) Lookup(index int) []Keyframe {
	if p == nil {
		return nil
	}
	for _, s := range p.Slides {
		if s.Index == index {
			return s.Keyframes
		}
	}
	return nil
}
