package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for one assembly run.
type Config struct {
	ManifestPath string `yaml:"manifest"`
	OutputVideo  string `yaml:"output"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	// Intensity scales the maximum zoom (0.0 - 1.0). Frequency controls
	// keyframe density per second; 0 keeps the classic start/end pair.
	Intensity float64 `yaml:"intensity"`
	Frequency float64 `yaml:"frequency"`

	// Caption layout. MaxLineWidth is measured in wide-character units.
	MaxLineWidth float64 `yaml:"max_line_width"`
	LinesPerPage int     `yaml:"lines_per_page"`
	FontName     string  `yaml:"font"`
	FontSize     int     `yaml:"font_size"`

	VideoEncoder string `yaml:"encoder"`
	Quality      int    `yaml:"quality"`
	DPI          int    `yaml:"dpi"`

	RenderTimeout time.Duration `yaml:"render_timeout"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`

	// Optional trailing QR slide.
	OutroURL      string  `yaml:"outro_url"`
	OutroCaption  string  `yaml:"outro_caption"`
	OutroDuration float64 `yaml:"outro_duration"`

	// Motion plan export / replay.
	PlanOut string `yaml:"plan_out"`
	PlanIn  string `yaml:"plan_in"`

	ShowStats bool `yaml:"stats"`
}

// Default returns the settings matching the 9:16 shorts preset.
func Default() *Config {
	return &Config{
		Width:         1080,
		Height:        1920,
		FPS:           25,
		Intensity:     0.3,
		MaxLineWidth:  13,
		LinesPerPage:  2,
		FontName:      "Arial Unicode MS",
		FontSize:      70,
		Quality:       22,
		DPI:           300,
		RenderTimeout: 5 * time.Minute,
		FetchTimeout:  2 * time.Minute,
		OutroDuration: 4.0,
	}
}

// Load overlays YAML settings from path onto cfg.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// SlideParams carries the per-slide values the pipeline stages need.
type SlideParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	Intensity     float64
	Frequency     float64
	Index         int
}

// InputWidth and InputHeight are the prescaled zoompan input dimensions.
// Feeding zoompan a 2x frame keeps zoomed crops from going soft.
func (p SlideParams) InputWidth() int  { return p.Width * 2 }
func (p SlideParams) InputHeight() int { return p.Height * 2 }

// TotalFrames is the frame count zoompan animates over.
func (p SlideParams) TotalFrames() int {
	return int(p.Duration*float64(p.FPS) + 0.5)
}
