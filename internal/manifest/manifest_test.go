package manifest

import (
	"errors"
	"testing"
)

const validManifest = `{
	"list": [{"cap": "第一段字幕"}, {"cap": "second caption"}],
	"audio_list": ["https://cdn.example.com/a0.mp3", "https://cdn.example.com/a1.mp3"],
	"duration_list": [3200, 2800],
	"image_list": ["https://cdn.example.com/i0.jpg", "https://cdn.example.com/i1.jpg"]
}`

func TestParseValid(t *testing.T) {
	slides, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].Caption != "第一段字幕" {
		t.Errorf("unexpected caption: %q", slides[0].Caption)
	}
	if slides[0].Duration() != 3.2 {
		t.Errorf("expected 3.2s, got %v", slides[0].Duration())
	}
	if slides[1].AudioRef != "https://cdn.example.com/a1.mp3" {
		t.Errorf("unexpected audio ref: %q", slides[1].AudioRef)
	}
}

func TestParseLengthMismatch(t *testing.T) {
	bad := `{
		"list": [{"cap": "a"}, {"cap": "b"}],
		"audio_list": ["x"],
		"duration_list": [1000, 2000],
		"image_list": ["y", "z"]
	}`
	_, err := Parse([]byte(bad))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte(`{"list": [], "audio_list": [], "duration_list": [], "image_list": []}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty manifest, got %v", err)
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"list": [`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for malformed JSON, got %v", err)
	}
}
