package source

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://cdn.example.com/i0.jpg", true},
		{"http://host/a.mp3", true},
		{"/data/images/cover.png", false},
		{"deck.pdf#3", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.ref); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestRemoteExt(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/i0.png", ".png"},
		{"https://cdn.example.com/i0.jpeg", ".jpeg"},
		{"https://cdn.example.com/i0.jpg?token=abc", ".jpg"},
		{"https://cdn.example.com/media/12345", ".jpg"},
	}
	for _, tt := range tests {
		if got := remoteExt(tt.url); got != tt.want {
			t.Errorf("remoteExt(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestResolveLocalFile(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "img.png")
	if err := os.WriteFile(local, []byte("not really a png"), 0644); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{DPI: 150}
	got, err := r.Resolve(context.Background(), local, dir, "slide_000")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != local {
		t.Errorf("local files should resolve to themselves, got %q", got)
	}

	if _, err := r.Resolve(context.Background(), filepath.Join(dir, "absent.png"), dir, "x"); err == nil {
		t.Error("expected error for a missing local file")
	}
}

func TestResolveBadPDFRef(t *testing.T) {
	r := &Resolver{DPI: 150}
	if _, err := r.Resolve(context.Background(), "deck.pdf#zero", t.TempDir(), "x"); err == nil {
		t.Error("expected error for a non-numeric page reference")
	}
}

func TestBuildQRSlide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outro.png")
	if err := BuildQRSlide("https://example.com/subscribe", 1080, 1920, path); err != nil {
		t.Fatalf("BuildQRSlide failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open outro: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("outro is not a valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1080 || b.Dy() != 1920 {
		t.Errorf("expected canvas-sized outro, got %dx%d", b.Dx(), b.Dy())
	}
}
