package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake media payload"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "audio_0.mp3")
	c := NewClient(5 * time.Second)
	if err := c.Download(context.Background(), srv.URL, path); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "fake media payload" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestDownloadBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	err := c.Download(context.Background(), srv.URL, filepath.Join(t.TempDir(), "x"))

	var rerr *ResourceError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ResourceError, got %v", err)
	}
	if rerr.URL != srv.URL {
		t.Errorf("error should carry the URL, got %q", rerr.URL)
	}
}

func TestPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "a.mp3")
	imagePath := filepath.Join(dir, "i.jpg")

	c := NewClient(5 * time.Second)
	if err := c.Pair(context.Background(), srv.URL+"/audio", audioPath, srv.URL+"/image", imagePath); err != nil {
		t.Fatalf("Pair failed: %v", err)
	}
	for _, p := range []string{audioPath, imagePath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing download %s: %v", p, err)
		}
	}
}

func TestPairOneFailureAbortsSlide(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := NewClient(5 * time.Second)
	err := c.Pair(context.Background(),
		srv.URL+"/missing", filepath.Join(dir, "a.mp3"),
		srv.URL+"/image", filepath.Join(dir, "i.jpg"))
	if err == nil {
		t.Fatal("expected the failed resource to fail the pair")
	}
}
