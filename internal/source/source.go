package source

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gen2brain/go-fitz"

	"slidecast/internal/fetch"
)

// Resolver turns manifest image references into local image files the
// renderer can consume. Supported forms: http(s) URLs, local image paths,
// and "document.pdf#page" references rasterized with go-fitz.
type Resolver struct {
	Fetcher *fetch.Client
	DPI     int
}

// IsRemote reports whether a resource reference needs downloading.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Resolve materializes ref as a local image file, writing any produced
// artifact under dir using the given name stem.
func (r *Resolver) Resolve(ctx context.Context, ref, dir, stem string) (string, error) {
	switch {
	case IsRemote(ref):
		path := filepath.Join(dir, stem+remoteExt(ref))
		if err := r.Fetcher.Download(ctx, ref, path); err != nil {
			return "", err
		}
		return path, nil

	case strings.Contains(ref, ".pdf#"):
		path := filepath.Join(dir, stem+".png")
		if err := r.rasterizePDFPage(ref, path); err != nil {
			return "", err
		}
		return path, nil

	default:
		if _, err := os.Stat(ref); err != nil {
			return "", fmt.Errorf("image ref %s: %w", ref, err)
		}
		return ref, nil
	}
}

// remoteExt keeps the URL's extension when it looks like an image suffix so
// ffmpeg can sniff the format from the name.
func remoteExt(url string) string {
	ext := strings.ToLower(filepath.Ext(url))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	}
	return ".jpg"
}

// rasterizePDFPage renders one page of "file.pdf#N" (1-based) to a PNG.
func (r *Resolver) rasterizePDFPage(ref, outPath string) error {
	idx := strings.LastIndex(ref, "#")
	pdfPath := ref[:idx]
	page, err := strconv.Atoi(ref[idx+1:])
	if err != nil || page < 1 {
		return fmt.Errorf("pdf ref %s: bad page number", ref)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", pdfPath, err)
	}
	defer doc.Close()

	if page > doc.NumPage() {
		return fmt.Errorf("pdf ref %s: document has %d pages", ref, doc.NumPage())
	}

	img, err := doc.ImageDPI(page-1, float64(r.DPI))
	if err != nil {
		return fmt.Errorf("rasterize %s: %w", ref, err)
	}
	return writePNG(outPath, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
