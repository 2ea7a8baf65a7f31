package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// ResourceError reports a failed download. Fetch failures are fatal for the
// slide that owns the resource.
type ResourceError struct {
	URL string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Client downloads remote slide resources into slide-scoped temp storage.
type Client struct {
	http *http.Client
}

// NewClient returns a Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Download streams url into path.
func (c *Client) Download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &ResourceError{URL: url, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ResourceError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ResourceError{URL: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	out, err := os.Create(path)
	if err != nil {
		return &ResourceError{URL: url, Err: err}
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return &ResourceError{URL: url, Err: err}
	}
	return nil
}

// Pair fetches a slide's audio and image concurrently. Slides are processed
// one at a time; the two resources of a single slide are the only parallel
// downloads in flight.
func (c *Client) Pair(ctx context.Context, audioURL, audioPath, imageURL, imagePath string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Download(ctx, audioURL, audioPath) })
	g.Go(func() error { return c.Download(ctx, imageURL, imagePath) })
	return g.Wait()
}
