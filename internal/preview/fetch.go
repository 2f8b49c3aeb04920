package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/desertthunder/artistx/internal/shared"
)

// ProgressFunc wraps the response body of a download. total is -1 when the length is unknown.
type ProgressFunc func(total int64, r io.Reader) io.Reader

// Fetcher downloads preview clips with a plain GET.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a [Fetcher]. A nil client uses one with the given timeout (20 seconds when non-positive).
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{client: client}
}

// Download copies the clip at url into w and returns the number of bytes written.
//
// Failures are returned as [shared.PreviewError].
func (f *Fetcher) Download(ctx context.Context, url string, w io.Writer, progress ProgressFunc) (int64, error) {
	if url == "" {
		return 0, shared.ErrNoPreview
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &shared.PreviewError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, &shared.PreviewError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &shared.PreviewError{URL: url, StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if progress != nil {
		body = progress(resp.ContentLength, body)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, &shared.PreviewError{URL: url, Err: fmt.Errorf("failed to read clip: %w", err)}
	}
	return n, nil
}
