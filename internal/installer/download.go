package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"msys-console/internal/logger"
)

const (
	defaultDownloadTimeout = 10 * time.Minute
	maxDownloadBytes       = int64(1 << 30) // 1 GiB
)

// Fetcher retrieves a remote resource. The call blocks until the server
// answered or the connection failed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TransportError reports a failed GET: either the request never completed (Err)
// or the server answered with a non-success status.
type TransportError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to GET %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to GET %s: %s", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPFetcher implements Fetcher with net/http. No retries are attempted.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a conservative timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: defaultDownloadTimeout}}
}

// Fetch downloads url into memory.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	logger.Debug("[DEBUG] GET %s\n", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	if int64(len(data)) > maxDownloadBytes {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status,
			Err: fmt.Errorf("response larger than %d bytes", maxDownloadBytes)}
	}
	logger.Debug("[DEBUG] Downloaded %d bytes from %s\n", len(data), url)
	return data, nil
}

// savePayload writes the downloaded bytes to destPath, replacing any leftover
// file from an earlier attempt.
func savePayload(destPath string, data []byte) error {
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}
	return nil
}
