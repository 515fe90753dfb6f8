// =============================================================================
// XML to CSV Converter - Feed Fetcher Module
// =============================================================================
//
// This module retrieves feed documents over HTTP. It is a thin collaborator
// around the conversion core: timeouts, cancellation and transport errors
// live here, never in the detection/flattening code.
//
// =============================================================================

package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/config"
)

// Fetcher downloads feed documents.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher from the fetch settings.
func New(settings config.FetchSettings) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: time.Duration(settings.TimeoutSeconds) * time.Second,
		},
		userAgent: settings.UserAgent,
	}
}

// Fetch downloads the document at url and returns its raw bytes.
//
// PARAMETERS:
//   - ctx: Cancels the request when the surrounding run is aborted.
//   - url: The feed address.
//
// RETURNS:
//   - The response body.
//   - An error on transport failure or a non-2xx status.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	return body, nil
}
