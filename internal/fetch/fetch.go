// Package fetch retrieves candidate site documents over HTTP.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultTimeout   = 15 * time.Second

	// maxBodyBytes bounds how much of a page is read; clinic sites past 2 MiB
	// are all asset noise.
	maxBodyBytes = 2 << 20
)

// Options configures the HTTP fetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher fetches a single URL and returns its raw document text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher implements Fetcher using net/http with a browser-identifying
// User-Agent and a bounded timeout. One-shot: no retries.
type HTTPFetcher struct {
	client *http.Client
	ua     string
}

// NewHTTPFetcher creates an HTTPFetcher with the given options.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		ua: opts.UserAgent,
	}
}

// Fetch GETs a URL and returns the response body as text.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.ua)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "fetch: get")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "fetch: read body")
	}

	if resp.StatusCode >= 400 {
		return "", eris.Errorf("fetch: status %d for %s", resp.StatusCode, targetURL)
	}

	return string(body), nil
}
