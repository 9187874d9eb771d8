// Package fetch retrieves page HTML with a fixed fallback sequence:
// direct fetch, then each configured proxy in order, then (optionally) a
// headless browser. There is no backoff; each attempt has its own timeout.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxRedirects = 5

var ErrAllAttemptsFailed = errors.New("all fetch attempts failed")

// Fetcher retrieves page HTML. Safe for concurrent use; calls share no
// mutable state.
type Fetcher struct {
	client  *http.Client
	proxies []ProxyTemplate
	browser *BrowserFetcher
	timeout time.Duration
	logger  *zap.Logger
}

func NewFetcher(timeout time.Duration, logger *zap.Logger) *Fetcher {
	return NewFetcherWithClient(&http.Client{}, DefaultProxies(), timeout, logger)
}

// NewFetcherWithClient allows injecting the HTTP client and proxy list,
// used by tests and by callers that need custom transports.
func NewFetcherWithClient(client *http.Client, proxies []ProxyTemplate, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		proxies: proxies,
		timeout: timeout,
		logger:  logger,
	}
}

// WithBrowser enables the headless-browser final fallback.
func (f *Fetcher) WithBrowser(b *BrowserFetcher) *Fetcher {
	f.browser = b
	return f
}

// ResolveURL follows up to 5 redirects via a HEAD request and returns the
// final URL. Failure is non-fatal: the original URL is returned.
func (f *Fetcher) ResolveURL(ctx context.Context, rawURL string) string {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return rawURL
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{
		Transport: f.client.Transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		f.logger.Debug("redirect resolution failed, keeping original URL",
			zap.String("url", rawURL), zap.Error(err))
		return rawURL
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return rawURL
	}
	return resp.Request.URL.String()
}

// FetchHTML retrieves the page body, trying the direct URL first and then
// each proxy in order. It fails only when every attempt fails, carrying the
// last underlying error.
func (f *Fetcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	html, lastErr := f.get(ctx, rawURL, true)
	if lastErr == nil {
		return html, nil
	}
	f.logger.Warn("direct fetch failed, trying proxies", zap.String("url", rawURL), zap.Error(lastErr))

	for i, proxy := range f.proxies {
		html, err := f.get(ctx, proxy(rawURL), false)
		if err == nil {
			return html, nil
		}
		f.logger.Warn("proxy fetch failed", zap.Int("proxy", i), zap.Error(err))
		lastErr = err
	}

	if f.browser != nil {
		html, err := f.browser.Fetch(ctx, rawURL)
		if err == nil {
			return html, nil
		}
		f.logger.Warn("browser fetch failed", zap.String("url", rawURL), zap.Error(err))
		lastErr = err
	}

	return "", fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string, browserHeaders bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if browserHeaders {
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", acceptHeader)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
