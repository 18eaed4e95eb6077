package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/caching"
	"golang.org/x/net/html/charset"
)

type Fetcher struct {
	client    *http.Client
	userAgent string
	cache     *caching.Cache
	logger    *slog.Logger
}

// Response is a fully read body together with its resolved character set.
type Response struct {
	Body    []byte
	Charset string
}

func NewFetcher(cfg models.FetchConfig, cache *caching.Cache, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		cache:     cache,
		logger:    logger,
	}
}

// GetHtmlBytes fetches url and reads the whole body. Transport failures wrap
// models.ErrFetchFailed; a non-2xx status is a *models.UpstreamStatusError.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) (*Response, error) {
	if f.cache != nil {
		if e, ok := f.cache.Get(url); ok {
			f.logger.Debug("Serving URL body from cache", "url", url)
			return &Response{Body: e.Body, Charset: e.Charset}, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", models.ErrFetchFailed, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to make HTTP request: %w", models.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.UpstreamStatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", models.ErrFetchFailed, err)
	}

	_, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))
	out := &Response{Body: bodyBytes, Charset: name}

	if f.cache != nil {
		if err := f.cache.Set(url, &caching.Entry{Body: out.Body, Charset: out.Charset}); err != nil {
			f.logger.Warn("Failed to cache URL body", "url", url, "error", err)
		}
	}
	return out, nil
}
