// Package resolver classifies raw input and obtains its payload.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/decoder"
	"github.com/dtnitsch/wordcount/pkg/fetcher"
	"github.com/dtnitsch/wordcount/pkg/storage"
)

var (
	// Drive-letter root, forward-slash segments, final extension.
	filePathPattern = regexp.MustCompile(`^[A-Za-z]:/(?:[^<>:"/\\|?*]+/)*[^<>:"/\\|?*]+\.[A-Za-z]+$`)
	urlPattern      = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
)

type matcher struct {
	kind    models.SourceKind
	pattern *regexp.Regexp
}

// matchers is tried in order; the first hit wins and Literal is the fallback.
var matchers = []matcher{
	{kind: models.SourceFilePath, pattern: filePathPattern},
	{kind: models.SourceURL, pattern: urlPattern},
}

// Resolve classifies raw by shape alone. It never touches the filesystem.
func Resolve(raw string) models.SourceKind {
	for _, m := range matchers {
		if m.pattern.MatchString(raw) {
			return m.kind
		}
	}
	return models.SourceLiteral
}

// HTMLFetcher retrieves a URL body for decoding.
type HTMLFetcher interface {
	GetHtmlBytes(ctx context.Context, url string) (*fetcher.Response, error)
}

type Resolver struct {
	decoder *decoder.Decoder
	fetcher HTMLFetcher
	storage *storage.Storage
	logger  *slog.Logger
}

func New(d *decoder.Decoder, f HTMLFetcher, s *storage.Storage, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if s == nil {
		s = &storage.Storage{}
	}
	return &Resolver{decoder: d, fetcher: f, storage: s, logger: logger}
}

// Obtain produces the payload for raw according to kind. A file-path shaped
// input that names no existing file fails with models.ErrNotFound; it is
// never reinterpreted as literal text.
func (r *Resolver) Obtain(ctx context.Context, raw string, kind models.SourceKind) (*decoder.Payload, error) {
	switch kind {
	case models.SourceFilePath:
		if !r.storage.HasFile(raw) {
			r.logger.Warn("File does not exist", "path", raw)
			return nil, fmt.Errorf("%w: the request contains a path to a file that does not exist", models.ErrNotFound)
		}
		r.logger.Info("The received input is a valid path to a file", "path", raw)
		return r.decoder.DecodeFile(ctx, raw)

	case models.SourceURL:
		r.logger.Info("The received input has URL pattern", "url", raw)
		resp, err := r.fetcher.GetHtmlBytes(ctx, raw)
		if err != nil {
			r.logger.Error("Failed to retrieve data from URL", "url", raw, "error", err)
			return nil, err
		}
		return r.decoder.DecodeHTML(ctx, resp)

	default:
		r.logger.Info("The received input is a simple string", "length", len(raw))
		return r.decoder.Literal(raw), nil
	}
}
