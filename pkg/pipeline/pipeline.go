// Package pipeline wires source resolution, decoding, normalization,
// parallel counting and the store merge into the two public operations:
// Ingest and Query.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dtnitsch/wordcount/internal/common"
	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/analytics"
	"github.com/dtnitsch/wordcount/pkg/db"
	"github.com/dtnitsch/wordcount/pkg/decoder"
	"github.com/dtnitsch/wordcount/pkg/gateway"
	"github.com/dtnitsch/wordcount/pkg/mapreduce"
	"github.com/dtnitsch/wordcount/pkg/resolver"
	"github.com/dtnitsch/wordcount/pkg/tokenizer"
	"github.com/oklog/ulid/v2"
)

// History persists and lists ingestion records. It is optional.
type History interface {
	RecordIngestion(ctx context.Context, in db.Ingestion) error
	ListIngestions(ctx context.Context, limit int) ([]db.Ingestion, error)
}

// Result describes one completed ingestion.
type Result struct {
	IngestionID   string               `json:"ingestion_id" yaml:"ingestion_id"`
	Status        models.OutcomeStatus `json:"status" yaml:"status"`
	Kind          string               `json:"source_kind" yaml:"source_kind"`
	Format        models.Format        `json:"format,omitempty" yaml:"format,omitempty"`
	TokenCount    int                  `json:"token_count" yaml:"token_count"`
	DistinctWords int                  `json:"distinct_words" yaml:"distinct_words"`
	Language      string               `json:"language,omitempty" yaml:"language,omitempty"`
}

type Pipeline struct {
	resolver  *resolver.Resolver
	store     *gateway.Store
	query     *gateway.Query
	history   History
	analytics *analytics.Analytics
	workers   int
	timeout   time.Duration
	logger    *slog.Logger
}

func New(cfg *models.Config, res *resolver.Resolver, store *gateway.Store, history History, a *analytics.Analytics, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		resolver:  res,
		store:     store,
		query:     gateway.NewQuery(store),
		history:   history,
		analytics: a,
		workers:   max(cfg.Counter.NumOfWorkers, 1),
		timeout:   cfg.IngestTimeout,
		logger:    logger,
	}
}

// Ingest counts the words of raw and merges them into the store.
//
// Classification, missing files, unsupported formats and fetch failures abort
// the call with an error. Once counting is done the call always yields a
// Result whose Status tells how much of the merge succeeded.
func (p *Pipeline) Ingest(ctx context.Context, raw string) (*Result, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: the received input must be a non-empty string", models.ErrBadRequest)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	id := ulid.Make().String()
	kind := resolver.Resolve(raw)
	logger := p.logger.With("ingestion_id", id, "kind", kind.String())
	logger.Info("Got a request to count words", "input", common.Preview(raw, 80))

	payload, err := p.resolver.Obtain(ctx, raw, kind)
	if err != nil {
		return nil, err
	}

	tokens, err := p.normalize(ctx, logger, payload)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	freq, err := mapreduce.Aggregate(ctx, logger, tokens, p.workers)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	result := &Result{
		IngestionID:   id,
		Kind:          kind.String(),
		Format:        payload.Format,
		TokenCount:    freq.Total(),
		DistinctWords: len(freq),
		Language:      p.analytics.DetectLanguage(tokens),
	}
	result.Status = p.store.Merge(ctx, freq)

	logger.Info("Ingestion finished", "format", result.Format, "tokens", result.TokenCount,
		"distinct_words", result.DistinctWords, "status", result.Status, "duration", time.Since(start))

	p.record(ctx, logger, raw, result, time.Since(start))
	return result, nil
}

// normalize tokenizes every chunk of the payload on the worker pool and
// flattens the results in chunk order.
func (p *Pipeline) normalize(ctx context.Context, logger *slog.Logger, payload *decoder.Payload) ([]string, error) {
	var groups [][]string
	var err error
	if payload.Tokens != nil {
		groups, err = mapreduce.Parallel(ctx, logger, "normalize", p.workers, payload.Tokens, func(_ context.Context, t []string) ([]string, error) {
			return tokenizer.Normalize(t), nil
		})
	} else {
		groups, err = mapreduce.Parallel(ctx, logger, "normalize", p.workers, payload.Chunks, func(_ context.Context, text string) ([]string, error) {
			return tokenizer.NormalizeText(text), nil
		})
	}
	if err != nil {
		return nil, err
	}

	n := 0
	for _, g := range groups {
		n += len(g)
	}
	tokens := make([]string, 0, n)
	for _, g := range groups {
		tokens = append(tokens, g...)
	}
	return tokens, nil
}

func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, raw string, r *Result, took time.Duration) {
	if p.history == nil {
		return
	}
	// The call deadline may already be spent by a slow merge.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := p.history.RecordIngestion(ctx, db.Ingestion{
		IngestionID:   r.IngestionID,
		SourceKind:    r.Kind,
		Format:        string(r.Format),
		InputHash:     common.ContentHash([]byte(raw)),
		TokenCount:    r.TokenCount,
		DistinctWords: r.DistinctWords,
		Language:      r.Language,
		Status:        r.Status.String(),
		DurationMS:    took.Milliseconds(),
	})
	if err != nil {
		logger.Warn("Failed to record ingestion", "error", err)
	}
}

// Query returns the cumulative count for word. Words without a letter are
// rejected with models.ErrBadRequest before the store is touched.
func (p *Pipeline) Query(ctx context.Context, word string) (int, error) {
	p.logger.Info("Got a request to get word statistics", "word", word)
	return p.query.Count(ctx, word)
}

// Ingestions lists recent ingestion records, newest first.
func (p *Pipeline) Ingestions(ctx context.Context, limit int) ([]db.Ingestion, error) {
	if p.history == nil {
		return nil, nil
	}
	return p.history.ListIngestions(ctx, limit)
}
