// Package gateway is the only path between the pipeline and the counter store.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/mapreduce"
	"github.com/dtnitsch/wordcount/pkg/tokenizer"
)

// Backend is the narrow store interface the gateway needs. UpsertBatch must
// apply insert-or-increment for every entry atomically.
type Backend interface {
	UpsertBatch(ctx context.Context, entries map[string]int) error
	GetCount(ctx context.Context, word string) (int, error)
}

type Store struct {
	backend Backend
	chunks  int
	workers int
	logger  *slog.Logger
}

func NewStore(backend Backend, cfg models.CounterConfig, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		chunks:  max(cfg.NumOfChunks, 1),
		workers: max(cfg.NumOfWorkers, 1),
		logger:  logger,
	}
}

type entry struct {
	word  string
	count int
}

// Batches splits freq into n batches of roughly equal size. Fewer entries
// than n yields a single batch holding everything; an empty mapping yields
// no batches at all.
func Batches(freq mapreduce.Frequencies, n int) []map[string]int {
	if len(freq) == 0 {
		return nil
	}

	entries := make([]entry, 0, len(freq))
	for w, c := range freq {
		entries = append(entries, entry{word: w, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].word < entries[j].word
	})

	var groups [][]entry
	if len(entries) < n {
		groups = [][]entry{entries}
	} else {
		groups = mapreduce.Partition(entries, n)
	}

	batches := make([]map[string]int, len(groups))
	for i, g := range groups {
		batch := make(map[string]int, len(g))
		for _, e := range g {
			batch[e.word] = e.count
		}
		batches[i] = batch
	}
	return batches
}

// Merge upserts freq in batches and reports how many of them landed. Each
// batch succeeds or fails on its own; a failure never stops the others.
func (s *Store) Merge(ctx context.Context, freq mapreduce.Frequencies) models.OutcomeStatus {
	batches := Batches(freq, s.chunks)
	if len(batches) == 0 {
		s.logger.Warn("No words to merge, nothing was stored")
		return models.StatusError
	}

	done, _ := mapreduce.Parallel(ctx, s.logger, "store", s.workers, batches, func(ctx context.Context, batch map[string]int) (int, error) {
		if err := s.backend.UpsertBatch(ctx, batch); err != nil {
			s.logger.Error("An error occurred while trying to update database", "batch_size", len(batch), "error", err)
			return 0, fmt.Errorf("%w: %w", models.ErrStoreBatch, err)
		}
		return len(batch), nil
	})

	succeeded := len(done)
	failed := len(batches) - succeeded
	status := models.ClassifyOutcome(succeeded, failed)
	s.logger.Info("Store merge finished", "batches", len(batches), "succeeded", succeeded, "failed", failed, "status", status)
	return status
}

// Lookup normalizes word the same way ingested tokens are normalized and
// returns its cumulative count. Unknown words count as 0.
func (s *Store) Lookup(ctx context.Context, word string) (int, error) {
	normalized := tokenizer.NormalizeWord(word)
	if normalized == "" {
		return 0, nil
	}
	count, err := s.backend.GetCount(ctx, normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	return count, nil
}
