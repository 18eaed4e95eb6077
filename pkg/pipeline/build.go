package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/analytics"
	"github.com/dtnitsch/wordcount/pkg/caching"
	"github.com/dtnitsch/wordcount/pkg/db"
	"github.com/dtnitsch/wordcount/pkg/decoder"
	"github.com/dtnitsch/wordcount/pkg/fetcher"
	"github.com/dtnitsch/wordcount/pkg/gateway"
	"github.com/dtnitsch/wordcount/pkg/resolver"
	"github.com/dtnitsch/wordcount/pkg/storage"
)

// Build assembles a Pipeline backed by database from cfg.
func Build(cfg *models.Config, database *db.DB, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var cache *caching.Cache
	if cfg.Fetch.CacheDir != "" && cfg.Fetch.CacheTTL > 0 {
		var err error
		cache, err = caching.NewCache(cfg.Fetch.CacheDir, cfg.Fetch.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize url cache: %w", err)
		}
	}

	s := &storage.Storage{}
	f := fetcher.NewFetcher(cfg.Fetch, cache, logger)
	d := decoder.New(cfg.Counter, s, logger)
	res := resolver.New(d, f, s, logger)
	store := gateway.NewStore(database, cfg.Counter, logger)

	return New(cfg, res, store, database, analytics.New(cfg.DetectLanguage), logger), nil
}
