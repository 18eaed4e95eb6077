// Package setup turns global CLI flags into a logger, a config and a wired
// pipeline. Every command action starts here.
package setup

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/wordcount/models"
	"github.com/dtnitsch/wordcount/pkg/db"
	"github.com/dtnitsch/wordcount/pkg/pipeline"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Exit codes shared by all commands.
const (
	ExitUsage   = 1
	ExitRuntime = 2
)

// Flags are the global flags understood by Config and Logger.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file", EnvVars: []string{"WORDCOUNT_CONFIG"}},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		&cli.IntFlag{Name: "workers", Usage: "override words_counter_helper.num_of_workers"},
		&cli.IntFlag{Name: "chunks", Usage: "override words_counter_helper.num_of_chunks"},
		&cli.IntFlag{Name: "chunk-size", Usage: "override words_counter_helper.files_chunk_size (bytes)"},
		&cli.StringFlag{Name: "db", Usage: "override database.path", EnvVars: []string{"WORDCOUNT_DB"}},
	}
}

// Logger builds the JSON stderr logger. --quiet wins over --log-level.
func Logger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Config loads the config file and applies flag overrides on top of it.
func Config(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("workers") {
		cfg.Counter.NumOfWorkers = c.Int("workers")
	}
	if c.IsSet("chunks") {
		cfg.Counter.NumOfChunks = c.Int("chunks")
	}
	if c.IsSet("chunk-size") {
		cfg.Counter.FilesChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Pipeline opens the database and wires a pipeline over it. The caller
// closes the returned database.
func Pipeline(cfg *models.Config, logger *slog.Logger) (*pipeline.Pipeline, *db.DB, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	p, err := pipeline.Build(cfg, database, logger)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return p, database, nil
}

// Start runs Logger, Config and Pipeline in order and converts failures into
// cli exit errors.
func Start(c *cli.Context) (*pipeline.Pipeline, *db.DB, *models.Config, *slog.Logger, error) {
	logger := Logger(c)

	cfg, err := Config(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return nil, nil, nil, nil, cli.Exit(err.Error(), ExitUsage)
	}

	p, database, err := Pipeline(cfg, logger)
	if err != nil {
		logger.Error("failed to start pipeline", "error", err)
		return nil, nil, nil, nil, cli.Exit(err.Error(), ExitRuntime)
	}
	return p, database, cfg, logger, nil
}

// Print writes v as yaml (the default) or json.
func Print(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
