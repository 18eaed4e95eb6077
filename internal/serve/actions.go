package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/wordcount/internal/setup"
	"github.com/dtnitsch/wordcount/pkg/server"
	"github.com/urfave/cli/v2"
)

// ServeAction runs the HTTP API until SIGINT or SIGTERM.
func ServeAction(c *cli.Context) error {
	p, database, cfg, logger, err := setup.Start(c)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting word counter service", "db", database.Path(),
		"workers", cfg.Counter.NumOfWorkers, "chunks", cfg.Counter.NumOfChunks)

	if err := server.New(p, logger).ListenAndServe(ctx, cfg.Server); err != nil {
		logger.Error("server stopped", "error", err)
		return cli.Exit(err.Error(), setup.ExitRuntime)
	}
	return nil
}
