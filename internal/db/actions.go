package db

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/wordcount/internal/setup"
	"github.com/urfave/cli/v2"
)

// HistoryAction lists recent ingestions as a table, newest first.
func HistoryAction(c *cli.Context) error {
	limit := c.Int("limit")
	if limit < 1 {
		return cli.Exit("--limit must be at least 1", setup.ExitUsage)
	}

	p, database, _, logger, err := setup.Start(c)
	if err != nil {
		return err
	}
	defer database.Close()

	rows, err := p.Ingestions(c.Context, limit)
	if err != nil {
		logger.Error("failed to list ingestions", "error", err)
		return cli.Exit(err.Error(), setup.ExitRuntime)
	}

	if len(rows) == 0 {
		fmt.Println("No ingestions found")
		return nil
	}

	fmt.Printf("%-26s %-20s %-8s %-6s %-8s %-9s %-9s %-10s\n",
		"ID", "Created", "Kind", "Format", "Status", "Tokens", "Distinct", "Language")
	fmt.Println(strings.Repeat("-", 104))
	for _, r := range rows {
		fmt.Printf("%-26s %-20s %-8s %-6s %-8s %-9d %-9d %-10s\n",
			r.IngestionID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.SourceKind,
			r.Format,
			r.Status,
			r.TokenCount,
			r.DistinctWords,
			r.Language,
		)
	}
	fmt.Printf("\nTotal: %d ingestions\n", len(rows))
	return nil
}
