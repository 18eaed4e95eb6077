package query

import (
	"errors"
	"os"

	"github.com/dtnitsch/wordcount/internal/setup"
	"github.com/dtnitsch/wordcount/models"
	"github.com/urfave/cli/v2"
)

type wordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// QueryAction prints the cumulative count of one word.
func QueryAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Usage: wordcount query <word>", setup.ExitUsage)
	}
	word := c.Args().First()

	p, database, _, logger, err := setup.Start(c)
	if err != nil {
		return err
	}
	defer database.Close()

	count, err := p.Query(c.Context, word)
	if err != nil {
		logger.Error("query failed", "word", word, "error", err)
		if errors.Is(err, models.ErrBadRequest) {
			return cli.Exit(err.Error(), setup.ExitUsage)
		}
		return cli.Exit(err.Error(), setup.ExitRuntime)
	}

	if err := setup.Print(os.Stdout, c.String("format"), wordCount{Word: word, Count: count}); err != nil {
		return cli.Exit(err.Error(), setup.ExitRuntime)
	}
	return nil
}
