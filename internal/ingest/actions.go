package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/wordcount/internal/setup"
	"github.com/dtnitsch/wordcount/models"
	"github.com/urfave/cli/v2"
)

// IngestAction counts the words of one input (literal text, C:/ file path or
// URL) and prints the ingestion result.
func IngestAction(c *cli.Context) error {
	if c.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  wordcount ingest "some literal text"`)
		fmt.Fprintln(os.Stderr, `  wordcount ingest C:/docs/report.docx`)
		fmt.Fprintln(os.Stderr, `  wordcount ingest https://example.com`)
		return cli.Exit("", setup.ExitUsage)
	}
	raw := strings.Join(c.Args().Slice(), " ")

	p, database, _, logger, err := setup.Start(c)
	if err != nil {
		return err
	}
	defer database.Close()

	result, err := p.Ingest(c.Context, raw)
	if err != nil {
		logger.Error("ingestion failed", "error", err)
		code := setup.ExitRuntime
		if errors.Is(err, models.ErrBadRequest) {
			code = setup.ExitUsage
		}
		return cli.Exit(err.Error(), code)
	}

	if err := setup.Print(os.Stdout, c.String("format"), result); err != nil {
		return cli.Exit(err.Error(), setup.ExitRuntime)
	}
	if result.Status == models.StatusError {
		return cli.Exit("", setup.ExitRuntime)
	}
	return nil
}
