package main

import (
	"fmt"
	"os"

	dbcmd "github.com/dtnitsch/wordcount/internal/db"
	"github.com/dtnitsch/wordcount/internal/ingest"
	"github.com/dtnitsch/wordcount/internal/query"
	"github.com/dtnitsch/wordcount/internal/serve"
	"github.com/dtnitsch/wordcount/internal/setup"
	"github.com/urfave/cli/v2"
)

func main() {
	formatFlag := func() cli.Flag {
		return &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "output format: yaml or json"}
	}

	app := &cli.App{
		Name:  "wordcount",
		Usage: "Count word frequencies from text, local files and web pages",
		Flags: setup.Flags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (POST /word_counter, GET /word_statistics/{word})",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, overrides server.addr"},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Count the words of literal text, a C:/ file path or a URL",
				ArgsUsage: "<input>",
				Action:    ingest.IngestAction,
				Flags:     []cli.Flag{formatFlag()},
			},
			{
				Name:      "query",
				Usage:     "Print the cumulative count of a word",
				ArgsUsage: "<word>",
				Action:    query.QueryAction,
				Flags:     []cli.Flag{formatFlag()},
			},
			{
				Name:   "history",
				Usage:  "List recent ingestions",
				Action: dbcmd.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "number of ingestions to show"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(setup.ExitRuntime)
	}
}
