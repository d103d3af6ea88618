package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/regindex"
	"github.com/poiesic/regindex/search"
	"github.com/poiesic/regindex/storage/jsonfile"
	"github.com/urfave/cli/v2"
)

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "chunks",
			Aliases: []string{"c"},
			Usage:   "JSON chunk collection to search",
			Value:   jsonfile.DefaultPath,
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Search the BadgerDB database in this directory instead of the JSON collection",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Maximum number of chunks to print",
			Value:   search.DefaultLimit,
		},
		&cli.Float64Flag{
			Name:  "min-score",
			Usage: "Minimum cosine similarity",
			Value: float64(search.DefaultMinScore),
		},
		&cli.Float64Flag{
			Name:  "keyword-boost",
			Usage: "Score added to chunks containing every query keyword",
		},
	}
}

func searchCommand(c *cli.Context) error {
	ctx := c.Context

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return errors.New("a query is required")
	}

	provider, err := newProvider(ctx, aiConfig(c))
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	defer provider.Close()

	opts := []search.Option{
		search.WithLimit(c.Int("limit")),
		search.WithMinScore(float32(c.Float64("min-score"))),
		search.WithKeywordBoost(float32(c.Float64("keyword-boost"))),
	}

	var searcher *search.Searcher
	if dbPath := c.String("db"); dbPath != "" {
		ix, err := regindex.Open(ctx, dbPath, regindex.WithProvider(provider))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer ix.Close()
		searcher, err = ix.NewSearcher(opts...)
		if err != nil {
			return err
		}
	} else {
		reader := jsonfile.NewReader(c.String("chunks"))
		searcher, err = search.NewSearcher(provider.Embedder(), reader, opts...)
		if err != nil {
			return err
		}
	}
	defer searcher.Release()

	results, err := searcher.SearchWithMonitor(ctx, query, search.LogMonitor(slog.Default()))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "No matching chunks.")
		return nil
	}
	fmt.Fprintln(c.App.Writer, search.FormatContext(results))
	return nil
}
