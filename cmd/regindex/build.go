package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/poiesic/regindex"
	"github.com/poiesic/regindex/chunking"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/embedding"
	"github.com/poiesic/regindex/ingestion"
	"github.com/poiesic/regindex/storage/jsonfile"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "YAML manifest listing the documents to index (default: GDPR.md, PDPA_2025.md, PDPA_SL.md)",
		},
		&cli.StringFlag{
			Name:  "docs-dir",
			Usage: "Directory relative document paths are resolved against (default: the manifest's directory, or the working directory)",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Path of the JSON chunk collection",
			Value:   jsonfile.DefaultPath,
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Also write the collection to the BadgerDB database in this directory",
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of chunks sent in each embedding call",
			Value: embedding.DefaultBatchSize,
		},
		&cli.DurationFlag{
			Name:  "batch-pause",
			Usage: "Pause after each successful embedding call",
			Value: embedding.DefaultPause,
		},
		&cli.IntFlag{
			Name:  "max-chars",
			Usage: "Soft upper bound on chunk length in characters",
			Value: chunking.DefaultMaxChars,
		},
		&cli.IntFlag{
			Name:  "overlap",
			Usage: "Characters carried from the end of one chunk into the next",
			Value: chunking.DefaultOverlap,
		},
		&cli.IntFlag{
			Name:  "report-interval",
			Usage: "Report progress every N chunks (0 disables)",
			Value: 100,
		},
	}
}

// buildPlan is the resolved input of one build.
type buildPlan struct {
	sources     []core.Source
	baseDir     string
	chunkerOpts []chunking.Option
	batcherOpts []embedding.Option
}

// planBuild resolves sources and tuning from the manifest and flags.
// Flags given explicitly override manifest settings.
func planBuild(c *cli.Context, fs afero.Fs) (*buildPlan, error) {
	plan := &buildPlan{
		sources: ingestion.DefaultSources(),
		baseDir: c.String("docs-dir"),
	}

	if path := c.String("manifest"); path != "" {
		m, err := ingestion.LoadManifest(fs, path)
		if err != nil {
			return nil, err
		}
		plan.sources = m.Documents
		plan.chunkerOpts = m.ChunkerOptions()
		plan.batcherOpts = m.BatcherOptions()
		if plan.baseDir == "" {
			plan.baseDir = filepath.Dir(path)
		}
	}

	if c.IsSet("max-chars") {
		plan.chunkerOpts = append(plan.chunkerOpts, chunking.WithMaxChars(c.Int("max-chars")))
	}
	if c.IsSet("overlap") {
		plan.chunkerOpts = append(plan.chunkerOpts, chunking.WithOverlap(c.Int("overlap")))
	}
	if c.IsSet("batch-size") {
		plan.batcherOpts = append(plan.batcherOpts, embedding.WithBatchSize(c.Int("batch-size")))
	}
	if c.IsSet("batch-pause") {
		plan.batcherOpts = append(plan.batcherOpts, embedding.WithPause(c.Duration("batch-pause")))
	}
	if interval := c.Int("report-interval"); interval > 0 {
		plan.batcherOpts = append(plan.batcherOpts, embedding.WithProgress(c.App.ErrWriter, interval))
	}

	return plan, nil
}

func buildCommand(c *cli.Context) error {
	ctx := c.Context
	fs := afero.NewOsFs()

	plan, err := planBuild(c, fs)
	if err != nil {
		return err
	}

	chunker, err := chunking.New(plan.chunkerOpts...)
	if err != nil {
		return fmt.Errorf("invalid chunking settings: %w", err)
	}

	provider, err := newProvider(ctx, aiConfig(c))
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	defer provider.Close()

	writer := jsonfile.NewWriter(c.String("out"), jsonfile.WithFilesystem(fs))
	opts := []ingestion.Option{
		ingestion.WithFilesystem(fs),
		ingestion.WithBaseDir(plan.baseDir),
		ingestion.WithChunker(chunker),
		ingestion.WithBatcherOptions(plan.batcherOpts...),
		ingestion.WithWriter(writer),
	}

	var pipeline *ingestion.Pipeline
	if dbPath := c.String("db"); dbPath != "" {
		ix, err := regindex.Open(ctx, dbPath, regindex.WithProvider(provider))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer ix.Close()
		pipeline, err = ix.NewPipeline(opts...)
		if err != nil {
			return err
		}
	} else {
		pipeline, err = ingestion.NewPipeline(provider, opts...)
		if err != nil {
			return err
		}
	}

	result, err := pipeline.Run(ctx, plan.sources)
	if err != nil {
		return err
	}

	out := c.App.Writer
	for _, src := range plan.sources {
		if n, ok := result.PerSource[src.Label]; ok {
			fmt.Fprintf(out, "Extracted %d chunks from %s\n", n, src.Label)
		}
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "Skipped %s: %v\n", skipped.Label, skipped.Err)
	}
	if err := result.Embedding.Err(); err != nil {
		fmt.Fprintf(out, "%d embedding batches failed; %d chunks saved without embeddings\n",
			len(result.Embedding.Failures()), result.Embedding.Bare)
		fmt.Fprintf(c.App.ErrWriter, "%v\n", err)
	}

	m := writer.Manifest()
	fmt.Fprintf(out, "Saved %d chunks (%d embedded) to %s in %s\n",
		m.Count, m.Embedded, m.Path, result.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "blake2b-256 %s\n", m.Digest)
	return nil
}
