// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/regindex"
	"github.com/poiesic/regindex/ai"
	"github.com/urfave/cli/v2"
)

// newProvider builds the embedding provider. Tests replace it.
var newProvider = regindex.NewProvider

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "regindex",
		Usage: "Chunk and embed regulatory documents for retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: ".env.local",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Chunk the source documents, embed the chunks and write the collection",
				Action: buildCommand,
				Flags:  append(buildFlags(), providerFlags()...),
			},
			{
				Name:      "search",
				Usage:     "Print the chunks most relevant to a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags:     append(searchFlags(), providerFlags()...),
			},
		},
	}
}

func providerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "provider",
			Usage: "Embedding provider (gemini, openai)",
			Value: ai.ProviderGemini,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (required for openai, endpoint override for gemini)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: ai.DefaultEmbeddingModel,
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Embedding service API key",
			EnvVars: []string{"GEMINI_API_KEY"},
		},
	}
}

func before(c *cli.Context) error {
	if err := setupLogger(c); err != nil {
		return err
	}
	return loadEnvFile(c.String("env-file"))
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("env file not found", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	slog.Debug("loaded env file", "path", path)
	return nil
}

// aiConfig assembles the provider configuration from flags. The API key
// falls back to the environment so values from the env file are seen.
func aiConfig(c *cli.Context) *ai.Config {
	apiKey := c.String("api-key")
	if apiKey == "" {
		switch strings.ToLower(c.String("provider")) {
		case ai.ProviderOpenAI:
			apiKey = os.Getenv("OPENAI_API_KEY")
		default:
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	}

	return ai.NewConfig(
		ai.WithProvider(c.String("provider")),
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIKey(apiKey),
	)
}
