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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/promptclass"
	"github.com/poiesic/promptclass/ai"
	"github.com/poiesic/promptclass/classify"
	"github.com/poiesic/promptclass/config"
	"github.com/urfave/cli/v2"
)

// newProvider is swapped out in tests.
var newProvider = promptclass.NewProvider

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	compareFlag := &cli.StringFlag{
		Name:  "compare",
		Usage: "Two comma-separated categories to pick a winner from",
		Value: "cpp,python",
	}
	keywordsFlag := &cli.BoolFlag{
		Name:  "keywords",
		Usage: "List per-keyword posteriors for each category",
	}

	return &cli.App{
		Name:  "promptclass",
		Usage: "Classify technical prompts into weighted keyword categories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the keyword configuration file (JSON or YAML)",
				Value:   "config.json",
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Embedding provider (openai, fastembed)",
				Value: string(ai.ProviderOpenAI),
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL (openai provider)",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name (defaults per provider)",
			},
			&cli.StringFlag{
				Name:  "model-dir",
				Usage: "Directory for downloaded model files (fastembed provider)",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "BadgerDB directory for cached keyword vectors (disabled when empty)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "classify",
				Usage:     "Classify a single prompt",
				ArgsUsage: "PROMPT...",
				Action:    classifyCommand,
				Flags:     []cli.Flag{compareFlag, keywordsFlag},
			},
			{
				Name:   "repl",
				Usage:  "Classify prompts interactively",
				Action: replCommand,
				Flags:  []cli.Flag{compareFlag, keywordsFlag},
			},
			{
				Name:   "serve",
				Usage:  "Serve the classifier over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Embed the keyword vocabulary into the vector cache",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of keywords to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N keywords",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts for each batch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-embed keywords that are already cached",
					},
					&cli.BoolFlag{
						Name:  "purge",
						Usage: "Drop every cached vector of the model before embedding",
					},
				},
			},
		},
	}
}

// aiConfigFromFlags builds the provider config from global flags.
func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	kind := ai.ProviderKind(strings.ToLower(c.String("provider")))

	model := c.String("embedding-model")
	if model == "" {
		switch kind {
		case ai.ProviderFastEmbed:
			model = ai.DefaultFastEmbedModel
		default:
			model = ai.DefaultOpenAIModel
		}
	}

	cfg := ai.NewConfig(
		ai.WithProvider(kind),
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(model),
		ai.WithCacheDir(c.String("model-dir")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

// loadSettings reads the keyword configuration named by --config.
func loadSettings(c *cli.Context) (classify.Settings, error) {
	settings, err := config.Load(c.String("config"), config.WithLogger(slog.Default()))
	if err != nil {
		return classify.Settings{}, err
	}
	return settings, nil
}

// newService builds a Service from the global flags.
func newService(c *cli.Context, opts ...promptclass.ServiceOption) (*promptclass.Service, error) {
	settings, err := loadSettings(c)
	if err != nil {
		return nil, err
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return nil, err
	}
	provider, err := newProvider(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	opts = append([]promptclass.ServiceOption{
		promptclass.WithEmbeddingProvider(provider),
		promptclass.WithLogger(slog.Default()),
	}, opts...)
	if dir := c.String("cache-dir"); dir != "" {
		opts = append(opts, promptclass.WithCacheDir(dir))
	}

	return promptclass.NewService(c.Context, aiConfig, settings, opts...)
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
