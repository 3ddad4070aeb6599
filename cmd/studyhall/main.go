// Copyright 2026 Studiolore
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/studiolore/studyhall"
	"github.com/studiolore/studyhall/ai"
	"github.com/studiolore/studyhall/ai/mock"
	"github.com/studiolore/studyhall/cache/redis"
	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/httpapi"
	"github.com/studiolore/studyhall/refresh"
	"github.com/studiolore/studyhall/remote"
	"github.com/studiolore/studyhall/retrieval"
	"github.com/studiolore/studyhall/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "studyhall",
		Usage: "Staleness-aware study-content service with ranked topic search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the content and search API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Address to listen on",
						Value: ":8000",
					},
					&cli.StringFlag{
						Name:     "topics-api",
						Usage:    "URL of the external topic refresh API",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "academic-api",
						Usage:    "URL of the academic resource API",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "remote-timeout",
						Usage: "Timeout for remote API calls",
						Value: 10 * time.Second,
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "Chat completion service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Chat completion model name",
						Value: "qwen2.5:3b",
					},
					&cli.BoolFlag{
						Name:  "mock-answerer",
						Usage: "Use the canned answerer instead of a model endpoint",
					},
					&cli.StringFlag{
						Name:  "redis",
						Usage: "Redis address (host:port); empty uses the in-process cache",
					},
					&cli.IntFlag{
						Name:  "redis-db",
						Usage: "Redis database number",
					},
					&cli.DurationFlag{
						Name:  "staleness-window",
						Usage: "How old stored topics may be before refresh",
						Value: core.DefaultStalenessWindow,
					},
					&cli.DurationFlag{
						Name:  "cache-ttl",
						Usage: "TTL for cached payloads and summaries",
						Value: retrieval.DefaultCacheTTL,
					},
				},
			},
			{
				Name:   "refresh",
				Usage:  "Bulk-refresh stale topics from the external API",
				Action: refreshCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "topics-api",
						Usage:    "URL of the external topic refresh API",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "remote-timeout",
						Usage: "Timeout for remote API calls",
						Value: 10 * time.Second,
					},
					&cli.DurationFlag{
						Name:  "staleness-window",
						Usage: "How old stored topics may be before refresh",
						Value: core.DefaultStalenessWindow,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Refresh every topic regardless of age",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per topic fetch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N topics",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	opts := []studyhall.ServiceOption{
		studyhall.WithRemoteConfig(remote.Config{
			TopicURL:    c.String("topics-api"),
			AcademicURL: c.String("academic-api"),
			Timeout:     c.Duration("remote-timeout"),
		}),
	}

	if c.Bool("mock-answerer") {
		opts = append(opts, studyhall.WithAnswerer(mock.NewMockAnswerer()))
	} else {
		opts = append(opts, studyhall.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithModel(c.String("ai-model")),
		)))
	}

	if addr := c.String("redis"); addr != "" {
		redisCache, err := redis.New(context.Background(), redis.Config{
			Addr: addr,
			DB:   c.Int("redis-db"),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		opts = append(opts, studyhall.WithCache(redisCache))
	}

	svc, err := studyhall.NewService(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	retriever, err := svc.NewRetriever(
		retrieval.WithStalenessWindow(c.Duration("staleness-window")),
		retrieval.WithCacheTTL(c.Duration("cache-ttl")),
	)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	ranker, err := svc.NewRanker()
	if err != nil {
		return fmt.Errorf("failed to create ranker: %w", err)
	}

	recorder, err := svc.NewRecorder()
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}
	defer recorder.Release()

	server, err := httpapi.NewServer(retriever, ranker,
		httpapi.WithSearchRecorder(recorder),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return server.Run(c.String("listen"))
}

func refreshCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewTopicRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	source, err := remote.NewTopicClient(remote.Config{
		TopicURL: c.String("topics-api"),
		Timeout:  c.Duration("remote-timeout"),
	})
	if err != nil {
		return fmt.Errorf("failed to create topic client: %w", err)
	}

	cfg := &refresh.Config{
		Window:         c.Duration("staleness-window"),
		Force:          c.Bool("force"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if cfg.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if cfg.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	refresher, err := refresh.NewRefresher(repo, source, cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create refresher: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Topics API: %s\n", c.String("topics-api"))
	fmt.Fprintln(os.Stderr)

	if err := refresher.Run(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	return nil
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
