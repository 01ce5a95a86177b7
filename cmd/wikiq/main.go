// Copyright 2025 Kaiser Guy
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
	"os/signal"
	"strings"
	"syscall"
	"time"

	aiquestions "github.com/kaiserguy/ai-questions-sub000"
	"github.com/kaiserguy/ai-questions-sub000/ai"
	"github.com/kaiserguy/ai-questions-sub000/core"
	"github.com/kaiserguy/ai-questions-sub000/ingestion"
	"github.com/kaiserguy/ai-questions-sub000/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "wikiq",
		Usage: "Question answering search over an offline article corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Answer a question by searching the corpus",
				ArgsUsage: "<question>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus database file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "Oracle service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Oracle model name",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Maximum predicate refinement attempts",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "max-rows",
						Usage: "Largest candidate set a predicate may match",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Documents scored per oracle call",
						Value: 10,
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   10,
					},
					&cli.DurationFlag{
						Name:  "call-timeout",
						Usage: "Per-call oracle timeout",
						Value: 60 * time.Second,
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Suppress progress output",
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Load a JSONL article dump into the corpus",
				ArgsUsage: "<dump-file>",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus database file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of articles written per transaction",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N articles",
						Value: 1000,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print corpus statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus database file",
						Required: true,
					},
				},
			},
			{
				Name:      "browse",
				Usage:     "List articles tagged with a category",
				ArgsUsage: "<category>",
				Action:    browseCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus database file",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of articles to list",
						Value:   10,
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Print a full article by exact title",
				ArgsUsage: "<title>",
				Action:    showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus database file",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
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
		return fmt.Errorf("invalid log level: %s", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a question is required")
	}

	budget := core.SearchBudget{
		MaxRefinementAttempts: c.Int("max-attempts"),
		MaxResultCardinality:  c.Int("max-rows"),
		BatchSize:             c.Int("batch-size"),
		MaxResults:            c.Int("top"),
	}
	if err := core.ValidateBudget(budget); err != nil {
		return err
	}

	engine, err := aiquestions.NewEngine(c.String("db"),
		aiquestions.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithModel(c.String("ai-model")),
			ai.WithCallTimeout(c.Duration("call-timeout")),
		)),
		aiquestions.WithSearchBudget(budget),
	)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	var opts []search.SessionOption
	if !c.Bool("quiet") {
		opts = append(opts, search.WithMonitor(&consoleMonitor{out: os.Stderr}))
	}
	session, err := engine.NewSession(opts...)
	if err != nil {
		return err
	}

	// Ctrl-C cancels the session; whatever was scored so far still prints.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		session.Cancel()
	}()

	result, err := session.Run(ctx, query)
	if err != nil {
		return err
	}

	if len(result.Documents) == 0 {
		fmt.Printf("No results: %s\n", result.Reason)
		return nil
	}
	if result.Reason != "" {
		fmt.Printf("Partial results (%s):\n", result.Reason)
	}
	for i, hit := range result.Documents {
		fmt.Printf("%2d. [%3d/%s] %s\n    %s\n",
			i+1, hit.Score, hit.Source, hit.Document.Title, hit.Document.Summary)
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("exactly one dump file is required")
	}
	dumpPath := c.Args().First()

	dump, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("failed to open dump: %w", err)
	}
	defer dump.Close()

	engine, err := aiquestions.NewEngine(c.String("db"),
		aiquestions.WithOracle(noOracle{}))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline(
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithProgress(ingestion.NewProgressTracker(os.Stderr, c.Int("report-interval"))),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Dump: %s\n", dumpPath)
	report, err := pipeline.Run(ctx, dump)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d articles (%d skipped) in %s\n",
		report.Ingested, report.Skipped, report.Elapsed.Round(time.Millisecond))
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := aiquestions.NewEngine(c.String("db"),
		aiquestions.WithOracle(noOracle{}))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	stats, err := engine.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Documents:     %d\n", stats.TotalDocuments)
	fmt.Printf("Total words:   %d\n", stats.TotalWords)
	fmt.Printf("Words per doc: %.1f avg (%d min, %d max)\n",
		stats.AvgWordsPerDoc, stats.MinWords, stats.MaxWords)
	fmt.Printf("Categories:    %d\n", stats.TotalCategories)
	fmt.Printf("Size:          %.1f MB\n", float64(stats.SizeBytes)/(1024*1024))
	return nil
}

func browseCommand(c *cli.Context) error {
	category := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if category == "" {
		return fmt.Errorf("a category is required")
	}

	engine, err := aiquestions.NewEngine(c.String("db"),
		aiquestions.WithOracle(noOracle{}))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	docs, err := engine.Store().FetchByCategory(context.Background(), category, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Printf("No articles in category %q\n", category)
		return nil
	}

	for i, doc := range docs {
		fmt.Printf("%2d. %s\n    %s\n", i+1, doc.Title, doc.Summary)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if title == "" {
		return fmt.Errorf("a title is required")
	}

	engine, err := aiquestions.NewEngine(c.String("db"),
		aiquestions.WithOracle(noOracle{}))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	doc, err := engine.Store().FetchFullByTitle(context.Background(), title)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n%s\n", doc.Title, doc.Content)
	if len(doc.Categories) > 0 {
		fmt.Printf("\nCategories: %s\n", strings.Join(doc.Categories, ", "))
	}
	return nil
}

// noOracle backs commands that never talk to the model.
type noOracle struct{}

func (noOracle) Complete(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("no oracle configured")
}

// consoleMonitor prints search phase progress to the terminal.
type consoleMonitor struct {
	out *os.File
}

func (m *consoleMonitor) Start(query string) {
	fmt.Fprintf(m.out, "Searching: %s\n", query)
}

func (m *consoleMonitor) PredicateAccepted(predicate string, rows, attempts int) {
	fmt.Fprintf(m.out, "Predicate accepted after %d attempt(s), %d candidate rows\n  %s\n",
		attempts, rows, predicate)
}

func (m *consoleMonitor) BatchScoringStarted(documents, batches int) {
	fmt.Fprintf(m.out, "Scoring %d documents in %d batch(es)\n", documents, batches)
}

func (m *consoleMonitor) AfterBatchScoring(scored []*core.ScoredDocument) {}

func (m *consoleMonitor) AfterSelection(topK []*core.ScoredDocument) {
	fmt.Fprintf(m.out, "Selected %d finalist(s)\n", len(topK))
}

func (m *consoleMonitor) DeepScoringStarted(documents int) {
	fmt.Fprintf(m.out, "Re-scoring finalists on full content\n")
}

func (m *consoleMonitor) AfterDeepScoring(rescored []*core.ScoredDocument) {}

func (m *consoleMonitor) Finish(result *core.Result) {
	fmt.Fprintf(m.out, "Done: %d result(s)\n\n", len(result.Documents))
}
