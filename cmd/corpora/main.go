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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/corpora"
	"github.com/poiesic/corpora/config"
	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/indexing"
	"github.com/poiesic/corpora/metrics"
	"github.com/poiesic/corpora/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "corpora",
		Usage: "Stream compressed document archives into a searchable index",
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
				Name:   "index",
				Usage:  "Parse a corpus and build an index from it",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML configuration file; flags override its values",
					},
					&cli.StringFlag{
						Name:  "corpus-kind",
						Usage: "Corpus kind (gigaword, index)",
						Value: "gigaword",
					},
					&cli.StringFlag{
						Name:    "corpus",
						Aliases: []string{"r"},
						Usage:   "Corpus root directory, or index path for kind \"index\"",
					},
					&cli.StringFlag{
						Name:  "suffix",
						Usage: "Only read archive files with this suffix",
					},
					&cli.StringFlag{
						Name:  "label",
						Usage: "Corpus label stored with every document",
						Value: "gigaword",
					},
					&cli.StringFlag{
						Name:    "index",
						Aliases: []string{"i"},
						Usage:   "Path to the index directory",
					},
					&cli.BoolFlag{
						Name:  "append",
						Usage: "Add to an existing index instead of replacing it",
					},
					&cli.IntFlag{
						Name:  "buffer-size-mb",
						Usage: "In-memory write buffer size in MB",
						Value: 64,
					},
					&cli.BoolFlag{
						Name:  "postings",
						Usage: "Store token positions and offsets",
					},
					&cli.BoolFlag{
						Name:  "term-vectors",
						Usage: "Store a term vector per document",
					},
					&cli.StringFlag{
						Name:  "stoplist",
						Usage: "YAML stopword list applied to the text field",
					},
					&cli.BoolFlag{
						Name:  "nlp",
						Usage: "Annotate documents before indexing",
					},
					&cli.StringFlag{
						Name:  "nlp-engine",
						Usage: "Annotation engine (basic, openai)",
						Value: "basic",
					},
					&cli.StringFlag{
						Name:  "nlp-host",
						Usage: "Tagging service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "nlp-model",
						Usage: "Tagging model name",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Documents annotated concurrently",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum annotation attempts per document",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 500 * time.Millisecond,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: indexing.DefaultReportInterval,
					},
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Serve Prometheus metrics on this address while indexing",
					},
				},
			},
			{
				Name:   "dump",
				Usage:  "Print stored documents as JSON lines",
				Action: dumpCommand,
				Flags: []cli.Flag{
					indexFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of documents to print (0 for all)",
					},
					&cli.BoolFlag{
						Name:  "annotations",
						Usage: "Include annotations",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print document count and on-disk size of an index",
				Action: statsCommand,
				Flags:  []cli.Flag{indexFlag()},
			},
			{
				Name:      "postings",
				Usage:     "Print the postings of a term",
				ArgsUsage: "<term>",
				Action:    postingsCommand,
				Flags: []cli.Flag{
					indexFlag(),
					&cli.StringFlag{
						Name:  "field",
						Usage: "Field to look the term up in",
						Value: core.TextKey,
					},
				},
			},
		},
	}
}

func indexFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "index",
		Aliases:  []string{"i"},
		Usage:    "Path to the index directory",
		Required: true,
	}
}

// loadConfig reads the optional config file and applies explicitly set flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	set := func(name string, apply func()) {
		if c.IsSet(name) || c.String("config") == "" {
			apply()
		}
	}
	set("corpus-kind", func() { cfg.Corpus.Kind = c.String("corpus-kind") })
	set("corpus", func() { cfg.Corpus.Root = c.String("corpus") })
	set("suffix", func() { cfg.Corpus.Suffix = c.String("suffix") })
	set("label", func() { cfg.Corpus.Label = c.String("label") })
	set("index", func() { cfg.Index.Path = c.String("index") })
	set("append", func() { cfg.Index.Append = c.Bool("append") })
	set("buffer-size-mb", func() { cfg.Index.BufferSizeMB = c.Int("buffer-size-mb") })
	set("postings", func() { cfg.Index.StorePostings = c.Bool("postings") })
	set("term-vectors", func() { cfg.Index.StoreTermVectors = c.Bool("term-vectors") })
	set("stoplist", func() { cfg.Index.Stoplist = c.String("stoplist") })
	set("nlp", func() { cfg.NLP.Enabled = c.Bool("nlp") })
	set("nlp-engine", func() { cfg.NLP.Engine = c.String("nlp-engine") })
	set("nlp-host", func() { cfg.NLP.Host = c.String("nlp-host") })
	set("nlp-model", func() { cfg.NLP.Model = c.String("nlp-model") })
	set("workers", func() { cfg.NLP.Workers = c.Int("workers") })
	set("max-retries", func() { cfg.NLP.MaxAttempts = c.Int("max-retries") })
	set("retry-delay", func() { cfg.NLP.RetryDelay = c.Duration("retry-delay") })
	set("report-interval", func() { cfg.Progress.ReportInterval = c.Int("report-interval") })
	set("metrics-addr", func() { cfg.Metrics.Addr = c.String("metrics-addr") })
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, nil
}

func indexCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []indexing.Option{indexing.WithProgressWriter(c.App.ErrWriter)}
	if cfg.Metrics.Addr != "" {
		m := metrics.New(true)
		opts = append(opts, indexing.WithMetrics(m))

		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := m.Serve(srvCtx, cfg.Metrics.Addr, slog.Default()); err != nil {
				slog.Error("metrics server failed", "err", err)
			}
		}()
	}

	run, err := corpora.NewRun(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to set up indexing: %w", err)
	}
	defer run.Close()

	fmt.Fprintf(c.App.ErrWriter, "Corpus: %s (%s)\n", cfg.Corpus.Root, cfg.Corpus.Kind)
	fmt.Fprintf(c.App.ErrWriter, "Index: %s\n", cfg.Index.Path)
	if cfg.NLP.Enabled {
		fmt.Fprintf(c.App.ErrWriter, "Annotation engine: %s\n", cfg.NLP.Engine)
	}
	fmt.Fprintln(c.App.ErrWriter)

	stats, err := run.Execute(ctx)
	if err != nil {
		if kind := core.KindOf(err); kind != 0 {
			return fmt.Errorf("indexing failed (%s): %w", kind, err)
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(c.App.ErrWriter, "Documents: %d, annotated: %d, merge: %s, elapsed: %s\n",
		stats.Documents, stats.Annotated,
		stats.MergeTime.Round(time.Millisecond), stats.Elapsed.Round(time.Millisecond))
	return nil
}

// dumpedDocument is the JSON form of a stored document.
type dumpedDocument struct {
	ID         core.ID           `json:"id"`
	Corpus     string            `json:"corpus"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Text       string            `json:"text"`
	Annotation *core.Annotation  `json:"annotation,omitempty"`
}

func dumpCommand(c *cli.Context) error {
	ctx := c.Context
	idx, err := corpora.OpenIndex(c.String("index"))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	limit := c.Int("limit")
	enc := json.NewEncoder(c.App.Writer)
	var after core.ID
	printed := 0
	for limit <= 0 || printed < limit {
		batch, err := idx.Reader().Scan(ctx, after, 100)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		for _, sr := range batch {
			after = sr.ID
			doc, err := idx.Decode(sr.Record)
			if err != nil {
				return fmt.Errorf("document %d: %w", sr.ID, err)
			}
			out := dumpedDocument{ID: sr.ID, Corpus: doc.Corpus, Text: doc.Text}
			for name, v := range doc.Attributes {
				if s, ok := v.(core.StringValue); ok {
					if out.Attributes == nil {
						out.Attributes = make(map[string]string)
					}
					out.Attributes[name] = string(s)
				}
			}
			if c.Bool("annotations") {
				out.Annotation = doc.Annotation()
			}
			if err := enc.Encode(out); err != nil {
				return err
			}
			printed++
			if limit > 0 && printed >= limit {
				return nil
			}
		}
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	path := c.String("index")
	backend, err := badger.OpenBackend(path, badger.BackendOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer backend.Close()

	n, err := badger.NewReader(backend).NumDocs(c.Context)
	if err != nil {
		return err
	}
	lsm, vlog := backend.Size()
	fmt.Fprintf(c.App.Writer, "Index: %s\n", path)
	fmt.Fprintf(c.App.Writer, "Documents: %d\n", n)
	fmt.Fprintf(c.App.Writer, "LSM size: %d bytes\n", lsm)
	fmt.Fprintf(c.App.Writer, "Value log size: %d bytes\n", vlog)
	return nil
}

func postingsCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one term, got %d arguments", c.NArg())
	}
	term := strings.ToLower(c.Args().First())
	field := c.String("field")

	idx, err := corpora.OpenIndex(c.String("index"))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	postings, err := idx.Reader().Postings(c.Context, field, term)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s:%s df=%d\n", field, term, len(postings))
	for _, p := range postings {
		fmt.Fprintf(c.App.Writer, "doc=%d freq=%d", p.DocID, p.Freq)
		if len(p.Positions) > 0 {
			fmt.Fprintf(c.App.Writer, " positions=%v", p.Positions)
		}
		fmt.Fprintln(c.App.Writer)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
