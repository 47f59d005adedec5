package main

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/urfave/cli/v2"
)

var subjects = []string{
	"The central bank", "Officials in Geneva", "A spokesman for the ministry",
	"Shareholders", "The coalition government", "Rescue workers", "Analysts at Lehman & Co.",
	"The opposition leader", "Farmers in the region", "The visiting delegation",
}

var verbs = []string{
	"said", "announced", "denied", "confirmed", "warned", "reported",
	"rejected claims", "expected", "agreed", "estimated",
}

var objects = []string{
	"that prices would rise by 3.5 percent.", "a new round of talks on Monday.",
	"that the vote was delayed.", "losses of more than $1,000 million.",
	"that output fell < 2 percent > forecasts.", "the agreement after months of negotiation.",
	"that the border would reopen.", "plans to cut 4,000 jobs.",
	"an increase in exports to Asia.", "that no decision had been made.",
}

var docTypes = []string{"story", "story", "story", "advis", "multi", "other"}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func main() {
	app := &cli.App{
		Name:  "mkcorpus",
		Usage: "Write synthetic gzip SGML archives for smoke tests and benchmarks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Output directory",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "files",
				Usage: "Number of archive files",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "docs",
				Usage: "Documents per file",
				Value: 1000,
			},
			&cli.IntFlag{
				Name:  "paragraphs",
				Usage: "Maximum paragraphs per document",
				Value: 6,
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Document ID prefix",
				Value: "SYN_ENG",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Random seed",
				Value: 1,
			},
		},
		Action: generate,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(c *cli.Context) error {
	out := c.String("out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	if c.Int("paragraphs") < 1 {
		return fmt.Errorf("paragraphs must be at least 1")
	}

	rng := rand.New(rand.NewPCG(c.Uint64("seed"), 0))
	for i := range c.Int("files") {
		path := filepath.Join(out, fmt.Sprintf("%s_%04d.gz", strings.ToLower(c.String("prefix")), i))
		if err := writeArchive(path, rng, c.String("prefix"), i, c.Int("docs"), c.Int("paragraphs")); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		slog.Info("wrote archive", "path", path, "docs", c.Int("docs"))
	}
	return nil
}

func writeArchive(path string, rng *rand.Rand, prefix string, file, docs, maxParagraphs int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	w := bufio.NewWriter(zw)
	for d := range docs {
		writeDocument(w, rng, fmt.Sprintf("%s_%04d.%06d", prefix, file, d), 1+rng.IntN(maxParagraphs))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

func writeDocument(w *bufio.Writer, rng *rand.Rand, id string, paragraphs int) {
	fmt.Fprintf(w, "<DOC id=\"%s\" type=\"%s\">\n", id, docTypes[rng.IntN(len(docTypes))])
	fmt.Fprintf(w, "<HEADLINE>\n%s\n</HEADLINE>\n", escaper.Replace(sentence(rng)))
	w.WriteString("<TEXT>\n")
	for range paragraphs {
		w.WriteString("<P>\n")
		// wrap each sentence on its own line, as newswire archives do
		for range 1 + rng.IntN(3) {
			w.WriteString(escaper.Replace(sentence(rng)))
			w.WriteByte('\n')
		}
		w.WriteString("</P>\n")
	}
	w.WriteString("</TEXT>\n</DOC>\n")
}

func sentence(rng *rand.Rand) string {
	return subjects[rng.IntN(len(subjects))] + " " +
		verbs[rng.IntN(len(verbs))] + " " +
		objects[rng.IntN(len(objects))]
}
