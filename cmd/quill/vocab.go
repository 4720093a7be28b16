package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/quillml/quill/internal/vocab"
)

func vocabCmd() *cli.Command {
	var showTop int64

	return &cli.Command{
		Name:  "vocab",
		Usage: "Build the vocabulary for a corpus and write the cache",
		Flags: append(append(commonCorpusFlags(), loggingFlags()...),
			&cli.Int64Flag{
				Name:        "show-top",
				Usage:       "print the N most frequent words",
				Value:       10,
				Destination: &showTop,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(c, cfg)

			corpus, err := resolveCorpusPath(corpusPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			cache := vocabCache
			if cache == "" {
				cache = defaultVocabPath(corpus)
			}

			f, err := os.Open(corpus)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open corpus: %v", err), 1)
			}
			defer func() { _ = f.Close() }()

			var r io.Reader = f
			if !noProgress {
				st, err := f.Stat()
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: stat corpus: %v", err), 1)
				}
				bar := progressbar.DefaultBytes(st.Size(), "building vocabulary")
				r = io.TeeReader(f, bar)
			}

			v, err := vocab.Build(r, int(vocabSize))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build vocabulary: %v", err), 1)
			}
			if err := v.Save(cache); err != nil {
				return cli.Exit(fmt.Sprintf("error: write cache: %v", err), 1)
			}

			fmt.Printf("Vocabulary written: %s (%d tokens)\n", cache, v.Size())
			if showTop > 0 {
				top := make([]string, 0, showTop)
				for id := vocab.EndID + 1; id < v.Size() && int64(len(top)) < showTop; id++ {
					top = append(top, v.Token(id))
				}
				fmt.Printf("Most frequent: %s\n", strings.Join(top, " "))
			}
			return nil
		},
	}
}
