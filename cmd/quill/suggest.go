package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/quillml/quill/internal/engine"
)

func suggestCmd() *cli.Command {
	var (
		text  string
		count int64
	)

	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest the most likely next words for a text",
		Flags: append(append(commonCorpusFlags(), loggingFlags()...),
			&cli.StringFlag{
				Name:        "text",
				Aliases:     []string{"p", "prompt"},
				Usage:       "text to complete; omit for interactive mode",
				Destination: &text,
			},
			&cli.Int64Flag{
				Name:        "count",
				Aliases:     []string{"k"},
				Usage:       "number of suggestions",
				Value:       engine.DefaultSuggestions,
				Destination: &count,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(c, cfg)
			applySuggestConfig(c, cfg, &count)

			log := newLogger()
			eng, err := loadEngine(log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load engine: %v", err), 1)
			}

			suggest := func(input string) error {
				words, err := eng.Suggest(ctx, input, int(count))
				if err != nil {
					return err
				}
				fmt.Println(strings.Join(words, "  "))
				return nil
			}

			if text != "" {
				if err := suggest(text); err != nil {
					return cli.Exit(fmt.Sprintf("error: suggest: %v", err), 1)
				}
				return nil
			}

			fmt.Fprintln(os.Stderr, "Interactive mode. Type /exit to quit.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				input := scanner.Text()
				if strings.TrimSpace(input) == "/exit" {
					break
				}
				if strings.TrimSpace(input) == "" {
					continue
				}
				if err := suggest(input); err != nil {
					fmt.Fprintln(os.Stderr, "error: suggest:", err)
				}
			}
			return nil
		},
	}
}
