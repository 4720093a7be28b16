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

func generateCmd() *cli.Command {
	var (
		prompt       string
		maxNewTokens int64
		topK         int64
		temp         float64
		confidence   float64
		seed         int64
		echoPrompt   bool
		showStats    bool
	)

	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a continuation for a prompt",
		Flags: append(append(commonCorpusFlags(), loggingFlags()...),
			&cli.StringFlag{
				Name:        "prompt",
				Aliases:     []string{"p"},
				Usage:       "prompt text; omit for interactive mode",
				Destination: &prompt,
			},
			&cli.Int64Flag{
				Name:        "max-new-tokens",
				Aliases:     []string{"n"},
				Usage:       "maximum number of words to generate",
				Value:       engine.DefaultMaxNewTokens,
				Destination: &maxNewTokens,
			},
			&cli.Int64Flag{
				Name:        "top-k",
				Aliases:     []string{"top_k", "topk"},
				Usage:       "number of candidates kept per step",
				Value:       engine.DefaultTopK,
				Destination: &topK,
			},
			&cli.Float64Flag{
				Name:        "temp",
				Aliases:     []string{"temperature", "t"},
				Usage:       "sampling temperature",
				Value:       engine.DefaultTemperature,
				Destination: &temp,
			},
			&cli.Float64Flag{
				Name:        "confidence",
				Aliases:     []string{"budget"},
				Usage:       "confidence budget; generation stops once spent",
				Value:       engine.DefaultConfidence,
				Destination: &confidence,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "sampling RNG seed (default -1 = random)",
				Value:       -1,
				Destination: &seed,
			},
			&cli.BoolFlag{
				Name:        "echo-prompt",
				Usage:       "print prompt text before the continuation",
				Destination: &echoPrompt,
			},
			&cli.BoolFlag{
				Name:        "stats",
				Usage:       "print generation stats after each run",
				Value:       true,
				Destination: &showStats,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(c, cfg)
			applyGenerateConfig(c, cfg, &maxNewTokens, &topK, &temp, &confidence, &seed)

			log := newLogger()
			eng, err := loadEngine(log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load engine: %v", err), 1)
			}

			interactive := prompt == ""
			if interactive {
				fmt.Fprintln(os.Stderr, "Interactive mode. Type /exit to quit.")
			}

			scanner := bufio.NewScanner(os.Stdin)
			for {
				input := prompt
				if interactive {
					fmt.Print("> ")
					if !scanner.Scan() {
						break
					}
					input = scanner.Text()
					if strings.TrimSpace(input) == "/exit" {
						break
					}
					if strings.TrimSpace(input) == "" {
						continue
					}
				}

				resp, err := eng.Generate(ctx, engine.Request{
					Prompt:       input,
					MaxNewTokens: int(maxNewTokens),
					TopK:         int(topK),
					Temperature:  temp,
					Confidence:   confidence,
					Seed:         seed,
				})
				if err != nil {
					if resp != nil && resp.Text != "" {
						fmt.Println(resp.Text)
					}
					fmt.Fprintln(os.Stderr, "error: generation:", err)
					if interactive {
						continue
					}
					return cli.Exit("", 1)
				}

				if echoPrompt && !interactive {
					fmt.Printf("%s ", input)
				}
				fmt.Println(resp.Text)

				if showStats {
					tps := 0.0
					if secs := resp.Duration.Seconds(); secs > 0 {
						tps = float64(resp.Tokens) / secs
					}
					fmt.Fprintf(os.Stderr, "Stats: %.2f TPS (%d tokens in %s, stopped by %s)\n",
						tps, resp.Tokens, resp.Duration, resp.Reason)
				}

				if !interactive {
					break
				}
			}
			return nil
		},
	}
}
