package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/quillml/quill/internal/extract"
)

func extractCmd() *cli.Command {
	var (
		input  string
		output string
		column string
	)

	return &cli.Command{
		Name:  "extract",
		Usage: "Extract a corpus from a CSV column, one cleaned sentence per line",
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "path to the CSV file",
				Destination: &input,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "path to the corpus to write (default: stdout)",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "column",
				Usage:       "CSV column holding the text",
				Value:       extract.DefaultColumn,
				Destination: &column,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyCommonConfig(c, cfg)

			if input == "" {
				return cli.Exit("error: --input is required", 1)
			}
			in, err := os.Open(input)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open csv: %v", err), 1)
			}
			defer func() { _ = in.Close() }()

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: create corpus: %v", err), 1)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			rows, err := extract.FromCSV(in, column, out)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: extract: %v", err), 1)
			}
			if output != "" {
				fmt.Printf("Extracted %d rows to %s\n", rows, output)
			}
			return nil
		},
	}
}
