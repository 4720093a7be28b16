package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/quillml/quill/internal/engine"
	"github.com/quillml/quill/internal/logger"
	"github.com/quillml/quill/internal/vocab"
)

var (
	corpusPath string
	vocabCache string
	vocabSize  int64
	noProgress bool
	logLevel   string
	logFormat  string
	debug      bool
)

func commonCorpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "corpus",
			Aliases:     []string{"c"},
			Usage:       "path to training text, one sentence per line",
			Destination: &corpusPath,
		},
		&cli.StringFlag{
			Name:        "vocab-cache",
			Usage:       "path to the vocabulary cache (default: derived from the corpus path)",
			Destination: &vocabCache,
		},
		&cli.Int64Flag{
			Name:        "vocab-size",
			Usage:       "maximum vocabulary size including reserved ids",
			Value:       vocab.DefaultSize,
			Destination: &vocabSize,
		},
		&cli.BoolFlag{
			Name:        "no-progress",
			Usage:       "disable progress bars during corpus scans",
			Destination: &noProgress,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// loadEngine resolves the corpus from the shared flag destinations and
// builds the engine, caching the vocabulary next to the corpus unless
// --vocab-cache says otherwise.
func loadEngine(log logger.Logger) (*engine.Engine, error) {
	corpus, err := resolveCorpusPath(corpusPath)
	if err != nil {
		return nil, err
	}
	cache := vocabCache
	if cache == "" {
		cache = defaultVocabPath(corpus)
	}
	return engine.Load(engine.Options{
		CorpusPath: corpus,
		VocabPath:  cache,
		VocabSize:  int(vocabSize),
		Progress:   !noProgress,
		Log:        log,
	})
}

// newLogger builds the process logger from the logging flag destinations.
func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	default:
		return logger.Pretty(os.Stderr, level)
	}
}
