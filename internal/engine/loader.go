package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/quillml/quill/internal/logger"
	"github.com/quillml/quill/internal/ngram"
	"github.com/quillml/quill/internal/tokenizer"
	"github.com/quillml/quill/internal/vocab"
)

// Options configures Load. CorpusPath is the only required field.
type Options struct {
	// CorpusPath points at the training text, one sentence per line.
	CorpusPath string
	// VocabPath caches the built vocabulary as JSON. Empty disables the
	// cache and every Load rebuilds from the corpus. A usable cache wins
	// over VocabSize.
	VocabPath string
	// VocabSize caps the vocabulary when it is built from the corpus;
	// zero means vocab.DefaultSize.
	VocabSize int
	// Progress draws byte progress bars on stderr during corpus scans.
	Progress bool
	Log      logger.Logger
}

// Load builds a ready-to-serve Engine from a corpus: vocabulary first
// (from cache when possible), then one transition-counting pass.
func Load(opts Options) (*Engine, error) {
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}
	size := opts.VocabSize
	if size <= 0 {
		size = vocab.DefaultSize
	}

	v, err := loadOrBuildVocab(opts, size, log)
	if err != nil {
		return nil, err
	}

	r, done, err := openCorpus(opts.CorpusPath, opts.Progress, "counting transitions")
	if err != nil {
		return nil, err
	}
	model, err := ngram.Train(r, v)
	done()
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}

	log.Info("model ready", "vocab", v.Size(), "observations", model.Observations())
	return New(v, tokenizer.NewWord(v), model, log), nil
}

func loadOrBuildVocab(opts Options, size int, log logger.Logger) (*vocab.Vocabulary, error) {
	if opts.VocabPath != "" {
		v, err := vocab.Load(opts.VocabPath)
		switch {
		case err == nil:
			log.Debug("vocabulary cache hit", "path", opts.VocabPath, "size", v.Size())
			return v, nil
		case errors.Is(err, os.ErrNotExist):
			// First run for this corpus; build below.
		default:
			log.Warn("vocabulary cache unusable, rebuilding", "path", opts.VocabPath, "err", err)
		}
	}

	r, done, err := openCorpus(opts.CorpusPath, opts.Progress, "building vocabulary")
	if err != nil {
		return nil, err
	}
	v, err := vocab.Build(r, size)
	done()
	if err != nil {
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}

	if opts.VocabPath != "" {
		if err := v.Save(opts.VocabPath); err != nil {
			log.Warn("vocabulary cache not written", "path", opts.VocabPath, "err", err)
		} else {
			log.Debug("vocabulary cached", "path", opts.VocabPath, "size", v.Size())
		}
	}
	return v, nil
}

// openCorpus opens the corpus for one streaming pass, optionally teeing
// reads through a byte progress bar. done releases the file either way.
func openCorpus(path string, progress bool, label string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus: %w", err)
	}
	if !progress {
		return f, func() { _ = f.Close() }, nil
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat corpus: %w", err)
	}
	bar := progressbar.DefaultBytes(st.Size(), label)
	done := func() {
		_ = bar.Finish()
		_ = f.Close()
	}
	return io.TeeReader(f, bar), done, nil
}
