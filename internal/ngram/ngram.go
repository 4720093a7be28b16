// Package ngram provides a bigram language model over vocabulary ids. It
// is the scoring backend for generation: counts come straight from a
// corpus scan, scores are smoothed log-counts, and the whole model is
// read-only once trained.
package ngram

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/quillml/quill/internal/vocab"
)

// alpha is the add-α smoothing constant, so unseen transitions keep a
// small positive count.
const alpha = 0.5

var ErrEmptyCorpus = errors.New("corpus contains no sentences")

// Model holds bigram transition counts. Safe for concurrent readers.
type Model struct {
	vocab    *vocab.Vocabulary
	follow   []map[int]int
	unigrams []int
	total    int
}

// Train counts transitions from r, one sentence per line. Every line is
// terminated by the end id, which then serves as the context for the
// first word of the following line, so end-of-text doubles as
// start-of-text.
func Train(r io.Reader, v *vocab.Vocabulary) (*Model, error) {
	m := &Model{
		vocab:    v,
		follow:   make([]map[int]int, v.Size()),
		unigrams: make([]int, v.Size()),
	}

	prev := vocab.EndID
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		for _, f := range fields {
			id := v.ID(f)
			m.observe(prev, id)
			prev = id
		}
		m.observe(prev, vocab.EndID)
		prev = vocab.EndID
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	if m.total == 0 {
		return nil, ErrEmptyCorpus
	}
	return m, nil
}

func (m *Model) observe(prev, next int) {
	f := m.follow[prev]
	if f == nil {
		f = make(map[int]int)
		m.follow[prev] = f
	}
	f[next]++
	m.unigrams[next]++
	m.total++
}

// VocabSize reports the fixed score vector length.
func (m *Model) VocabSize() int { return m.vocab.Size() }

// Observations reports how many transitions training saw.
func (m *Model) Observations() int { return m.total }

// Score returns log(count+α) for every vocabulary id following the last
// token of seq. An empty seq scores from the end-of-text context, and a
// context with no outgoing transitions falls back to unigram counts. The
// unknown id is masked to -Inf so restriction never proposes it.
func (m *Model) Score(ctx context.Context, seq []int) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prev := vocab.EndID
	if len(seq) > 0 {
		prev = seq[len(seq)-1]
	}
	if prev < 0 || prev >= m.vocab.Size() {
		return nil, fmt.Errorf("context id %d outside vocabulary of %d", prev, m.vocab.Size())
	}

	scores := make([]float32, m.vocab.Size())
	if f := m.follow[prev]; len(f) > 0 {
		for i := range scores {
			scores[i] = float32(math.Log(alpha + float64(f[i])))
		}
	} else {
		for i := range scores {
			scores[i] = float32(math.Log(alpha + float64(m.unigrams[i])))
		}
	}
	scores[vocab.UnknownID] = float32(math.Inf(-1))
	return scores, nil
}
