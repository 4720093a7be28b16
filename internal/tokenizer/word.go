package tokenizer

import (
	"fmt"
	"strings"

	"github.com/quillml/quill/internal/vocab"
)

// Word tokenizes on Unicode whitespace and maps each word through a fixed
// vocabulary. Out-of-vocabulary words encode to the unknown id; reserved
// ids are dropped on decode so generated text never shows markers.
type Word struct {
	vocab *vocab.Vocabulary
}

func NewWord(v *vocab.Vocabulary) *Word {
	return &Word{vocab: v}
}

func (w *Word) Encode(text string) ([]int, error) {
	fields := strings.Fields(text)
	ids := make([]int, len(fields))
	for i, f := range fields {
		ids[i] = w.vocab.ID(f)
	}
	return ids, nil
}

func (w *Word) Decode(ids []int) (string, error) {
	var b strings.Builder
	for _, id := range ids {
		if id < 0 || id >= w.vocab.Size() {
			return "", fmt.Errorf("%w: %d outside vocabulary of %d", ErrTokenRange, id, w.vocab.Size())
		}
		if id == vocab.UnknownID || id == vocab.EndID {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w.vocab.Token(id))
	}
	return b.String(), nil
}
