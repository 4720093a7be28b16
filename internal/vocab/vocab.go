// Package vocab builds and serves the fixed word table generation runs
// against. Ids 0 and 1 are reserved for the unknown and end-of-text
// markers; real words occupy the remaining slots ordered by corpus
// frequency. A Vocabulary is read-only after construction and safe to
// share across concurrent generation calls.
package vocab

import "errors"

const (
	// UnknownID is the reserved id out-of-vocabulary words map to.
	UnknownID = 0
	// EndID is the reserved id of the end-of-text marker.
	EndID = 1

	UnknownToken = "[UNK]"
	EndToken     = "</s>"

	reserved = 2

	// DefaultSize caps the table at the reserved entries plus the most
	// frequent corpus words.
	DefaultSize = 10000
)

var (
	ErrEmptyCorpus  = errors.New("corpus contains no words")
	ErrTooSmall     = errors.New("vocabulary size leaves no room for words")
	ErrCacheVersion = errors.New("unsupported vocabulary cache version")
	ErrCacheCorrupt = errors.New("vocabulary cache is corrupt")
)

// Vocabulary maps words to dense ids and back.
type Vocabulary struct {
	tokens []string
	ids    map[string]int
}

func fromTokens(tokens []string) *Vocabulary {
	ids := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		ids[tok] = i
	}
	return &Vocabulary{tokens: tokens, ids: ids}
}

// Size reports the table length including the reserved entries.
func (v *Vocabulary) Size() int { return len(v.tokens) }

// ID returns the id for token, or UnknownID when the word is not in the
// table.
func (v *Vocabulary) ID(token string) int {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return UnknownID
}

// Token returns the word for id, or the empty string when id is out of
// range.
func (v *Vocabulary) Token(id int) string {
	if id < 0 || id >= len(v.tokens) {
		return ""
	}
	return v.tokens[id]
}
