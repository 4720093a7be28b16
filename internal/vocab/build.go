package vocab

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Build scans whitespace-separated words from r and keeps the size-2 most
// frequent ones behind the reserved entries. Frequency ties break by
// lexical order, so identical corpora always produce identical tables.
func Build(r io.Reader, size int) (*Vocabulary, error) {
	if size <= reserved {
		return nil, fmt.Errorf("%w: %d", ErrTooSmall, size)
	}

	counts := make(map[string]int)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		counts[sc.Text()]++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	if len(counts) == 0 {
		return nil, ErrEmptyCorpus
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > size-reserved {
		words = words[:size-reserved]
	}

	tokens := make([]string, 0, len(words)+reserved)
	tokens = append(tokens, UnknownToken, EndToken)
	tokens = append(tokens, words...)
	return fromTokens(tokens), nil
}
