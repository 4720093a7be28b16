package vocab

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

const cacheVersion = 1

// cacheFile is the on-disk layout. Ids are implied by token position, so
// the file stays a plain ordered list.
type cacheFile struct {
	Version int      `json:"version"`
	Tokens  []string `json:"tokens"`
}

// Save writes the vocabulary to path as JSON.
func (v *Vocabulary) Save(path string) error {
	data, err := json.MarshalIndent(cacheFile{Version: cacheVersion, Tokens: v.tokens}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

// Load reads a vocabulary previously written by Save. A missing file
// surfaces as os.ErrNotExist so callers can fall back to a fresh Build.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c cacheFile
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode vocabulary %s: %w", path, err)
	}
	if c.Version != cacheVersion {
		return nil, fmt.Errorf("%w: %d", ErrCacheVersion, c.Version)
	}
	if len(c.Tokens) <= reserved || c.Tokens[UnknownID] != UnknownToken || c.Tokens[EndID] != EndToken {
		return nil, fmt.Errorf("%w: %s", ErrCacheCorrupt, path)
	}
	return fromTokens(c.Tokens), nil
}
