package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envQuillCorpus = "QUILL_CORPUS"

// resolveCorpusPath picks the corpus from the flag, then the QUILL_CORPUS
// environment variable, and verifies the file exists.
func resolveCorpusPath(corpusFlag string) (string, error) {
	path := strings.TrimSpace(corpusFlag)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(envQuillCorpus))
	}
	if path == "" {
		return "", fmt.Errorf("--corpus is required unless %s is set", envQuillCorpus)
	}
	path = filepath.Clean(path)
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if st.IsDir() {
		return "", fmt.Errorf("corpus path is a directory: %s", path)
	}
	return path, nil
}

// defaultVocabPath derives the cache location from the corpus path:
// data/news.txt caches to data/news.vocab.json.
func defaultVocabPath(corpus string) string {
	return strings.TrimSuffix(corpus, filepath.Ext(corpus)) + ".vocab.json"
}
