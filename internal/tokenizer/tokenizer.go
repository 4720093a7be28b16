// Package tokenizer converts between text and vocabulary ids.
package tokenizer

import "errors"

// Tokenizer is the minimal surface the engine and CLI consume.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
}

// ErrTokenRange rejects ids outside the vocabulary on decode.
var ErrTokenRange = errors.New("token id out of range")
