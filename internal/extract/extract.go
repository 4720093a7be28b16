// Package extract turns raw CSV datasets into the plain text corpus the
// vocabulary builder and bigram trainer consume.
package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// DefaultColumn is the dataset column holding the raw text.
const DefaultColumn = "text"

var ErrColumnMissing = errors.New("column not found in csv")

// wordPattern matches word runs the way the corpus is tokenized
// everywhere else: letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// FromCSV reads the named column from the CSV on r and writes one
// space-joined line of word tokens per record to w. Rows without words
// still produce a line, so record counts stay aligned with the source.
// Returns the number of lines written.
func FromCSV(r io.Reader, column string, w io.Writer) (int, error) {
	if column == "" {
		column = DefaultColumn
	}

	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return 0, fmt.Errorf("read csv: %w", df.Err)
	}

	found := false
	for _, name := range df.Names() {
		if name == column {
			found = true
			break
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrColumnMissing, column)
	}

	bw := bufio.NewWriter(w)
	n := 0
	for _, rec := range df.Col(column).Records() {
		line := strings.Join(wordPattern.FindAllString(rec, -1), " ")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return n, fmt.Errorf("write corpus: %w", err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("write corpus: %w", err)
	}
	return n, nil
}
