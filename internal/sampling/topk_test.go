package sampling

import (
	"errors"
	"reflect"
	"testing"
)

func TestTopKSelectsHighest(t *testing.T) {
	cases := []struct {
		name   string
		scores []float32
		k      int
		want   []Candidate
	}{
		{
			name:   "orders-descending",
			scores: []float32{1, 3, 2},
			k:      3,
			want:   []Candidate{{ID: 1, Score: 3}, {ID: 2, Score: 2}, {ID: 0, Score: 1}},
		},
		{
			name:   "keeps-only-k",
			scores: []float32{0.1, 0.1, 5.0, 0.1, 0.1},
			k:      3,
			want:   []Candidate{{ID: 2, Score: 5.0}, {ID: 0, Score: 0.1}, {ID: 1, Score: 0.1}},
		},
		{
			name:   "tie-break-lower-id-wins",
			scores: []float32{0.5, 0.3, 0.5},
			k:      2,
			want:   []Candidate{{ID: 0, Score: 0.5}, {ID: 2, Score: 0.5}},
		},
		{
			name:   "single-candidate",
			scores: []float32{-2, -1, -3},
			k:      1,
			want:   []Candidate{{ID: 1, Score: -1}},
		},
		{
			name:   "uniform-keeps-vocabulary-order",
			scores: []float32{1, 1, 1, 1, 1},
			k:      5,
			want:   []Candidate{{ID: 0, Score: 1}, {ID: 1, Score: 1}, {ID: 2, Score: 1}, {ID: 3, Score: 1}, {ID: 4, Score: 1}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TopK(tc.scores, tc.k)
			if err != nil {
				t.Fatalf("TopK: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTopKDoesNotMutateInput(t *testing.T) {
	scores := []float32{4, 1, 3, 2}
	orig := append([]float32(nil), scores...)

	if _, err := TopK(scores, 2); err != nil {
		t.Fatalf("TopK: %v", err)
	}
	if !reflect.DeepEqual(scores, orig) {
		t.Fatalf("input mutated: got %v, want %v", scores, orig)
	}
}

func TestTopKRejectsBadK(t *testing.T) {
	cases := []struct {
		name   string
		scores []float32
		k      int
	}{
		{name: "zero-k", scores: []float32{1, 2}, k: 0},
		{name: "negative-k", scores: []float32{1, 2}, k: -1},
		{name: "k-above-vocab", scores: []float32{1, 2}, k: 3},
		{name: "empty-scores", scores: nil, k: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TopK(tc.scores, tc.k)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("got %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}
