// Package rng draws uniformly distributed values from a cryptographically
// secure byte source. Game fairness claims depend on unbiased sampling, so
// a statistical PRNG is not acceptable here.
package rng

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrInvalidDistribution is returned when a weighted-outcome configuration
// is malformed: a negative weight, or all weights zero.
var ErrInvalidDistribution = errors.New("invalid outcome distribution")

// weightScale converts float weights to integers so weighted draws use the
// same unbiased integer sampling as everything else. Nine digits is enough
// for any paytable probability the system configures.
const weightScale = 1_000_000_000

// Source draws random values from a secure byte stream. It holds no mutable
// state and is safe for concurrent use.
type Source struct {
	r io.Reader
}

// NewSource returns a Source backed by crypto/rand.
func NewSource() *Source {
	return &Source{r: rand.Reader}
}

// NewSourceFromReader returns a Source backed by the given reader. Used by
// tests to force deterministic draws.
func NewSourceFromReader(r io.Reader) *Source {
	return &Source{r: r}
}

// UniformInt returns an integer uniformly distributed in [0, n). Rejection
// sampling inside rand.Int avoids modulo bias.
func (s *Source) UniformInt(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("uniform bound must be positive, got %d", n)
	}

	v, err := rand.Int(s.r, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}

	return int(v.Int64()), nil
}

// WeightedIndex returns an index in [0, len(weights)) with probability
// proportional to its weight. Weights need not sum to 1; they are
// normalized internally.
func (s *Source) WeightedIndex(weights []float64) (int, error) {
	if err := CheckWeights(weights); err != nil {
		return 0, err
	}

	scaled := make([]int64, len(weights))
	var total int64
	for i, w := range weights {
		scaled[i] = int64(w * weightScale)
		total += scaled[i]
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: weights sum to zero", ErrInvalidDistribution)
	}

	v, err := rand.Int(s.r, big.NewInt(total))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}

	draw := v.Int64()
	for i, w := range scaled {
		if draw < w {
			return i, nil
		}
		draw -= w
	}

	// Unreachable: draw < total and the loop consumes exactly total.
	return len(weights) - 1, nil
}

// Shuffle performs an in-place Fisher-Yates shuffle over n elements using
// the secure source. swap exchanges the elements at the given indices.
func (s *Source) Shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := s.UniformInt(i + 1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

// CheckWeights validates a weight slice: it must be non-empty, contain no
// negative weight, and have a positive total.
func CheckWeights(weights []float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no weights given", ErrInvalidDistribution)
	}

	var total float64
	for i, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: weight %d is negative (%v)", ErrInvalidDistribution, i, w)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidDistribution)
	}

	return nil
}
