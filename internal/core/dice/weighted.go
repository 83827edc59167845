// Package dice rolls weighted dice from a caller-owned random source.
//
// # Determinism
//
// Rolls consume the source passed in and nothing else, so the same seed and
// the same sequence of rolls always produce the same faces.
package dice

import (
	"errors"
	"math/rand"
	"sort"
)

var (
	// ErrMissingFaces indicates a die with no faces.
	ErrMissingFaces = errors.New("at least one face is required")
	// ErrInvalidWeight indicates a face with a non-positive weight.
	ErrInvalidWeight = errors.New("face weight must be positive")
)

// Weighted is a die whose faces come up in proportion to their weights.
type Weighted struct {
	cumulative []int
	total      int
}

// NewWeighted builds a die from per-face weights, in face order.
//
// Example:
//
//	die, err := NewWeighted([]int{7, 2, 1}) // cumulative 7, 9, 10
//	face := die.Roll(rng)                   // 0 seven times in ten
func NewWeighted(weights []int) (Weighted, error) {
	if len(weights) == 0 {
		return Weighted{}, ErrMissingFaces
	}
	cumulative := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w <= 0 {
			return Weighted{}, ErrInvalidWeight
		}
		total += w
		cumulative[i] = total
	}
	return Weighted{cumulative: cumulative, total: total}, nil
}

// Roll draws a uniform number below the total weight and returns its face.
func (w Weighted) Roll(rng *rand.Rand) int {
	return w.Face(rng.Intn(w.total))
}

// Face returns the first face whose cumulative weight exceeds draw.
func (w Weighted) Face(draw int) int {
	return sort.Search(len(w.cumulative), func(i int) bool {
		return w.cumulative[i] > draw
	})
}

// Coin flips a fair coin.
func Coin(rng *rand.Rand) bool {
	return rng.Intn(2) == 1
}
