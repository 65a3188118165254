package random

import (
	"fmt"
	"math"
	"time"
	"unicode/utf16"

	"github.com/aretw0/rulegen/pkg/domain"
)

const (
	modulus    int64 = 2147483647
	multiplier int64 = 16807
	hashBase   int64 = 31
)

// Source is the capability the expansion engine needs from a random stream.
type Source interface {
	// Float64 advances the stream and returns a value in [0, 1).
	Float64() float64
	// Seed re-initializes the stream deterministically.
	Seed(Seed)
}

// Seeded is a Park–Miller linear congruential generator.
// It is not safe for concurrent use.
type Seeded struct {
	state int64
	draws int64
}

// NewSeeded creates a generator initialized from seed.
func NewSeeded(seed Seed) *Seeded {
	s := &Seeded{state: 1}
	s.Seed(seed)
	return s
}

// New creates a generator seeded from the wall clock (milliseconds).
func New() *Seeded {
	return NewSeeded(IntSeed(time.Now().UnixMilli()))
}

// Seed re-initializes the internal state.
// Integer seeds are reduced modulo 2^31-1; string seeds are hashed per UTF-16 code unit
// with state = state*31 + c. A non-positive state is shifted into range.
func (s *Seeded) Seed(seed Seed) {
	var state int64
	if seed.literal {
		for _, c := range utf16.Encode([]rune(seed.text)) {
			state = (state*hashBase + int64(c)) % modulus
		}
	} else {
		state = seed.number % modulus
		if state < 0 {
			state = -state
		}
	}

	if state <= 0 {
		state += modulus - 1
	}
	s.state = state
	s.draws = 0
}

// Float64 advances the state and returns (state-1)/(2^31-2).
func (s *Seeded) Float64() float64 {
	s.state = (s.state * multiplier) % modulus
	s.draws++
	return float64(s.state-1) / float64(modulus-1)
}

// Int returns an integer in [min, max).
func (s *Seeded) Int(min, max int) int {
	return Int(s, min, max)
}

// Draws returns how many values were drawn since the last Seed.
func (s *Seeded) Draws() int64 {
	return s.draws
}

// Int returns floor(src.Float64()*(max-min)) + min, an integer in [min, max).
func Int(src Source, min, max int) int {
	return int(math.Floor(src.Float64()*float64(max-min))) + min
}

// Choose picks one item. With nil weights, or weights whose count differs from items,
// the choice is uniform. Otherwise item i is picked with probability weights[i]/sum.
func Choose[T any](src Source, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: cannot choose from empty collection", domain.ErrInvalidArgument)
	}

	if weights == nil || len(weights) != len(items) {
		return items[Int(src, 0, len(items))], nil
	}

	var total float64
	for _, w := range weights {
		total += w
	}

	r := src.Float64() * total
	for i, item := range items {
		r -= weights[i]
		if r <= 0 {
			return item, nil
		}
	}

	// Rounding can leave r slightly above zero after the last subtraction.
	return items[len(items)-1], nil
}
