package gamebook

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
)

// RandomSource draws the random indexes used by the shuffle.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

// NewSeededSource returns a deterministic source for seed.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Mapping is the bijection between final positions and paragraph labels.
// It is built once by Shuffle and never modified afterwards.
type Mapping struct {
	first   int
	last    int
	forward map[int]string
	reverse map[string]int
}

// Label returns the label placed at pos.
func (m *Mapping) Label(pos int) (string, bool) {
	l, ok := m.forward[pos]
	return l, ok
}

// Position returns the final position of label.
func (m *Mapping) Position(label string) (int, bool) {
	p, ok := m.reverse[label]
	return p, ok
}

// Len returns the number of positions.
func (m *Mapping) Len() int {
	return len(m.forward)
}

// First returns the first position.
func (m *Mapping) First() int { return m.first }

// Last returns the last position.
func (m *Mapping) Last() int { return m.last }

// Shuffler assigns final positions to paragraph labels.
type Shuffler struct {
	rng RandomSource
}

// NewShuffler creates a Shuffler drawing from rng.
func NewShuffler(rng RandomSource) *Shuffler {
	return &Shuffler{rng: rng}
}

// Shuffle walks every position from the store's first to last number. A
// position whose numeral is a pinned label keeps that paragraph; any other
// position receives an ordinary label drawn uniformly without replacement.
//
// ErrNonContiguousLabeling is returned when a position has nothing left to
// draw, when ordinary labels remain after the last position, or when a
// pinned label never lands on a position.
func (s *Shuffler) Shuffle(store *Store) (*Mapping, error) {
	first, last := store.FirstPosition(), store.LastPosition()
	m := &Mapping{
		first:   first,
		last:    last,
		forward: make(map[int]string, store.Count()),
		reverse: make(map[string]int, store.Count()),
	}

	pool := make([]string, 0, store.Count())
	for _, label := range store.Labels() {
		if !store.IsPinned(label) {
			pool = append(pool, label)
		}
	}

	for pos := first; pos <= last; pos++ {
		numeral := strconv.Itoa(pos)
		if store.IsPinned(numeral) {
			m.assign(pos, numeral)
			continue
		}
		if len(pool) == 0 {
			return nil, manuscriptErr(
				fmt.Errorf("%w: no paragraph left for position %d", ErrNonContiguousLabeling, pos),
				numeral, 0)
		}
		i := s.rng.IntN(len(pool))
		m.assign(pos, pool[i])
		pool = slices.Delete(pool, i, i+1)
	}

	if len(pool) > 0 {
		return nil, manuscriptErr(
			fmt.Errorf("%w: %d paragraph(s) left without a position", ErrNonContiguousLabeling, len(pool)),
			pool[0], 0)
	}
	for _, label := range store.Pinned() {
		if _, ok := m.reverse[label]; !ok {
			return nil, manuscriptErr(
				fmt.Errorf("%w: pinned label is not a number in %d..%d", ErrNonContiguousLabeling, first, last),
				label, 0)
		}
	}
	return m, nil
}

func (m *Mapping) assign(pos int, label string) {
	m.forward[pos] = label
	m.reverse[label] = pos
}
