// Package selector draws random, duplicate-free city subsets from the catalog.
package selector

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/playperu/citydistance/internal/catalog"
)

// Source draws k distinct indices from [0, n). It is the only source of
// nondeterminism in the game.
type Source interface {
	Sample(n, k int) []int
}

// SourceFunc adapts a function to Source.
type SourceFunc func(n, k int) []int

func (f SourceFunc) Sample(n, k int) []int { return f(n, k) }

// RandSource is a seedable PCG-backed Source, safe for concurrent use.
type RandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandSource returns a source seeded with seed. A zero seed picks one from
// the clock.
func NewRandSource(seed uint64) *RandSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sample runs a partial Fisher-Yates shuffle over [0, n).
func (s *RandSource) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	s.mu.Lock()
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	s.mu.Unlock()

	return idx[:k]
}

type Selector struct {
	catalog *catalog.Catalog
	src     Source
}

func New(c *catalog.Catalog, src Source) *Selector {
	return &Selector{catalog: c, src: src}
}

// RandomCities returns min(count, catalog size) distinct city names. A count
// of zero or less yields an empty slice. A source that hands back out-of-range
// or repeated indices is reported as an error.
func (s *Selector) RandomCities(count int) ([]string, error) {
	n := s.catalog.Len()
	if count > n {
		count = n
	}
	if count <= 0 {
		return []string{}, nil
	}

	idx := s.src.Sample(n, count)
	if len(idx) != count {
		return nil, fmt.Errorf("source returned %d indices, want %d", len(idx), count)
	}

	seen := make(map[int]struct{}, count)
	names := make([]string, 0, count)
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("source returned index %d outside [0, %d)", i, n)
		}
		if _, dup := seen[i]; dup {
			return nil, fmt.Errorf("source returned index %d twice", i)
		}
		seen[i] = struct{}{}
		names = append(names, s.catalog.At(i).Name)
	}
	return names, nil
}
