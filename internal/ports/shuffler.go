package ports

import "math/rand/v2"

type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// SystemShuffler draws from the global math/rand/v2 source.
type SystemShuffler struct{}

func (SystemShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

func NewSeededShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed))
}
