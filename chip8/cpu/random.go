package cpu

import (
	"math/rand/v2"
	"time"
)

// Random is the source of bytes for the RND instruction.
type Random interface {
	NextByte() byte
}

type pcgRandom struct {
	rng *rand.Rand
}

// NewRandom returns a deterministic source for the given seed.
func NewRandom(seed uint64) Random {
	return &pcgRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// NewTimeSeededRandom returns a source seeded once from the wall clock.
func NewTimeSeededRandom() Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}

func (r *pcgRandom) NextByte() byte {
	return byte(r.rng.UintN(256))
}
