package game

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Rand is the only randomness the engine needs. *frand.RNG satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return frand.Intn(n) }

// GlobalRand draws from frand's process-wide generator and is safe for
// concurrent use.
var GlobalRand Rand = globalRand{}

// Shuffle permutes cells in place (Fisher-Yates).
func Shuffle(r Rand, cells []Cell) {
	for i := len(cells) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
}

// Sample picks min(k, len(cells)) distinct cells without modifying cells.
func Sample(r Rand, cells []Cell, k int) []Cell {
	if k > len(cells) {
		k = len(cells)
	}
	pool := make([]Cell, len(cells))
	copy(pool, cells)
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
