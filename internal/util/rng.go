package util

import (
	"math/rand"
	"time"
)

// New returns a generator for seed. Seed 0 is treated as 1 so that an
// unset config value still replays the same match.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Unseeded returns a generator seeded from the clock, for matches nobody
// needs to replay.
func Unseeded() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
