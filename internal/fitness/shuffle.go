package fitness

import (
	"math/rand/v2"
	"slices"
)

// Shuffle returns a copy of opts in a pseudo-random order determined
// entirely by seed. opts is not modified.
func Shuffle(opts []Option, seed uint64) []Option {
	out := slices.Clone(opts)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
