package sim

import "github.com/mtgtools/revealsim/internal/card"

// Sample draws min(count, len(deck)) cards without replacement, uniformly at
// random over the remaining candidates at each step. Two copies of the same
// name are independent candidates. The deck itself is never mutated.
func Sample(deck []card.Card, count int, rng RandomSource) []card.Card {
	if count <= 0 || len(deck) == 0 {
		return nil
	}
	if count > len(deck) {
		count = len(deck)
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	// partial Fisher-Yates over a scratch copy
	pool := make([]card.Card, len(deck))
	copy(pool, deck)
	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}
