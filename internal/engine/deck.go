package engine

import (
	"math/rand"
	"time"

	"cashtable/card"
)

// Deck produces a shuffled 52-card sequence. A zero Seed derives an
// unpredictable one at construction; a non-zero Seed makes Deal
// reproducible, which the rule engine needs for deterministic tests.
type Deck struct {
	rnd *rand.Rand
}

// NewDeck builds a Deck. A seed of 0 is replaced with a time-derived
// seed so production shuffles are not predictable run-to-run.
func NewDeck(seed int64) *Deck {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Deck{rnd: rand.New(rand.NewSource(seed))}
}

// Deal returns a fresh random permutation of the 52 Card values, or the
// configured override verbatim if one is set.
func (d *Deck) Deal(override []card.Card) card.CardList {
	if len(override) > 0 {
		out := make(card.CardList, len(override))
		copy(out, override)
		return out
	}
	out := make(card.CardList, len(StandardDeck))
	copy(out, StandardDeck)
	out.ShuffleWith(d.rnd)
	return out
}
