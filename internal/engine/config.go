package engine

import (
	"fmt"

	"cashtable/card"
)

// Config holds the static parameters of a table plus knobs used only by
// tests to make hands reproducible.
type Config struct {
	MaxPlayers int
	MinPlayers int

	SmallBlind int64
	BigBlind   int64
	Ante       int64

	BuyIn           int64
	AutoTopupAmount int64

	// AutoCashoutEnabled gates an unspecified cashout policy the source
	// draft stubbed to a no-op. Kept disabled by default; no operation
	// reads it yet.
	AutoCashoutEnabled bool

	// Seed seeds the deck RNG; 0 means time-based.
	Seed int64

	// ForcedDealerChair pins the button seat for deterministic tests.
	ForcedDealerChair *uint16
	// DeckOverride pins the full 52-card order, consumed from index 0.
	DeckOverride []card.Card
}

// DefaultConfig matches spec.md §6's stated defaults.
func DefaultConfig() Config {
	return Config{
		MaxPlayers:      6,
		MinPlayers:      2,
		SmallBlind:      1,
		BigBlind:        3,
		Ante:            0,
		BuyIn:           300,
		AutoTopupAmount: 300,
	}
}

func (c Config) validate() error {
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("MaxPlayers must be > 0")
	}
	if c.MinPlayers <= 0 {
		return fmt.Errorf("MinPlayers must be > 0")
	}
	if c.MinPlayers > c.MaxPlayers {
		return fmt.Errorf("MinPlayers must be <= MaxPlayers")
	}
	if c.SmallBlind < 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		return fmt.Errorf("invalid blinds: sb=%d bb=%d", c.SmallBlind, c.BigBlind)
	}
	if c.Ante < 0 {
		return fmt.Errorf("Ante must be >= 0")
	}
	if c.BuyIn <= 0 {
		return fmt.Errorf("BuyIn must be > 0")
	}
	if c.AutoTopupAmount < 0 {
		return fmt.Errorf("AutoTopupAmount must be >= 0")
	}
	if c.ForcedDealerChair != nil && int(*c.ForcedDealerChair) >= c.MaxPlayers {
		return fmt.Errorf("forced dealer seat out of range: %d", *c.ForcedDealerChair)
	}
	return validateDeckOverride(c.DeckOverride)
}

func validateDeckOverride(deck []card.Card) error {
	if len(deck) == 0 {
		return nil
	}
	if len(deck) != len(StandardDeck) {
		return fmt.Errorf("deck override must contain %d cards, got %d", len(StandardDeck), len(deck))
	}
	valid := make(map[card.Card]struct{}, len(StandardDeck))
	for _, c := range StandardDeck {
		valid[c] = struct{}{}
	}
	seen := make(map[card.Card]struct{}, len(deck))
	for i, c := range deck {
		if _, ok := valid[c]; !ok {
			return fmt.Errorf("deck override contains invalid card at index %d: %v", i, c)
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("deck override contains duplicate card at index %d: %v", i, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}
