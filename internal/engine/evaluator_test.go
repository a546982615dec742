package engine

import (
	"testing"

	"cashtable/card"
)

func mustCard(t *testing.T, s string) card.Card {
	t.Helper()
	c, err := card.ThdmStrToCard(s)
	if err != nil {
		t.Fatalf("bad card %q: %v", s, err)
	}
	return c
}

func five(t *testing.T, ss ...string) [5]card.Card {
	t.Helper()
	var out [5]card.Card
	for i, s := range ss {
		out[i] = mustCard(t, s)
	}
	return out
}

func TestRankFive_RoyalFlush(t *testing.T) {
	r := RankFive(five(t, "As", "Ks", "Qs", "Js", "10s"))
	if r.Category != CategoryStraightFlush || r.Tiebreakers[0] != 14 {
		t.Fatalf("expected royal flush (8,[14]), got (%d,%v)", r.Category, r.Tiebreakers)
	}
}

func TestRankFive_WheelFlush(t *testing.T) {
	r := RankFive(five(t, "As", "2s", "3s", "4s", "5s"))
	if r.Category != CategoryStraightFlush || r.Tiebreakers[0] != 5 {
		t.Fatalf("expected wheel straight flush (8,[5]), got (%d,%v)", r.Category, r.Tiebreakers)
	}
}

func TestRankBest_WheelOnBoard(t *testing.T) {
	var seven [7]card.Card
	for i, s := range []string{"As", "2s", "3d", "4c", "5h", "Ks", "Qc"} {
		seven[i] = mustCard(t, s)
	}
	r := RankBest(seven)
	if r.Category != CategoryStraight || r.Tiebreakers[0] != 5 {
		t.Fatalf("expected wheel straight (4,[5]), got (%d,%v)", r.Category, r.Tiebreakers)
	}
}

func TestRankFive_FullHouseTiebreak(t *testing.T) {
	r := RankFive(five(t, "Ks", "Kd", "Kc", "2h", "2s"))
	if r.Category != CategoryFullHouse {
		t.Fatalf("expected full house, got %d", r.Category)
	}
	if r.Tiebreakers[0] != 13 || r.Tiebreakers[1] != 2 {
		t.Fatalf("expected tiebreakers [13,2], got %v", r.Tiebreakers)
	}
}

func TestRankFive_TwoPairOrder(t *testing.T) {
	r := RankFive(five(t, "9s", "9d", "4c", "4h", "Ks"))
	if r.Category != CategoryTwoPair {
		t.Fatalf("expected two pair, got %d", r.Category)
	}
	want := []int{9, 4, 13}
	for i, v := range want {
		if r.Tiebreakers[i] != v {
			t.Fatalf("tiebreakers = %v, want %v", r.Tiebreakers, want)
		}
	}
}

func TestHandRank_TotalOrder(t *testing.T) {
	pair := RankFive(five(t, "9s", "9d", "4c", "7h", "Ks"))
	twoPair := RankFive(five(t, "9s", "9d", "4c", "4h", "Ks"))
	if !pair.Less(twoPair) {
		t.Fatalf("expected pair < two pair")
	}
	if twoPair.Less(pair) {
		t.Fatalf("two pair should not be less than pair")
	}
}

func TestRankFive_PermutationInvariant(t *testing.T) {
	a := five(t, "9s", "9d", "4c", "4h", "Ks")
	b := five(t, "Ks", "4h", "9s", "4c", "9d")
	ra, rb := RankFive(a), RankFive(b)
	if ra.Category != rb.Category {
		t.Fatalf("category differs under permutation: %d vs %d", ra.Category, rb.Category)
	}
	if len(ra.Tiebreakers) != len(rb.Tiebreakers) {
		t.Fatalf("tiebreaker length differs under permutation")
	}
	for i := range ra.Tiebreakers {
		if ra.Tiebreakers[i] != rb.Tiebreakers[i] {
			t.Fatalf("tiebreakers differ under permutation: %v vs %v", ra.Tiebreakers, rb.Tiebreakers)
		}
	}
}
