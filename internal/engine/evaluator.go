package engine

import (
	"sort"

	"cashtable/card"
)

// HandRank is the comparable result of ranking a five-card hand: higher
// Category wins; ties break lexicographically on Tiebreakers.
type HandRank struct {
	Category    byte
	Tiebreakers []int
}

// Less reports whether r is weaker than other — a named total-order
// comparator standing in for the source's tuple comparison.
func (r HandRank) Less(other HandRank) bool {
	if r.Category != other.Category {
		return r.Category < other.Category
	}
	n := len(r.Tiebreakers)
	if len(other.Tiebreakers) < n {
		n = len(other.Tiebreakers)
	}
	for i := 0; i < n; i++ {
		if r.Tiebreakers[i] != other.Tiebreakers[i] {
			return r.Tiebreakers[i] < other.Tiebreakers[i]
		}
	}
	return false
}

// RankFive ranks exactly five cards. The evaluator is total: every
// five-card input (assumed distinct, validated upstream by the Table)
// produces a result.
func RankFive(five [5]card.Card) HandRank {
	ranks := make([]int, 5)
	suits := make([]card.Suit, 5)
	for i, c := range five {
		ranks[i] = c.HandRealVal()
		suits[i] = c.Suit()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	flush := true
	for _, s := range suits {
		if s != suits[0] {
			flush = false
			break
		}
	}

	straightHigh, isStraight := straightHighCard(ranks)

	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}
	groups := groupByCount(counts)

	switch {
	case isStraight && flush:
		return HandRank{Category: CategoryStraightFlush, Tiebreakers: []int{straightHigh}}
	case groups[0].count == 4:
		return HandRank{Category: CategoryFourOfKind, Tiebreakers: []int{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: CategoryFullHouse, Tiebreakers: []int{groups[0].rank, groups[1].rank}}
	case flush:
		return HandRank{Category: CategoryFlush, Tiebreakers: ranks}
	case isStraight:
		return HandRank{Category: CategoryStraight, Tiebreakers: []int{straightHigh}}
	case groups[0].count == 3:
		return HandRank{Category: CategoryTrips, Tiebreakers: append([]int{groups[0].rank}, kickers(groups)...)}
	case groups[0].count == 2 && groups[1].count == 2:
		hi, lo := groups[0].rank, groups[1].rank
		if hi < lo {
			hi, lo = lo, hi
		}
		return HandRank{Category: CategoryTwoPair, Tiebreakers: []int{hi, lo, groups[2].rank}}
	case groups[0].count == 2:
		return HandRank{Category: CategoryPair, Tiebreakers: append([]int{groups[0].rank}, kickers(groups)...)}
	default:
		return HandRank{Category: CategoryHighCard, Tiebreakers: ranks}
	}
}

// RankBest evaluates the best five-card hand out of seven, returning the
// maximum HandRank over all C(7,5)=21 five-card subsets.
func RankBest(seven [7]card.Card) HandRank {
	var best HandRank
	first := true
	for a := 0; a < 3; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 5; c++ {
				for d := c + 1; d < 6; d++ {
					for e := d + 1; e < 7; e++ {
						five := [5]card.Card{seven[a], seven[b], seven[c], seven[d], seven[e]}
						r := RankFive(five)
						if first || best.Less(r) {
							best = r
							first = false
						}
					}
				}
			}
		}
	}
	return best
}

type rankGroup struct {
	rank  int
	count int
}

// groupByCount sorts ranks by (count desc, rank desc) and always returns
// at least 3 entries (padding with zero-count sentinels) so callers can
// index without bounds checks.
func groupByCount(counts map[int]int) []rankGroup {
	groups := make([]rankGroup, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, rankGroup{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	for len(groups) < 3 {
		groups = append(groups, rankGroup{})
	}
	return groups
}

// kickers returns the single-count ranks in descending order, used to
// fill out trips/pair tiebreaker lists.
func kickers(groups []rankGroup) []int {
	var out []int
	for _, g := range groups {
		if g.count == 1 {
			out = append(out, g.rank)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// straightHighCard detects five cards forming a straight (ranks must
// already be sorted descending and distinct-checked by the caller's
// five-card-of-five-unique-cards contract). The wheel (A-2-3-4-5) is a
// straight with high card 5.
func straightHighCard(descRanks []int) (int, bool) {
	uniq := dedupSorted(descRanks)
	if len(uniq) != 5 {
		return 0, false
	}
	if uniq[0]-uniq[4] == 4 {
		return uniq[0], true
	}
	// Wheel: A,5,4,3,2 -> uniq == [14,5,4,3,2].
	if uniq[0] == 14 && uniq[1] == 5 && uniq[2] == 4 && uniq[3] == 3 && uniq[4] == 2 {
		return 5, true
	}
	return 0, false
}

func dedupSorted(descRanks []int) []int {
	out := make([]int, 0, len(descRanks))
	for i, r := range descRanks {
		if i == 0 || r != descRanks[i-1] {
			out = append(out, r)
		}
	}
	return out
}
