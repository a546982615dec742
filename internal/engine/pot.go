package engine

import "sort"

// potLayer is one side-pot layer: Amount chips, split among Eligible
// seats (those in-hand with hand_commit at or above this layer's level).
type potLayer struct {
	Amount    int64
	Eligible  []int
}

// buildSidePots implements spec.md §4.3.8's side-pot construction:
// distinct contribution levels ascending, each layer worth
// (level_i - level_{i-1}) * |remaining contributors|, eligibility
// restricted to in-hand seats whose hand_commit >= level_i.
func (t *Table) buildSidePots() []potLayer {
	levelSet := map[int64]bool{}
	for i := range t.seats {
		if t.seats[i].occupied() && t.seats[i].HandCommit > 0 {
			levelSet[t.seats[i].HandCommit] = true
		}
	}
	levels := make([]int64, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	var layers []potLayer
	prev := int64(0)
	for _, level := range levels {
		var contributors []int
		for i := range t.seats {
			if t.seats[i].occupied() && t.seats[i].HandCommit >= level {
				contributors = append(contributors, i)
			}
		}
		amount := (level - prev) * int64(len(contributors))
		prev = level
		if amount <= 0 {
			continue
		}
		var eligible []int
		for i := range t.seats {
			if t.seats[i].inHand() && t.seats[i].HandCommit >= level {
				eligible = append(eligible, i)
			}
		}
		layers = append(layers, potLayer{Amount: amount, Eligible: eligible})
	}
	return layers
}

// remainderOrder is the fixed position order split-pot remainders are
// distributed in, one chip at a time: SB, BB, UTG, HJ, CO, BTN.
var remainderOrder = []string{"SB", "BB", "UTG", "HJ", "CO", "BTN"}

func (t *Table) sortByRemainderOrder(seats []int) []int {
	rank := func(seat int) int {
		pos := t.position(seat)
		for i, name := range remainderOrder {
			if name == pos {
				return i
			}
		}
		return len(remainderOrder)
	}
	out := append([]int(nil), seats...)
	sort.Slice(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}
