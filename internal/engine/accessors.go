package engine

import "cashtable/card"

// SetSaveEarnings flags the current hand's result for earnings-flush
// eligibility; the hub sets this once per settlement before rendering
// the final tableState of a hand.
func (t *Table) SetSaveEarnings(v bool) { t.saveEarnings = v }

// HoleCards returns a copy of a seat's hole cards, used by the hub to
// compute 69/92 earnings counters at settlement.
func (t *Table) HoleCards(seat int) []card.Card {
	if seat < 0 || seat >= len(t.seats) {
		return nil
	}
	out := make([]card.Card, len(t.seats[seat].HoleCards))
	copy(out, t.seats[seat].HoleCards)
	return out
}

// SeatIndexOf returns the seat index for playerID, or -1 if not seated.
func (t *Table) SeatIndexOf(playerID string) int {
	if idx, ok := t.findSeat(playerID); ok {
		return idx
	}
	return -1
}

// PendingLeaveSeats returns a copy of the seats scheduled for removal at
// hand end.
func (t *Table) PendingLeaveSeats() []int {
	return setKeys(t.pendingLeaveSeats)
}

// RunAutoPlay replays the auto-play loop, used by the hub right after
// enabling auto-play for a disconnected player whose turn is already
// current (no new action arrives to trigger it otherwise).
func (t *Table) RunAutoPlay() { t.applyAutoPlayLoop() }

// PendingPayout returns seat's pending settlement payout, read by the
// hub's earnings flush before ApplyPendingPayouts clears the map.
func (t *Table) PendingPayout(seat int) int64 {
	return t.pendingPayouts[seat]
}

func setKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
