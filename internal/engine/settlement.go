package engine

import "cashtable/card"

// settlePots implements spec.md §4.3.8.
func (t *Table) settlePots() {
	inHand := t.inHandSeatList()

	if len(inHand) == 1 {
		winner := inHand[0]
		t.pendingPayouts[winner] += t.pot
		t.record("payout/uncontested", winner, t.pot)
		t.pot = 0
		t.street = StreetSettlement
		return
	}

	ranks := make(map[int]HandRank, len(inHand))
	for _, seat := range inHand {
		var seven [7]card.Card
		copy(seven[:2], t.seats[seat].HoleCards)
		copy(seven[2:], t.board)
		ranks[seat] = RankBest(seven)
	}

	for _, layer := range t.buildSidePots() {
		if len(layer.Eligible) == 0 || layer.Amount <= 0 {
			continue
		}
		winners := bestRankedSeats(layer.Eligible, ranks)
		t.distributePotLayer(layer.Amount, winners)
	}
	t.pot = 0
	t.street = StreetSettlement
}

func bestRankedSeats(eligible []int, ranks map[int]HandRank) []int {
	var best HandRank
	var winners []int
	for i, seat := range eligible {
		r := ranks[seat]
		if i == 0 || best.Less(r) {
			best = r
			winners = []int{seat}
		} else if !r.Less(best) {
			winners = append(winners, seat)
		}
	}
	return winners
}

func (t *Table) distributePotLayer(amount int64, winners []int) {
	share := amount / int64(len(winners))
	remainder := amount % int64(len(winners))
	ordered := t.sortByRemainderOrder(winners)
	for _, seat := range ordered {
		pay := share
		if remainder > 0 {
			pay++
			remainder--
		}
		t.pendingPayouts[seat] += pay
	}
	t.record("payout/side_pot", NoSeat, amount)
}

// ApplyPendingPayouts credits pending_payouts to stacks, tops up any
// seat whose stack is still zero by auto_topup_amount, and clears the
// payout map. Called by the hub's settlement barrier, never by the
// Table itself.
func (t *Table) ApplyPendingPayouts() {
	for seat, amount := range t.pendingPayouts {
		if !t.seats[seat].occupied() {
			continue
		}
		t.seats[seat].Stack += amount
	}
	t.pendingPayouts = map[int]int64{}

	for i := range t.seats {
		if t.seats[i].occupied() && t.seats[i].Stack == 0 {
			t.seats[i].Stack += t.cfg.AutoTopupAmount
		}
	}
}

// FinalizeDepartures clears seats queued by pending_leave_seats and
// leave_after_hand_seats, then returns the table to waiting.
func (t *Table) FinalizeDepartures() {
	for seat := range t.pendingLeaveSeats {
		t.clearSeat(seat)
	}
	for seat := range t.leaveAfterHandSeats {
		t.clearSeat(seat)
	}
	t.street = StreetWaiting
	t.currentTurnSeat = NoSeat
}

// RecordHandReveal records a hand_reveal action if the seat has hole
// cards, the street is settlement, and no prior showdown/reveal has been
// recorded for that seat this hand.
func (t *Table) RecordHandReveal(playerID string) error {
	idx, ok := t.findSeat(playerID)
	if !ok {
		return ErrNotSeated
	}
	if t.street != StreetSettlement && t.street != StreetShowdown {
		return newActionError(ErrInvalidStreet, "not at settlement")
	}
	s := &t.seats[idx]
	if len(s.HoleCards) != 2 || s.revealed {
		return nil
	}
	for _, a := range t.actionHistory {
		if a.Kind == "showdown" {
			return nil
		}
	}
	s.revealed = true
	t.record("hand_reveal", idx, 0)
	return nil
}
