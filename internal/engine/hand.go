package engine

import "cashtable/card"

const boardSize = 5

// StartNewHand begins a hand. Only valid from StreetWaiting (or called
// by the settlement barrier after settlement). Requires at least
// MinPlayers occupied seats; otherwise the table stays in waiting.
func (t *Table) StartNewHand() error {
	if t.street != StreetWaiting {
		return newActionError(ErrInvalidStreet, "hand already in progress")
	}

	t.clearAutoPlayForGoneSeats()

	occ := t.occupiedSeats()
	if len(occ) < t.cfg.MinPlayers {
		t.street = StreetWaiting
		return nil
	}

	t.rotateDealer(occ)
	t.resetForNewHand()

	for i := range t.seats {
		delete(t.pendingJoinSeats, i)
	}

	full := t.occupiedSeats()
	t.dealHoleCards(full)

	t.street = StreetPreflop
	t.postBlinds(full)

	t.handNumber++
	t.applyAutoPlayLoop()
	return nil
}

func (t *Table) resetForNewHand() {
	t.pot = 0
	t.currentBet = 0
	t.minRaise = t.cfg.BigBlind
	t.board = nil
	t.dealt = 0
	t.actionHistory = nil
	t.raiseBlockedSeats = map[int]bool{}
	t.actedSeats = map[int]bool{}
	for i := range t.seats {
		if t.seats[i].occupied() {
			t.seats[i].resetForNewHand()
		}
	}
}

func (t *Table) rotateDealer(occ []int) {
	if t.dealerSeat < 0 {
		if t.cfg.ForcedDealerChair != nil && containsInt(occ, int(*t.cfg.ForcedDealerChair)) {
			t.dealerSeat = int(*t.cfg.ForcedDealerChair)
			return
		}
		t.dealerSeat = occ[0]
		return
	}
	t.dealerSeat = nextInList(occ, t.dealerSeat)
}

// nextInList returns the next seat in occ strictly after `from` on the
// ring; if `from` isn't present, the first entry of occ is returned.
func nextInList(occ []int, from int) int {
	for i, s := range occ {
		if s == from {
			return occ[(i+1)%len(occ)]
		}
	}
	return occ[0]
}

// dealHoleCards deals two hole cards per occupied seat (round-robin,
// matching the physical deal order) and sets aside the next five cards
// as the board, revealed progressively as the hand proceeds.
func (t *Table) dealHoleCards(occ []int) {
	deck := t.deck.Deal(t.cfg.DeckOverride)

	hole := make(map[int][]card.Card, len(occ))
	for _, seat := range occ {
		hole[seat] = make([]card.Card, 0, 2)
	}
	pos := 0
	for round := 0; round < 2; round++ {
		for _, seat := range occ {
			hole[seat] = append(hole[seat], deck[pos])
			pos++
		}
	}
	for _, seat := range occ {
		t.seats[seat].HoleCards = hole[seat]
	}

	t.board = make([]card.Card, boardSize)
	copy(t.board, deck[pos:pos+boardSize])
}
