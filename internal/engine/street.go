package engine

// streetComplete implements spec.md §4.3.5 exactly, including the BB
// option carve-out.
func (t *Table) streetComplete() bool {
	activeSeats := t.activeSeatList()
	inHandSeats := t.inHandSeatList()

	if len(activeSeats) == 0 {
		return true
	}
	if len(activeSeats) == 1 {
		only := activeSeats[0]
		if t.currentBet == 0 || t.seats[only].StreetCommit == t.currentBet {
			return true
		}
		return false
	}

	if t.currentBet == 0 {
		for _, s := range activeSeats {
			if !t.actedSeats[s] {
				return false
			}
		}
		return true
	}

	for _, s := range activeSeats {
		if t.seats[s].StreetCommit != t.currentBet {
			return false
		}
	}

	if t.street == StreetPreflop && t.currentBet == t.cfg.BigBlind {
		bb := t.bigBlindSeat
		if bb >= 0 && containsInt(inHandSeats, bb) && !t.seats[bb].IsAllIn && !t.actedSeats[bb] {
			return false
		}
	}
	return true
}

func (t *Table) handOver() bool {
	return len(t.inHandSeatList()) <= 1
}

func (t *Table) activeSeatList() []int {
	var out []int
	for i := range t.seats {
		if t.pendingJoinSeats[i] {
			continue
		}
		if t.seats[i].active() {
			out = append(out, i)
		}
	}
	return out
}

func (t *Table) inHandSeatList() []int {
	var out []int
	for i := range t.seats {
		if t.pendingJoinSeats[i] {
			continue
		}
		if t.seats[i].inHand() {
			out = append(out, i)
		}
	}
	return out
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// advanceTurnOrStreet implements spec.md §4.3.5's dispatcher.
func (t *Table) advanceTurnOrStreet() {
	if t.handOver() {
		t.refundUncalledBet()
		t.street = StreetSettlement
		t.record("hand_end", NoSeat, 0)
		t.settlePots()
		t.currentTurnSeat = NoSeat
		return
	}
	if t.streetComplete() {
		t.refundUncalledBet()
		runout := t.shouldAutoRunout()
		t.advanceStreet()
		if runout {
			t.currentTurnSeat = NoSeat
		}
		return
	}
	t.currentTurnSeat = t.nextActive(t.currentTurnSeat)
}

// advanceStreet moves preflop->flop->turn->river->showdown, or settles
// at the river.
func (t *Table) advanceStreet() {
	switch t.street {
	case StreetPreflop:
		t.street = StreetFlop
		t.dealt = 3
	case StreetFlop:
		t.street = StreetTurn
		t.dealt = 4
	case StreetTurn:
		t.street = StreetRiver
		t.dealt = 5
	case StreetRiver:
		t.street = StreetShowdown
		t.record("showdown", NoSeat, 0)
		t.settlePots()
		t.currentTurnSeat = NoSeat
		return
	default:
		return
	}
	t.resetStreetState()
	t.currentTurnSeat = t.nextActive(t.dealerSeat)
}

func (t *Table) resetStreetState() {
	t.currentBet = 0
	t.actedSeats = map[int]bool{}
	t.raiseBlockedSeats = map[int]bool{}
	for i := range t.seats {
		t.seats[i].resetForNewStreet()
	}
}

// refundUncalledBet implements spec.md §4.3.6: if exactly one seat holds
// the maximum street contribution (a lone leader), refund the excess.
func (t *Table) refundUncalledBet() {
	max := int64(-1)
	leader := NoSeat
	leaders := 0
	for i := range t.seats {
		if !t.seats[i].occupied() {
			continue
		}
		c := t.seats[i].StreetCommit
		if c > max {
			max = c
		}
	}
	if max <= 0 {
		return
	}
	for i := range t.seats {
		if t.seats[i].occupied() && t.seats[i].StreetCommit == max {
			leaders++
			leader = i
		}
	}
	if leaders != 1 {
		return
	}
	secondMax := int64(0)
	for i := range t.seats {
		if i == leader || !t.seats[i].occupied() {
			continue
		}
		if t.seats[i].StreetCommit > secondMax {
			secondMax = t.seats[i].StreetCommit
		}
	}
	refund := max - secondMax
	if refund <= 0 {
		return
	}
	s := &t.seats[leader]
	s.Stack += refund
	t.pot -= refund
	s.HandCommit -= refund
	s.StreetCommit -= refund
	t.currentBet = s.StreetCommit
	t.record("refund", leader, refund)
}

// shouldAutoRunout reports whether the remaining streets should be
// dealt without further action: at least two seats remain in-hand but
// at most one is non-all-in.
func (t *Table) shouldAutoRunout() bool {
	inHand := t.inHandSeatList()
	if len(inHand) < 2 {
		return false
	}
	nonAllIn := 0
	for _, s := range inHand {
		if !t.seats[s].IsAllIn {
			nonAllIn++
		}
	}
	return nonAllIn <= 1 && t.street != StreetRiver
}

// AdvanceAutoRunout deals the next street with no further action,
// called repeatedly by the hub's runout pacing loop. From the river it
// moves to showdown and settles; it returns false once no street is left
// to deal.
func (t *Table) AdvanceAutoRunout() bool {
	if t.street == StreetShowdown || t.street == StreetSettlement {
		return false
	}
	t.advanceStreet()
	if t.street == StreetShowdown || t.street == StreetSettlement {
		return false
	}
	t.currentTurnSeat = NoSeat
	return true
}

// ShouldAutoRunout is the exported form the hub polls after each action.
func (t *Table) ShouldAutoRunout() bool {
	return t.street != StreetShowdown && t.street != StreetSettlement && t.currentTurnSeat == NoSeat && t.inActiveHand()
}
