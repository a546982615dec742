package engine

// postBlinds computes SB/BB seats from the occupied list and the dealer,
// posts both blinds, and sets the first actor.
func (t *Table) postBlinds(occ []int) {
	sbSeat, bbSeat := t.blindSeats(occ)

	t.postBlind(sbSeat, t.cfg.SmallBlind)
	t.postBlind(bbSeat, t.cfg.BigBlind)

	max := int64(0)
	for _, s := range occ {
		if t.seats[s].StreetCommit > max {
			max = t.seats[s].StreetCommit
		}
	}
	t.currentBet = max
	t.minRaise = t.cfg.BigBlind
	t.bigBlindSeat = bbSeat
	t.currentTurnSeat = t.nextActive(bbSeat)
}

// blindSeats returns (sb, bb). Heads-up: dealer is SB/BTN, the other
// seat is BB. Otherwise SB is next occupied after dealer, BB next after
// SB.
func (t *Table) blindSeats(occ []int) (int, int) {
	if len(occ) == 2 {
		sb := t.dealerSeat
		bb := otherSeat(occ, sb)
		return sb, bb
	}
	sb := nextInList(occ, t.dealerSeat)
	bb := nextInList(occ, sb)
	return sb, bb
}

func otherSeat(occ []int, not int) int {
	for _, s := range occ {
		if s != not {
			return s
		}
	}
	return not
}

func (t *Table) postBlind(seat int, amount int64) {
	s := &t.seats[seat]
	pay := amount
	if pay > s.Stack {
		pay = s.Stack
	}
	s.Stack -= pay
	s.StreetCommit += pay
	s.HandCommit += pay
	t.pot += pay
	if s.Stack == 0 {
		s.IsAllIn = true
	}
	t.record("post_blind", seat, pay)
}

// nextActive returns the next seat after `from` (cyclic over all seats)
// that is still in the hand and not all-in; NoSeat if none qualify.
func (t *Table) nextActive(from int) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if t.seats[idx].active() && !t.pendingJoinSeats[idx] {
			return idx
		}
	}
	return NoSeat
}

// position returns the position label for seat given the current dealer
// and the set of occupied seats, per spec.md's cyclic naming rule.
func (t *Table) position(seat int) string {
	occ := t.occupiedSeats()
	if len(occ) == 2 {
		if seat == t.dealerSeat {
			return "BTN"
		}
		return "BB"
	}
	start := -1
	for i, s := range occ {
		if s == t.dealerSeat {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}
	for i, s := range occ {
		if s == seat {
			offset := (i - start + len(occ)) % len(occ)
			if offset < len(PositionNames6Max) {
				return PositionNames6Max[offset]
			}
			return ""
		}
	}
	return ""
}
