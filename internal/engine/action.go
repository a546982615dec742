package engine

// RecordAction validates and applies one player action. actor is
// resolved from playerID; amount is the new total street commitment for
// bet/raise (0 for the other kinds).
func (t *Table) RecordAction(playerID string, kind ActionType, amount int64) error {
	idx, ok := t.findSeat(playerID)
	if !ok {
		return ErrNotSeated
	}
	if t.currentTurnSeat != idx {
		return ErrNotYourTurn
	}
	s := &t.seats[idx]
	if s.IsFolded {
		return ErrPlayerFolded
	}
	if s.IsAllIn {
		return ErrPlayerAllIn
	}

	switch kind {
	case ActionFold:
		t.applyFold(idx)
	case ActionCheck:
		if err := t.applyCheck(idx); err != nil {
			return err
		}
	case ActionCall:
		if err := t.applyCall(idx); err != nil {
			return err
		}
	case ActionBet:
		if err := t.applyBet(idx, amount); err != nil {
			return err
		}
	case ActionRaise:
		if err := t.applyRaise(idx, amount); err != nil {
			return err
		}
	case ActionAllIn:
		if err := t.applyAllIn(idx); err != nil {
			return err
		}
	default:
		return ErrUnknownAction
	}

	t.advanceTurnOrStreet()
	return nil
}

func (t *Table) toCall(idx int) int64 {
	return t.currentBet - t.seats[idx].StreetCommit
}

func (t *Table) applyFold(idx int) {
	s := &t.seats[idx]
	s.IsFolded = true
	s.LastAction = ActionFold
	t.actedSeats[idx] = true
	t.record("fold", idx, 0)
}

func (t *Table) applyCheck(idx int) error {
	if t.toCall(idx) != 0 {
		return ErrCannotCheck
	}
	s := &t.seats[idx]
	s.LastAction = ActionCheck
	t.actedSeats[idx] = true
	t.record("check", idx, 0)
	return nil
}

func (t *Table) applyCall(idx int) error {
	toCall := t.toCall(idx)
	if toCall <= 0 {
		return ErrNothingToCall
	}
	s := &t.seats[idx]
	callAmount := toCall
	if callAmount > s.Stack {
		callAmount = s.Stack
	}
	s.Stack -= callAmount
	s.StreetCommit += callAmount
	s.HandCommit += callAmount
	t.pot += callAmount
	if callAmount < toCall || s.Stack == 0 {
		s.IsAllIn = true
	}
	s.LastAction = ActionCall
	t.actedSeats[idx] = true
	t.record("call", idx, callAmount)
	return nil
}

func (t *Table) applyBet(idx int, amount int64) error {
	if t.currentBet != 0 {
		return ErrBetWhileBetExists
	}
	if amount <= 0 {
		return ErrBetAmountRequired
	}
	s := &t.seats[idx]
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
	t.currentBet = s.StreetCommit
	t.minRaise = maxInt64(t.cfg.BigBlind, t.currentBet)
	t.raiseBlockedSeats = map[int]bool{}
	t.actedSeats = map[int]bool{idx: true}
	s.LastAction = ActionBet
	t.record("bet", idx, pay)
	return nil
}

func (t *Table) applyRaise(idx int, amount int64) error {
	if t.currentBet == 0 {
		return ErrRaiseWithoutBet
	}
	if t.raiseBlockedSeats[idx] {
		return ErrRaiseNotReopened
	}
	if amount <= t.currentBet {
		return ErrRaiseAmountTooSmall
	}
	s := &t.seats[idx]
	add := amount - s.StreetCommit
	if add > s.Stack {
		return ErrInsufficientStack
	}
	requiredTotal := t.currentBet + t.minRaise
	isAllIn := add == s.Stack
	if amount < requiredTotal && !isAllIn {
		return ErrRaiseBelowMin
	}
	t.applyRaiseLike(idx, amount, add, requiredTotal)
	s.LastAction = ActionRaise
	t.record("raise", idx, amount)
	return nil
}

func (t *Table) applyAllIn(idx int) error {
	s := &t.seats[idx]
	if s.Stack <= 0 {
		return ErrNoStack
	}
	add := s.Stack
	allInAmount := s.StreetCommit + add
	requiredTotal := t.currentBet + t.minRaise

	s.Stack = 0
	s.StreetCommit = allInAmount
	s.HandCommit += add
	t.pot += add
	s.IsAllIn = true

	if allInAmount > t.currentBet {
		t.applyRaiseLike(idx, allInAmount, add, requiredTotal)
	} else {
		t.actedSeats[idx] = true
	}
	s.LastAction = ActionAllIn
	t.record("all-in", idx, add)
	return nil
}

// applyRaiseLike applies the chip movement and full/short-raise
// classification shared by raise and a raising all-in. add and
// requiredTotal must be computed by the caller before any state
// mutation (applyAllIn already moved the chips, so it passes add for
// classification only; applyRaise moves chips here).
func (t *Table) applyRaiseLike(idx int, amount, add, requiredTotal int64) {
	s := &t.seats[idx]
	// applyRaise hasn't moved chips yet; applyAllIn already has. Detect
	// by whether StreetCommit already equals amount.
	if s.StreetCommit != amount {
		s.Stack -= add
		s.StreetCommit = amount
		s.HandCommit += add
		t.pot += add
		if s.Stack == 0 {
			s.IsAllIn = true
		}
	}

	previousBet := t.currentBet
	fullRaise := amount >= requiredTotal
	if fullRaise {
		t.minRaise = amount - previousBet
		t.raiseBlockedSeats = map[int]bool{}
	} else {
		blocked := map[int]bool{}
		for seat := range t.actedSeats {
			blocked[seat] = true
		}
		t.raiseBlockedSeats = blocked
	}
	t.currentBet = amount
	t.actedSeats = map[int]bool{idx: true}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
