package engine

import (
	"cashtable/card"
)

// Table is a single six-max cash table: seats, betting round state
// machine, pot accounting, and settlement. It has no internal lock —
// the caller (the session hub) is responsible for serializing all
// mutating calls onto a single goroutine.
type Table struct {
	cfg  Config
	deck *Deck

	seats []Seat

	street       Street
	dealerSeat   int
	bigBlindSeat int
	handNumber   int

	pot        int64
	currentBet int64
	minRaise   int64

	board   []card.Card
	dealt   int // number of board cards currently revealed

	actionHistory []ActionRecord

	pendingPayouts      map[int]int64
	raiseBlockedSeats   map[int]bool
	pendingLeaveSeats   map[int]bool
	leaveAfterHandSeats map[int]bool
	pendingJoinSeats    map[int]bool
	autoPlaySeats       map[int]bool
	actedSeats          map[int]bool

	currentTurnSeat int

	saveEarnings bool
}

// NewTable builds an empty table in the waiting street.
func NewTable(cfg Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Table{
		cfg:                 cfg,
		deck:                NewDeck(cfg.Seed),
		seats:               make([]Seat, cfg.MaxPlayers),
		street:              StreetWaiting,
		dealerSeat:          -1,
		bigBlindSeat:        -1,
		currentTurnSeat:     NoSeat,
		pendingPayouts:      map[int]int64{},
		raiseBlockedSeats:   map[int]bool{},
		pendingLeaveSeats:   map[int]bool{},
		leaveAfterHandSeats: map[int]bool{},
		pendingJoinSeats:    map[int]bool{},
		autoPlaySeats:       map[int]bool{},
		actedSeats:          map[int]bool{},
	}
	return t, nil
}

// ---- seating ----

// Join seats player_id at the first empty seat with a fresh buy-in, or
// returns its existing seat if the player is already seated. Idempotent
// by player_id.
func (t *Table) Join(playerID, name string) (int, error) {
	if idx, ok := t.findSeat(playerID); ok {
		delete(t.pendingLeaveSeats, idx)
		delete(t.leaveAfterHandSeats, idx)
		t.seats[idx].DisplayName = name
		return idx, nil
	}
	for i := range t.seats {
		if !t.seats[i].occupied() {
			t.seats[i].PlayerID = playerID
			t.seats[i].DisplayName = name
			t.seats[i].Stack = t.cfg.BuyIn
			if t.street != StreetWaiting {
				t.pendingJoinSeats[i] = true
			}
			return i, nil
		}
	}
	return 0, ErrTableFull
}

// ReserveSeat seats player_id at a specific seat index.
func (t *Table) ReserveSeat(playerID, name string, seatIndex int) error {
	if seatIndex < 0 || seatIndex >= len(t.seats) {
		return ErrBadSeat
	}
	if idx, ok := t.findSeat(playerID); ok && idx != seatIndex {
		return ErrAlreadySeated
	}
	if t.seats[seatIndex].occupied() && t.seats[seatIndex].PlayerID != playerID {
		return ErrSeatOccupied
	}
	t.seats[seatIndex].PlayerID = playerID
	t.seats[seatIndex].DisplayName = name
	t.seats[seatIndex].Stack = t.cfg.BuyIn
	if t.street != StreetWaiting {
		t.pendingJoinSeats[seatIndex] = true
	}
	return nil
}

// Leave removes player_id immediately, unless the player is mid-hand, in
// which case the seat is force-folded and cleared at hand end.
func (t *Table) Leave(playerID string) error {
	idx, ok := t.findSeat(playerID)
	if !ok {
		return ErrNotSeated
	}
	if t.inActiveHand() && t.seats[idx].inHand() {
		t.foldSeatForDeparture(idx)
		t.pendingLeaveSeats[idx] = true
		if t.allRemainingArePendingLeave() {
			t.autoPlayToHandEnd()
		}
		return nil
	}
	t.clearSeat(idx)
	return nil
}

// MarkLeaveAfterHand defers seat clearing until settlement.
func (t *Table) MarkLeaveAfterHand(playerID string) error {
	idx, ok := t.findSeat(playerID)
	if !ok {
		return ErrNotSeated
	}
	t.leaveAfterHandSeats[idx] = true
	return nil
}

// CancelLeaveAfterHand reverses MarkLeaveAfterHand.
func (t *Table) CancelLeaveAfterHand(playerID string) error {
	idx, ok := t.findSeat(playerID)
	if !ok {
		return ErrNotSeated
	}
	delete(t.leaveAfterHandSeats, idx)
	return nil
}

// SetAutoPlay enables or disables auto-play for a seated player.
func (t *Table) SetAutoPlay(playerID string, on bool) error {
	idx, ok := t.findSeat(playerID)
	if !ok {
		return ErrNotSeated
	}
	if on {
		t.autoPlaySeats[idx] = true
	} else {
		delete(t.autoPlaySeats, idx)
	}
	return nil
}

func (t *Table) findSeat(playerID string) (int, bool) {
	if playerID == "" {
		return 0, false
	}
	for i := range t.seats {
		if t.seats[i].PlayerID == playerID {
			return i, true
		}
	}
	return 0, false
}

func (t *Table) clearSeat(idx int) {
	t.seats[idx].resetForVacate()
	delete(t.pendingLeaveSeats, idx)
	delete(t.leaveAfterHandSeats, idx)
	delete(t.pendingJoinSeats, idx)
	delete(t.autoPlaySeats, idx)
	delete(t.raiseBlockedSeats, idx)
	delete(t.actedSeats, idx)
}

func (t *Table) foldSeatForDeparture(idx int) {
	if t.seats[idx].IsFolded {
		return
	}
	t.seats[idx].IsFolded = true
	t.seats[idx].LastAction = ActionFold
	t.actedSeats[idx] = true
	t.record("fold", idx, 0)
	t.advanceTurnOrStreet()
}

func (t *Table) allRemainingArePendingLeave() bool {
	any := false
	for i := range t.seats {
		if !t.seats[i].occupied() {
			continue
		}
		any = true
		if !t.pendingLeaveSeats[i] {
			return false
		}
	}
	return any
}

func (t *Table) inActiveHand() bool {
	switch t.street {
	case StreetPreflop, StreetFlop, StreetTurn, StreetRiver:
		return true
	default:
		return false
	}
}

func (t *Table) occupiedSeats() []int {
	var out []int
	for i := range t.seats {
		if t.seats[i].occupied() && !t.pendingJoinSeats[i] {
			out = append(out, i)
		}
	}
	return out
}

func (t *Table) occupiedCount() int {
	n := 0
	for i := range t.seats {
		if t.seats[i].occupied() {
			n++
		}
	}
	return n
}
