package engine

import "cashtable/card"

// SeatState is the externally visible rendering of one seat.
type SeatState struct {
	SeatIndex    int      `json:"seat_index"`
	PlayerID     string   `json:"player_id"`
	Name         string   `json:"name"`
	Stack        int64    `json:"stack"`
	Position     string   `json:"position"`
	LastAction   string   `json:"last_action"`
	HoleCards    []string `json:"hole_cards,omitempty"`
	IsConnected  bool     `json:"is_connected"`
	IsReady      bool     `json:"is_ready"`
	IsFolded     bool     `json:"is_folded"`
	IsAllIn      bool     `json:"is_all_in"`
	StreetCommit int64    `json:"street_commit"`
	RaiseBlocked bool     `json:"raise_blocked"`

	// HandStartStack is the more-feature-complete draft's optional field.
	HandStartStack int64 `json:"hand_start_stack,omitempty"`
}

// ActionRecordState is the wire rendering of one ActionRecord.
type ActionRecordState struct {
	HandNumber int    `json:"hand_number"`
	Street     string `json:"street"`
	Seat       int    `json:"seat"`
	Kind       string `json:"kind"`
	Amount     int64  `json:"amount"`
}

// TableState is the full snapshot rendered after every mutation and
// broadcast by the hub.
type TableState struct {
	TableID         string              `json:"table_id"`
	SmallBlind      int64               `json:"small_blind"`
	BigBlind        int64               `json:"big_blind"`
	MaxPlayers      int                 `json:"max_players"`
	DealerSeat      int                 `json:"dealer_seat"`
	Street          string              `json:"street"`
	Pot             int64               `json:"pot"`
	CurrentBet      int64               `json:"current_bet"`
	MinRaise        int64               `json:"min_raise"`
	Board           []string            `json:"board"`
	Seats           []SeatState         `json:"seats"`
	ActionHistory   []ActionRecordState `json:"action_history"`
	CurrentTurnSeat int                 `json:"current_turn_seat"`
	HandNumber      int                 `json:"hand_number"`
	SaveEarnings    bool                `json:"save_earnings"`

	// PotExclCurrentStreet is the pot as it stood before this street's
	// betting began: t.pot minus every occupied seat's live StreetCommit.
	// Optional; no client requires it.
	PotExclCurrentStreet int64 `json:"pot_breakdown_excl_current_street,omitempty"`
}

// ToState renders the table for broadcast. connected is the set of
// player_ids currently bound to a live connection (owned by the hub,
// not the Table); a seat's is_connected flag is true iff its player_id
// is in that set. viewerID controls hole-card visibility: a seat's hole
// cards are included for the viewer's own seat, and once the hand
// reaches showdown/settlement for every seat that has not folded. A
// folded seat's cards stay hidden from other viewers even after a
// revealHand.
func (t *Table) ToState(tableID string, connected map[string]bool, viewerID string) TableState {
	showAll := t.street == StreetShowdown || t.street == StreetSettlement

	seats := make([]SeatState, len(t.seats))
	for i := range t.seats {
		s := &t.seats[i]
		ss := SeatState{
			SeatIndex:      i,
			PlayerID:       s.PlayerID,
			Name:           s.DisplayName,
			Stack:          s.Stack,
			Position:       t.position(i),
			LastAction:     s.LastAction.String(),
			IsConnected:    s.occupied() && connected[s.PlayerID],
			IsReady:        s.IsReady,
			IsFolded:       s.IsFolded,
			IsAllIn:        s.IsAllIn,
			StreetCommit:   s.StreetCommit,
			RaiseBlocked:   s.RaiseBlocked,
			HandStartStack: s.HandStartStack,
		}
		if s.occupied() && len(s.HoleCards) == 2 {
			mine := viewerID != "" && s.PlayerID == viewerID
			if mine || (showAll && !s.IsFolded) {
				ss.HoleCards = cardsToStrings(s.HoleCards)
			}
		}
		seats[i] = ss
	}

	history := make([]ActionRecordState, len(t.actionHistory))
	for i, a := range t.actionHistory {
		history[i] = ActionRecordState{
			HandNumber: a.HandNumber,
			Street:     a.Street.String(),
			Seat:       a.Seat,
			Kind:       a.Kind,
			Amount:     a.Amount,
		}
	}

	return TableState{
		TableID:              tableID,
		SmallBlind:           t.cfg.SmallBlind,
		BigBlind:             t.cfg.BigBlind,
		MaxPlayers:           t.cfg.MaxPlayers,
		DealerSeat:           t.dealerSeat,
		Street:               t.street.String(),
		Pot:                  t.pot,
		CurrentBet:           t.currentBet,
		MinRaise:             t.minRaise,
		Board:                cardsToStrings(t.board[:t.dealt]),
		Seats:                seats,
		ActionHistory:        history,
		CurrentTurnSeat:      t.currentTurnSeat,
		HandNumber:           t.handNumber,
		SaveEarnings:         t.saveEarnings,
		PotExclCurrentStreet: t.potExclCurrentStreet(),
	}
}

// potExclCurrentStreet reports the pot's carry-over from completed
// streets, excluding whatever is sitting in StreetCommit on the current
// street.
func (t *Table) potExclCurrentStreet() int64 {
	live := int64(0)
	for i := range t.seats {
		if t.seats[i].occupied() {
			live += t.seats[i].StreetCommit
		}
	}
	return t.pot - live
}

func cardsToStrings(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Street reports the table's current street, used by the hub to decide
// when to arm the settlement barrier / runout pacing.
func (t *Table) Street() Street { return t.street }

// OccupiedCount reports how many seats are occupied.
func (t *Table) OccupiedCount() int { return t.occupiedCount() }

// HasPlayer reports whether playerID currently occupies a seat.
func (t *Table) HasPlayer(playerID string) bool {
	_, ok := t.findSeat(playerID)
	return ok
}

// MaxPlayers returns the configured seat count.
func (t *Table) MaxPlayers() int { return t.cfg.MaxPlayers }

// Reset returns the table to waiting and refills every occupied seat's
// stack to the configured buy-in, implementing the resetTable message.
func (t *Table) Reset() {
	t.street = StreetWaiting
	t.currentTurnSeat = NoSeat
	t.pot = 0
	t.currentBet = 0
	t.minRaise = 0
	t.board = nil
	t.dealt = 0
	t.actionHistory = nil
	t.pendingPayouts = map[int]int64{}
	t.raiseBlockedSeats = map[int]bool{}
	t.actedSeats = map[int]bool{}
	for i := range t.seats {
		if t.seats[i].occupied() {
			t.seats[i].Stack = t.cfg.BuyIn
			t.seats[i].IsFolded = false
			t.seats[i].IsAllIn = false
			t.seats[i].HoleCards = nil
		}
	}
}
