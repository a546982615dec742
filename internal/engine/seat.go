package engine

import "cashtable/card"

// Seat is one of the table's fixed 0..N-1 positions. Seats persist for
// the table's lifetime; player-bearing fields are cleared when a seat is
// vacated.
type Seat struct {
	PlayerID    string
	DisplayName string
	Stack       int64

	HoleCards []card.Card

	LastAction ActionType

	IsReady      bool
	IsFolded     bool
	IsAllIn      bool
	RaiseBlocked bool

	StreetCommit int64
	HandCommit   int64

	// HandStartStack records the stack at the start of the current hand,
	// an optional TableState field from the more feature-complete draft.
	HandStartStack int64

	revealed bool
}

func (s *Seat) occupied() bool { return s.PlayerID != "" }

func (s *Seat) resetForVacate() {
	*s = Seat{}
}

func (s *Seat) resetForNewHand() {
	s.HoleCards = nil
	s.LastAction = ActionNone
	s.IsFolded = false
	s.IsAllIn = false
	s.RaiseBlocked = false
	s.StreetCommit = 0
	s.HandCommit = 0
	s.HandStartStack = s.Stack
	s.revealed = false
}

func (s *Seat) resetForNewStreet() {
	s.StreetCommit = 0
}

// inHand reports whether the seat is dealt into the current hand and
// has not folded.
func (s *Seat) inHand() bool {
	return s.occupied() && !s.IsFolded
}

// active reports whether the seat can still act this street: in the
// hand, not folded, not all-in.
func (s *Seat) active() bool {
	return s.inHand() && !s.IsAllIn
}
