package engine

// ActionRecord is one entry in the table's in-memory, per-hand action
// log. It is not persisted beyond the process — durable hand history is
// explicitly out of scope.
type ActionRecord struct {
	HandNumber int
	Street     Street
	Seat       int
	Kind       string // "post_blind","fold","check","call","bet","raise","all-in","refund","payout/uncontested","payout/side_pot","hand_reveal","hand_end","showdown"
	Amount     int64
}

func (t *Table) record(kind string, seat int, amount int64) {
	t.actionHistory = append(t.actionHistory, ActionRecord{
		HandNumber: t.handNumber,
		Street:     t.street,
		Seat:       seat,
		Kind:       kind,
		Amount:     amount,
	})
}
