package hub

import (
	"context"
	"log"
	"time"

	"cashtable/card"
	"cashtable/internal/collaborators"
	"cashtable/internal/engine"
	"cashtable/internal/wire"
)

// maybeEnterBarrier starts the settlement barrier the moment the table
// reaches settlement with at least two seats still occupied, per
// spec.md §4.4. A second mutation landing on an already-settled table
// (e.g. a late revealHand) must not re-arm the barrier.
func (h *Hub) maybeEnterBarrier() {
	if h.table.Street() != engine.StreetSettlement {
		return
	}
	if h.inBarrier {
		return
	}
	if h.table.OccupiedCount() < 2 {
		h.inBarrier = true
		h.finalizeBarrier()
		return
	}
	h.inBarrier = true
	h.settlementReady = map[string]bool{}
	h.armGaugeTimeout()
}

func (h *Hub) handleNextHandGaugeComplete(playerID string) {
	if !h.inBarrier {
		return
	}
	h.settlementReady[playerID] = true
	connected := h.connectedPlayerIDs()
	for id := range connected {
		if !h.settlementReady[id] {
			return
		}
	}
	h.finalizeBarrier()
}

// finalizeBarrier ends the barrier unconditionally: called either by
// every connected player voting ready, or by the gauge timeout firing.
func (h *Hub) finalizeBarrier() {
	if !h.inBarrier {
		return
	}
	h.inBarrier = false
	h.cancelGaugeTimeout()
	h.settlementReady = map[string]bool{}

	h.flushEarnings()
	h.table.ApplyPendingPayouts()
	h.table.FinalizeDepartures()

	if err := h.table.StartNewHand(); err != nil {
		log.Printf("[hub %s] StartNewHand after settlement: %v", h.tableID, err)
	}
	h.broadcast(wire.TypeHandState)
	h.chaseRunout()
}

// flushEarnings computes the per-seat hand result and sends one batched
// ApplyUpdates call to the EarningsStore. Failures are logged, never
// block hand progression, per spec.md §7.
func (h *Hub) flushEarnings() {
	if h.earnings == nil {
		return
	}
	updates := h.earningsUpdatesForHand()
	if len(updates) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.earnings.ApplyUpdates(ctx, updates); err != nil {
		log.Printf("[hub %s] earnings flush failed: %v", h.tableID, err)
	}
}

func (h *Hub) earningsUpdatesForHand() []collaborators.EarningsUpdate {
	state := h.table.ToState(h.tableID, h.connectedPlayerIDs(), "")
	var updates []collaborators.EarningsUpdate
	for _, seat := range state.Seats {
		if seat.PlayerID == "" {
			continue
		}
		hole := h.table.HoleCards(seat.SeatIndex)
		if len(hole) != 2 {
			continue
		}
		payout := h.table.PendingPayout(seat.SeatIndex)
		update := collaborators.EarningsUpdate{
			Email:      seat.PlayerID,
			Hands:      1,
			ChipsDelta: seat.Stack + payout - seat.HandStartStack,
		}
		if collaborators.Is6992(holeRank(hole[0]), holeRank(hole[1])) {
			update.Hands6992 = 1
			update.ChipsDelta6992 = update.ChipsDelta
		}
		updates = append(updates, update)
	}
	return updates
}

func holeRank(c card.Card) int {
	return int(c.HandRealVal())
}
