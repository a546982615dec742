package hub

import (
	"log"
	"time"

	"cashtable/internal/engine"
	"cashtable/internal/wire"
)

// scheduleLeaveGrace arms leave_grace for playerID; the fired handler
// re-checks liveness before acting, so a reconnect racing the timer is
// harmless even without an explicit cancel.
func (h *Hub) scheduleLeaveGrace(playerID string) {
	gen := h.nextGen()
	h.leaveGraceGen[playerID] = gen
	time.AfterFunc(h.cfg.LeaveGrace, func() {
		h.submit(hubEvent{kind: evLeaveGraceFired, playerID: playerID, gen: gen})
	})
}

func (h *Hub) cancelLeaveGrace(playerID string) {
	delete(h.leaveGraceGen, playerID)
}

func (h *Hub) handleLeaveGraceFired(playerID string, gen uint64) {
	if h.leaveGraceGen[playerID] != gen {
		return // cancelled or superseded by a later grace
	}
	delete(h.leaveGraceGen, playerID)
	if h.byPlayer[playerID] != nil {
		return // reconnected before the grace elapsed
	}
	if !h.table.HasPlayer(playerID) {
		return
	}
	if err := h.table.Leave(playerID); err != nil {
		log.Printf("[hub %s] leave-grace Leave(%s): %v", h.tableID, playerID, err)
		return
	}
	h.broadcastAll()
	h.chaseRunout()
}

// scheduleDisconnectGrace arms the same grace window for an
// unannounced disconnect; firing enables auto-play instead of leaving.
func (h *Hub) scheduleDisconnectGrace(playerID string) {
	gen := h.nextGen()
	h.disconnectGraceGen[playerID] = gen
	time.AfterFunc(h.cfg.LeaveGrace, func() {
		h.submit(hubEvent{kind: evDisconnectGraceFired, playerID: playerID, gen: gen})
	})
}

func (h *Hub) cancelDisconnectGrace(playerID string) {
	delete(h.disconnectGraceGen, playerID)
}

func (h *Hub) handleDisconnectGraceFired(playerID string, gen uint64) {
	if h.disconnectGraceGen[playerID] != gen {
		return
	}
	delete(h.disconnectGraceGen, playerID)
	if h.byPlayer[playerID] != nil {
		return
	}
	if !h.table.HasPlayer(playerID) {
		return
	}
	if err := h.table.SetAutoPlay(playerID, true); err != nil {
		log.Printf("[hub %s] disconnect-grace SetAutoPlay(%s): %v", h.tableID, playerID, err)
		return
	}
	h.table.RunAutoPlay()
	h.broadcastAll()
	h.chaseRunout()
	h.maybeEnterBarrier()
}

func (h *Hub) armGaugeTimeout() uint64 {
	gen := h.nextGen()
	h.gaugeGen = gen
	time.AfterFunc(h.cfg.GaugeTimeout, func() {
		h.submit(hubEvent{kind: evGaugeTimeoutFired, gen: gen})
	})
	return gen
}

func (h *Hub) cancelGaugeTimeout() {
	h.gaugeGen = 0
}

func (h *Hub) handleGaugeTimeoutFired(gen uint64) {
	if h.gaugeGen != gen {
		return
	}
	if h.table.Street() != engine.StreetSettlement {
		return
	}
	h.finalizeBarrier()
}

func (h *Hub) scheduleStartHand() {
	gen := h.nextGen()
	h.startHandGen = gen
	time.AfterFunc(h.cfg.HandDelay, func() {
		h.submit(hubEvent{kind: evStartHandFired, gen: gen})
	})
}

func (h *Hub) handleStartHandFired(gen uint64) {
	if h.startHandGen != gen {
		return
	}
	h.startHandGen = 0
	if h.table.Street() != engine.StreetWaiting {
		return
	}
	if err := h.table.StartNewHand(); err != nil {
		log.Printf("[hub %s] delayed StartNewHand: %v", h.tableID, err)
		return
	}
	h.broadcast(wire.TypeHandState)
	h.chaseRunout()
}
