package hub

import "time"

// chaseRunout arms a single RUNOUT_DELAY tick if the table is due an
// auto-runout street; each tick re-checks and re-arms itself, so the
// pacing loop never blocks the hub's single-writer goroutine on a
// sleep and never races a player action landing mid-runout.
func (h *Hub) chaseRunout() {
	if !h.table.ShouldAutoRunout() {
		return
	}
	time.AfterFunc(h.cfg.RunoutDelay, func() {
		h.submit(hubEvent{kind: evRunoutTick})
	})
}

func (h *Hub) handleRunoutTick() {
	if !h.table.ShouldAutoRunout() {
		return
	}
	if !h.table.AdvanceAutoRunout() {
		h.maybeEnterBarrier()
		h.broadcastAll()
		return
	}
	h.broadcastAll()
	h.chaseRunout()
}
