package hub

import (
	"context"
	"strings"
	"time"

	"cashtable/internal/engine"
	"cashtable/internal/wire"
)

// handleMessage decodes and dispatches one inbound envelope. Every
// handler below runs on the hub's single run-loop goroutine, so no
// Table method here needs its own locking.
func (h *Hub) handleMessage(conn *Connection, env wire.Envelope) {
	switch env.Type {
	case wire.TypeJoinTable:
		h.onJoinTable(conn, env)
	case wire.TypeReserveSeat:
		h.onReserveSeat(conn, env)
	case wire.TypeLeaveTable:
		h.onLeaveTable(conn, env)
	case wire.TypeLeaveAfterHand:
		h.onLeaveAfterHand(conn, env)
	case wire.TypeCancelLeaveAfterHand:
		h.onCancelLeaveAfterHand(conn, env)
	case wire.TypeAction:
		h.onAction(conn, env)
	case wire.TypeNextHandGaugeComplete:
		h.onNextHandGaugeComplete(conn, env)
	case wire.TypeRevealHand:
		h.onRevealHand(conn, env)
	case wire.TypeSyncState:
		h.sendTo(conn, wire.TypeTableState, conn.PlayerID)
	case wire.TypeHeartbeat:
		// no-op keepalive; the gateway's read deadline is extended by
		// websocket pongs, not by this message.
	case wire.TypeStartHand:
		h.onStartHand(conn)
	case wire.TypeResetTable:
		h.onResetTable(conn)
	default:
		h.sendError(conn, "unknown message type: "+env.Type)
	}
}

// resolvePlayerRef decodes a PlayerRefPayload and falls back to the
// connection's own bound player_id when the payload omits one.
func (h *Hub) resolvePlayerRef(conn *Connection, env wire.Envelope) (string, bool) {
	var p wire.PlayerRefPayload
	if err := wire.Decode(env, &p); err != nil {
		h.sendError(conn, err.Error())
		return "", false
	}
	playerID := strings.TrimSpace(p.PlayerID)
	if playerID == "" {
		playerID = conn.PlayerID
	}
	if playerID == "" {
		h.sendError(conn, "no player_id bound to this connection")
		return "", false
	}
	return playerID, true
}

func (h *Hub) isAllowed(email string) bool {
	if h.allowList == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	allowed, err := h.allowList.GetAllowedEmails(ctx)
	if err != nil {
		// Fail open on a lookup error: an unreachable allow-list store
		// must not lock every player out of every table.
		return true
	}
	_, ok := allowed[email]
	return ok
}

func (h *Hub) onJoinTable(conn *Connection, env wire.Envelope) {
	var p wire.JoinTablePayload
	if err := wire.Decode(env, &p); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	playerID := strings.ToLower(strings.TrimSpace(p.PlayerID))
	if playerID == "" {
		h.sendError(conn, "player_id is required")
		return
	}
	if !h.isAllowed(playerID) {
		h.sendError(conn, "player is not allowed at this table")
		return
	}
	if _, err := h.table.Join(playerID, p.Name); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	conn.PlayerID = playerID
	h.byPlayer[playerID] = conn
	h.cancelLeaveGrace(playerID)
	h.cancelDisconnectGrace(playerID)
	if h.table.OccupiedCount() >= 2 && h.table.Street() == engine.StreetWaiting {
		h.scheduleStartHand()
	}
	h.broadcastAll()
}

func (h *Hub) onReserveSeat(conn *Connection, env wire.Envelope) {
	var p wire.ReserveSeatPayload
	if err := wire.Decode(env, &p); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	playerID := strings.ToLower(strings.TrimSpace(p.PlayerID))
	if playerID == "" {
		h.sendError(conn, "player_id is required")
		return
	}
	if !h.isAllowed(playerID) {
		h.sendError(conn, "player is not allowed at this table")
		return
	}
	if err := h.table.ReserveSeat(playerID, p.Name, p.SeatIndex); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	conn.PlayerID = playerID
	h.byPlayer[playerID] = conn
	h.cancelLeaveGrace(playerID)
	h.cancelDisconnectGrace(playerID)
	if h.table.OccupiedCount() >= 2 && h.table.Street() == engine.StreetWaiting {
		h.scheduleStartHand()
	}
	h.broadcastAll()
}

func (h *Hub) onLeaveTable(conn *Connection, env wire.Envelope) {
	playerID, ok := h.resolvePlayerRef(conn, env)
	if !ok {
		return
	}
	if err := h.table.Leave(playerID); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.cancelLeaveGrace(playerID)
	h.cancelDisconnectGrace(playerID)
	h.broadcastAll()
	h.maybeEnterBarrier()
	h.chaseRunout()
}

func (h *Hub) onLeaveAfterHand(conn *Connection, env wire.Envelope) {
	playerID, ok := h.resolvePlayerRef(conn, env)
	if !ok {
		return
	}
	if err := h.table.MarkLeaveAfterHand(playerID); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.broadcastAll()
}

func (h *Hub) onCancelLeaveAfterHand(conn *Connection, env wire.Envelope) {
	playerID, ok := h.resolvePlayerRef(conn, env)
	if !ok {
		return
	}
	if err := h.table.CancelLeaveAfterHand(playerID); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.broadcastAll()
}

func (h *Hub) onAction(conn *Connection, env wire.Envelope) {
	var p wire.ActionPayload
	if err := wire.Decode(env, &p); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	playerID := strings.TrimSpace(p.PlayerID)
	if playerID == "" {
		playerID = conn.PlayerID
	}
	if playerID == "" {
		h.sendError(conn, "no player_id bound to this connection")
		return
	}
	kind, ok := engine.ParseActionType(string(p.Action))
	if !ok {
		h.sendError(conn, "unknown action: "+string(p.Action))
		return
	}
	seat := h.table.SeatIndexOf(playerID)
	if err := h.table.RecordAction(playerID, kind, p.Amount); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.announceAction(wire.ActionAppliedPayload{PlayerID: playerID, Action: p.Action, Amount: p.Amount, Seat: seat})
	h.broadcastAll()
	h.maybeEnterBarrier()
	h.chaseRunout()
}

// announceAction fans out the actionApplied envelope verbatim to every
// connection; unlike broadcast(), its payload isn't a per-viewer
// TableState, so it bypasses broadcast()'s viewer-specific rendering.
func (h *Hub) announceAction(p wire.ActionAppliedPayload) {
	env := wire.Encode(wire.TypeActionApplied, p)
	for _, conn := range h.conns {
		conn.trySend(env)
	}
}

func (h *Hub) onNextHandGaugeComplete(conn *Connection, env wire.Envelope) {
	playerID, ok := h.resolvePlayerRef(conn, env)
	if !ok {
		return
	}
	h.handleNextHandGaugeComplete(playerID)
}

func (h *Hub) onRevealHand(conn *Connection, env wire.Envelope) {
	playerID, ok := h.resolvePlayerRef(conn, env)
	if !ok {
		return
	}
	if err := h.table.RecordHandReveal(playerID); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.broadcastAll()
}

// onStartHand is an operator/test escape hatch: normally scheduleStartHand
// drives the HAND_DELAY pacing automatically once two seats are occupied.
func (h *Hub) onStartHand(conn *Connection) {
	if h.table.Street() != engine.StreetWaiting {
		h.sendError(conn, "table is not waiting for a new hand")
		return
	}
	if err := h.table.StartNewHand(); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	h.broadcast(wire.TypeHandState)
	h.chaseRunout()
}

func (h *Hub) onResetTable(conn *Connection) {
	h.table.Reset()
	h.broadcastAll()
}
