package hub

import "cashtable/internal/wire"

// sendTo renders the table state from viewerID's perspective and sends
// it to a single connection, swallowing a full send buffer (a wedged
// peer must not affect anyone else).
func (h *Hub) sendTo(conn *Connection, msgType string, viewerID string) {
	state := h.table.ToState(h.tableID, h.connectedPlayerIDs(), viewerID)
	conn.trySend(wire.Encode(msgType, state))
}

// broadcast renders one snapshot per connection (hole cards are
// visible to their owner, and to everyone at showdown/settlement for
// seats that have not folded) and fans it out, tolerating per-connection failures.
func (h *Hub) broadcast(msgType string) {
	for _, conn := range h.conns {
		h.sendTo(conn, msgType, conn.PlayerID)
	}
}

// broadcastAll is broadcast(wire.TypeTableState), the default fan-out
// after most mutations.
func (h *Hub) broadcastAll() {
	h.broadcast(wire.TypeTableState)
}

func (h *Hub) sendError(conn *Connection, message string) {
	conn.trySend(wire.NewError(message))
}
