package hub

import (
	"github.com/google/uuid"

	"cashtable/internal/wire"
)

// Connection is one live client connection, registered with the hub by
// the gateway. A connection's player_id is empty until joinTable binds
// it. Distinct from player_id (caller-supplied), ID is a per-connection
// identity the hub needs to tell two tabs of the same player apart.
type Connection struct {
	ID       string
	PlayerID string
	Send     chan wire.Envelope
}

// NewConnection allocates a connection with a fresh identifier and a
// buffered outbound channel, matching the reference gateway's
// per-connection 256-deep Send buffer.
func NewConnection() *Connection {
	return &Connection{
		ID:   uuid.NewString(),
		Send: make(chan wire.Envelope, 256),
	}
}

// trySend enqueues env without blocking; a full buffer means the peer
// is wedged, so the message is dropped rather than stalling the hub's
// single-writer loop.
func (c *Connection) trySend(env wire.Envelope) bool {
	select {
	case c.Send <- env:
		return true
	default:
		return false
	}
}
