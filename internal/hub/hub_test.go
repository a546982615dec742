package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cashtable/internal/engine"
	"cashtable/internal/wire"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	tbl, err := engine.NewTable(engine.Config{
		MaxPlayers:      6,
		MinPlayers:      2,
		SmallBlind:      1,
		BigBlind:        3,
		BuyIn:           300,
		AutoTopupAmount: 300,
		Seed:            1,
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	cfg := TimingConfig{
		HandDelay:    10 * time.Millisecond,
		RunoutDelay:  10 * time.Millisecond,
		LeaveGrace:   40 * time.Millisecond,
		GaugeTimeout: 40 * time.Millisecond,
	}
	h := New("test-table", tbl, nil, nil, cfg)
	t.Cleanup(h.Close)
	return h
}

// awaitMessage drains conn.Send until it sees msgType or the deadline
// passes, returning the matching envelope.
func awaitMessage(t *testing.T, conn *Connection, msgType string, timeout time.Duration) wire.Envelope {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case env := <-conn.Send:
			if env.Type == msgType {
				return env
			}
		case <-deadline:
			t.Fatalf("timed out waiting for message type %q", msgType)
		}
	}
}

func joinTable(h *Hub, conn *Connection, playerID string) {
	payload, _ := json.Marshal(wire.JoinTablePayload{PlayerID: playerID, Name: playerID})
	h.Dispatch(conn, wire.Envelope{Type: wire.TypeJoinTable, Payload: payload})
}

func TestJoinTableRejectsDisallowedPlayer(t *testing.T) {
	h := newTestHub(t)
	h.allowList = fixedAllowList{"only@allowed.com": struct{}{}}

	conn := NewConnection()
	h.Register(conn)
	awaitMessage(t, conn, wire.TypeTableState, time.Second)

	joinTable(h, conn, "blocked@example.com")
	env := awaitMessage(t, conn, wire.TypeError, time.Second)
	var p wire.ErrorPayload
	if err := wire.Decode(env, &p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Message == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestTwoPlayersJoinStartsHandAfterDelay(t *testing.T) {
	h := newTestHub(t)

	connA := NewConnection()
	connB := NewConnection()
	h.Register(connA)
	h.Register(connB)
	awaitMessage(t, connA, wire.TypeTableState, time.Second)
	awaitMessage(t, connB, wire.TypeTableState, time.Second)

	joinTable(h, connA, "a@example.com")
	awaitMessage(t, connA, wire.TypeTableState, time.Second)

	joinTable(h, connB, "b@example.com")

	env := awaitMessage(t, connB, wire.TypeHandState, time.Second)
	var state engine.TableState
	if err := wire.Decode(env, &state); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if state.Street == "waiting" {
		t.Fatalf("expected the hand to have started, got street %q", state.Street)
	}
}

func TestUnregisterThenReconnectCancelsDisconnectGrace(t *testing.T) {
	h := newTestHub(t)

	connA := NewConnection()
	h.Register(connA)
	awaitMessage(t, connA, wire.TypeTableState, time.Second)
	joinTable(h, connA, "a@example.com")
	awaitMessage(t, connA, wire.TypeTableState, time.Second)

	h.Unregister(connA)

	reconnect := NewConnection()
	reconnect.PlayerID = "a@example.com"
	h.Register(reconnect)
	joinTable(h, reconnect, "a@example.com")
	awaitMessage(t, reconnect, wire.TypeTableState, time.Second)

	// The disconnect grace (40ms) firing after reconnect must be a
	// no-op: the seat should still be occupied by a@example.com, not
	// auto-played away.
	time.Sleep(80 * time.Millisecond)
	h.Dispatch(reconnect, wire.Envelope{Type: wire.TypeSyncState})
	env := awaitMessage(t, reconnect, wire.TypeTableState, time.Second)
	var state engine.TableState
	if err := wire.Decode(env, &state); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	found := false
	for _, seat := range state.Seats {
		if seat.PlayerID == "a@example.com" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a@example.com to remain seated after reconnect, got %+v", state.Seats)
	}
}

func TestActionAppliedEchoesTheAction(t *testing.T) {
	h := newTestHub(t)

	connA := NewConnection()
	connB := NewConnection()
	h.Register(connA)
	h.Register(connB)
	awaitMessage(t, connA, wire.TypeTableState, time.Second)
	awaitMessage(t, connB, wire.TypeTableState, time.Second)

	joinTable(h, connA, "a@example.com")
	awaitMessage(t, connA, wire.TypeTableState, time.Second)
	joinTable(h, connB, "b@example.com")
	handEnv := awaitMessage(t, connB, wire.TypeHandState, time.Second)

	var state engine.TableState
	if err := wire.Decode(handEnv, &state); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var toAct string
	var actor *Connection
	for _, seat := range state.Seats {
		if seat.SeatIndex != state.CurrentTurnSeat {
			continue
		}
		toAct = seat.PlayerID
	}
	switch toAct {
	case "a@example.com":
		actor = connA
	case "b@example.com":
		actor = connB
	default:
		t.Fatalf("unexpected seat to act: %q", toAct)
	}

	payload, _ := json.Marshal(wire.ActionPayload{PlayerID: toAct, Action: wire.ActionFold})
	h.Dispatch(actor, wire.Envelope{Type: wire.TypeAction, Payload: payload})

	env := awaitMessage(t, connB, wire.TypeActionApplied, time.Second)
	var applied wire.ActionAppliedPayload
	if err := wire.Decode(env, &applied); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if applied.PlayerID != toAct || applied.Action != wire.ActionFold {
		t.Fatalf("unexpected actionApplied payload: %+v", applied)
	}
}

type fixedAllowList map[string]struct{}

func (f fixedAllowList) GetAllowedEmails(_ context.Context) (map[string]struct{}, error) {
	return map[string]struct{}(f), nil
}

func (f fixedAllowList) Close() error { return nil }
