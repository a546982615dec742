// Package hub implements SessionHub: the single-writer coordinator that
// multiplexes one engine.Table over many concurrent client connections.
// Every mutation of the Table happens on the run loop's goroutine;
// nothing outside it ever touches the Table directly.
package hub

import (
	"log"
	"time"

	"cashtable/internal/collaborators"
	"cashtable/internal/engine"
	"cashtable/internal/wire"
)

// Timing constants per spec.md §4.4/§5, tunable for tests.
const (
	DefaultHandDelay    = 1 * time.Second
	DefaultRunoutDelay  = 1600 * time.Millisecond
	DefaultLeaveGrace   = 30 * time.Second
	DefaultGaugeTimeout = 30 * time.Second
)

// TimingConfig holds the hub's tunable delays.
type TimingConfig struct {
	HandDelay    time.Duration
	RunoutDelay  time.Duration
	LeaveGrace   time.Duration
	GaugeTimeout time.Duration
}

// DefaultTimingConfig returns the spec-stated defaults.
func DefaultTimingConfig() TimingConfig {
	return TimingConfig{
		HandDelay:    DefaultHandDelay,
		RunoutDelay:  DefaultRunoutDelay,
		LeaveGrace:   DefaultLeaveGrace,
		GaugeTimeout: DefaultGaugeTimeout,
	}
}

type eventKind int

const (
	evRegister eventKind = iota
	evUnregister
	evMessage
	evLeaveGraceFired
	evDisconnectGraceFired
	evGaugeTimeoutFired
	evStartHandFired
	evRunoutTick
)

type hubEvent struct {
	kind     eventKind
	conn     *Connection
	env      wire.Envelope
	playerID string
	gen      uint64
}

// Hub is the session coordinator for exactly one table.
type Hub struct {
	tableID   string
	table     *engine.Table
	earnings  collaborators.EarningsStore
	allowList collaborators.AllowList
	cfg       TimingConfig

	events chan hubEvent
	done   chan struct{}

	conns    map[string]*Connection
	byPlayer map[string]*Connection

	leaveGraceGen      map[string]uint64
	disconnectGraceGen map[string]uint64
	gaugeGen           uint64
	startHandGen       uint64
	nextGenValue       uint64

	inBarrier       bool
	settlementReady map[string]bool
}

// New builds a Hub around table and starts its run loop.
func New(tableID string, table *engine.Table, earnings collaborators.EarningsStore, allowList collaborators.AllowList, cfg TimingConfig) *Hub {
	h := &Hub{
		tableID:            tableID,
		table:              table,
		earnings:           earnings,
		allowList:          allowList,
		cfg:                cfg,
		events:             make(chan hubEvent, 256),
		done:               make(chan struct{}),
		conns:              map[string]*Connection{},
		byPlayer:           map[string]*Connection{},
		leaveGraceGen:      map[string]uint64{},
		disconnectGraceGen: map[string]uint64{},
		settlementReady:    map[string]bool{},
	}
	go h.run()
	return h
}

func (h *Hub) nextGen() uint64 {
	h.nextGenValue++
	return h.nextGenValue
}

// Register binds a new connection to this table and sends it the
// current snapshot. Called by the gateway once the websocket upgrade
// completes.
func (h *Hub) Register(conn *Connection) {
	h.submit(hubEvent{kind: evRegister, conn: conn})
}

// Unregister is called by the gateway's readPump when a connection
// closes, triggering disconnect-grace handling for its bound player.
func (h *Hub) Unregister(conn *Connection) {
	h.submit(hubEvent{kind: evUnregister, conn: conn})
}

// Dispatch forwards one decoded inbound envelope from conn to the hub's
// serialized event loop.
func (h *Hub) Dispatch(conn *Connection, env wire.Envelope) {
	h.submit(hubEvent{kind: evMessage, conn: conn, env: env})
}

// Close stops the run loop. Pending timers fire into a closed channel
// send, which submit's select against h.done discards safely.
func (h *Hub) Close() {
	close(h.done)
}

func (h *Hub) submit(ev hubEvent) {
	select {
	case h.events <- ev:
	case <-h.done:
	}
}

func (h *Hub) run() {
	for {
		select {
		case ev := <-h.events:
			h.handle(ev)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handle(ev hubEvent) {
	// A panic inside a mutation must not corrupt Table invariants, or
	// take the whole hub down with it: recover, reset to waiting, and
	// broadcast rather than leave state half-applied.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[hub %s] recovered panic handling event: %v", h.tableID, r)
			h.table.Reset()
			h.broadcastAll()
		}
	}()

	switch ev.kind {
	case evRegister:
		h.handleRegister(ev.conn)
	case evUnregister:
		h.handleUnregister(ev.conn)
	case evMessage:
		h.handleMessage(ev.conn, ev.env)
	case evLeaveGraceFired:
		h.handleLeaveGraceFired(ev.playerID, ev.gen)
	case evDisconnectGraceFired:
		h.handleDisconnectGraceFired(ev.playerID, ev.gen)
	case evGaugeTimeoutFired:
		h.handleGaugeTimeoutFired(ev.gen)
	case evStartHandFired:
		h.handleStartHandFired(ev.gen)
	case evRunoutTick:
		h.handleRunoutTick()
	}
}

func (h *Hub) handleRegister(conn *Connection) {
	h.conns[conn.ID] = conn
	h.sendTo(conn, wire.TypeTableState, conn.PlayerID)
}

func (h *Hub) handleUnregister(conn *Connection) {
	delete(h.conns, conn.ID)
	if conn.PlayerID == "" {
		return
	}
	if h.byPlayer[conn.PlayerID] == conn {
		delete(h.byPlayer, conn.PlayerID)
		h.scheduleDisconnectGrace(conn.PlayerID)
	}
}

func (h *Hub) connectedPlayerIDs() map[string]bool {
	out := make(map[string]bool, len(h.byPlayer))
	for playerID := range h.byPlayer {
		out[playerID] = true
	}
	return out
}

