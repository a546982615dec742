// Package gateway terminates websocket connections and feeds decoded
// JSON envelopes into a Hub, adapted from the reference gateway's
// connection bookkeeping and read/write pump pair but speaking JSON
// text frames in place of a protobuf binary wire format.
package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"cashtable/internal/hub"
	"cashtable/internal/wire"
)

const (
	readLimit  = 65536
	pongWait   = 60 * time.Second
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Gateway upgrades incoming HTTP requests to websockets, one per table.
type Gateway struct {
	hub            *hub.Hub
	allowedOrigins map[string]bool
}

// New builds a Gateway that feeds h. allowedOrigins is the CORS/origin
// allow-list; a single "*" entry accepts every origin.
func New(h *hub.Hub, allowedOrigins []string) *Gateway {
	g := &Gateway{hub: h, allowedOrigins: map[string]bool{}}
	for _, o := range allowedOrigins {
		g.allowedOrigins[o] = true
	}
	return g
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	if g.allowedOrigins["*"] {
		return true
	}
	origin := r.Header.Get("Origin")
	return g.allowedOrigins[origin]
}

// ServeHTTP upgrades the request and registers a new connection with
// the hub; readPump and writePump run for the connection's lifetime.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader.CheckOrigin = g.checkOrigin
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[gateway] upgrade error: %v", err)
		return
	}

	c := hub.NewConnection()
	g.hub.Register(c)
	log.Printf("[gateway] connection %s registered", c.ID)

	go g.writePump(conn, c)
	g.readPump(conn, c)
}

func (g *Gateway) readPump(conn *websocket.Conn, c *hub.Connection) {
	defer func() {
		g.hub.Unregister(c)
		conn.Close()
		close(c.Send)
	}()

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[gateway] read error on %s: %v", c.ID, err)
			}
			return
		}

		var env wire.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.Send <- wire.NewError("malformed envelope: " + err.Error())
			continue
		}
		g.hub.Dispatch(c, env)
	}
}

// writePump owns conn's write side exclusively, matching gorilla's
// single-writer-per-connection requirement; ticker drives the idle
// keepalive ping independent of hub traffic.
func (g *Gateway) writePump(conn *websocket.Conn, c *hub.Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := json.Marshal(env)
			if err != nil {
				log.Printf("[gateway] marshal error for %s: %v", c.ID, err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
