// Command server wires an engine.Table through a session hub and a
// websocket gateway, following the reference main.go's env-driven
// service construction and CORS-wrapped mux.
package main

import (
	"log"
	"net/http"

	"github.com/dustin/go-humanize"

	"cashtable/internal/collaborators"
	"cashtable/internal/config"
	"cashtable/internal/engine"
	"cashtable/internal/gateway"
	"cashtable/internal/hub"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("[server] invalid configuration: %v", err)
	}

	earnings, earningsMode, err := collaborators.NewEarningsStoreFromEnv()
	if err != nil {
		log.Fatalf("[server] failed to init earnings store: %v", err)
	}
	defer earnings.Close()

	allowList, allowListMode, err := collaborators.NewAllowListFromEnv()
	if err != nil {
		log.Fatalf("[server] failed to init allow-list: %v", err)
	}
	defer allowList.Close()

	table, err := engine.NewTable(cfg.Table)
	if err != nil {
		log.Fatalf("[server] failed to build table: %v", err)
	}

	h := hub.New("table-1", table, earnings, allowList, hub.DefaultTimingConfig())
	defer h.Close()

	gw := gateway.New(h, cfg.AllowedOrigins)

	mux := http.NewServeMux()
	mux.Handle("/ws", gw)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Printf("[server] table buy-in: %s chips, blinds %s/%s",
		humanize.Comma(cfg.Table.BuyIn), humanize.Comma(cfg.Table.SmallBlind), humanize.Comma(cfg.Table.BigBlind))
	log.Printf("[server] earnings store mode: %s", earningsMode)
	log.Printf("[server] allow-list mode: %s", allowListMode)
	log.Printf("[server] starting websocket server on %s", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, withCORS(mux, cfg.AllowedOrigins)); err != nil {
		log.Fatalf("[server] failed to start: %v", err)
	}
}

func withCORS(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := map[string]bool{}
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed["*"] {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
