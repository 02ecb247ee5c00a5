package main

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/shared/config"
	"github.com/radieske/football-predictions-poc/internal/shared/logger"
)

func rp(to string) *httputil.ReverseProxy {
	u, _ := url.Parse(to)
	return httputil.NewSingleHostReverseProxy(u)
}

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	match := rp(cfg.MatchServiceURL)
	bet := rp(cfg.BetServiceURL)

	mux := http.NewServeMux()

	// partidas, times e previsões -> match-service
	mux.Handle("/api/matches/", http.StripPrefix("/api/matches", match))
	mux.Handle("/api/teams/", http.StripPrefix("/api/teams", match))
	mux.Handle("/api/predictions/", http.StripPrefix("/api/predictions", match))

	// usuários, apostas e WS de liquidações -> bet-service
	mux.Handle("/api/users/", http.StripPrefix("/api/users", bet))
	mux.Handle("/api/bets/", http.StripPrefix("/api/bets", bet))
	mux.Handle("/ws", bet)

	addr := ":" + cfg.HTTPPort
	log.Info("api-gateway listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil && err != http.ErrServerClosed {
		log.Fatal("gateway failed", zap.Error(err))
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
