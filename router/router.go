// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/forkcast/cliparse"
	"github.com/danielhkuo/forkcast/handlers"
	"github.com/danielhkuo/forkcast/identity"
	"github.com/danielhkuo/forkcast/metrics"
	"github.com/danielhkuo/forkcast/middleware"
	"github.com/danielhkuo/forkcast/sourcing"
	"github.com/danielhkuo/forkcast/store"
)

func NewRouter(st store.Adapter, cfg cliparse.Config, collector *metrics.Collector, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	ids := identity.NewProvider()

	var searcher sourcing.Searcher
	if cfg.SearchURL != "" {
		searcher = sourcing.NewHTTPSearcher(cfg.SearchURL, cfg.SearchKey)
	}

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(st, ids, searcher, collector)
	voteHandler := handlers.NewVoteHandler(st, ids, collector)
	feedHandler := handlers.NewFeedHandler(st, collector)
	identityHandler := handlers.NewIdentityHandler(ids)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(collector, limiter.Middleware(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler(gatherer))

	// Identity issuance
	mux.HandleFunc("POST /identity", wrap(identityHandler.Issue))

	// Session lifecycle (host operations gated inside the engine)
	mux.HandleFunc("POST /sessions", wrap(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{code}", wrap(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{code}/join", wrap(sessionHandler.JoinSession))
	mux.HandleFunc("POST /sessions/{code}/preference", wrap(sessionHandler.SubmitPreference))
	mux.HandleFunc("POST /sessions/{code}/start", wrap(sessionHandler.StartVoting))
	mux.HandleFunc("POST /sessions/{code}/finish", wrap(sessionHandler.FinishVoting))
	mux.HandleFunc("GET /sessions/{code}/participants", wrap(sessionHandler.ListParticipants))

	// Voting
	mux.HandleFunc("POST /sessions/{code}/votes/{candidate}", wrap(voteHandler.ToggleVote))
	mux.HandleFunc("GET /sessions/{code}/votes", wrap(voteHandler.ListVotes))

	// Realtime feed. Long-lived stream: the request middleware would
	// log a bogus duration and throttle reconnects, so it goes bare.
	mux.HandleFunc("GET /sessions/{code}/events", feedHandler.Feed)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("forkcast API v1"))
	})

	return mux
}
