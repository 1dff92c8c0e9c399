// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danielhkuo/forkcast/metrics"
	"github.com/danielhkuo/forkcast/middleware"
	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/session"
	"github.com/danielhkuo/forkcast/store"
)

// heartbeatInterval keeps proxies from reaping idle SSE connections.
const heartbeatInterval = 25 * time.Second

type FeedHandler struct {
	store   store.Adapter
	metrics *metrics.Collector
}

func NewFeedHandler(st store.Adapter, mc *metrics.Collector) *FeedHandler {
	return &FeedHandler{store: st, metrics: mc}
}

// feedEvent is one SSE payload: a full snapshot of a single document.
type feedEvent struct {
	Kind    string          `json:"kind"` // session, participant, or vote
	Key     string          `json:"key"`
	Deleted bool            `json:"deleted,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
}

// Feed handles GET /sessions/{code}/events
// Streams the session document, participant list, and vote list as
// server-sent events. Every event is a full replacement snapshot of
// one document; clients replace, never patch. The stream starts with a
// replay of current state, so reconnecting is always safe.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session code is required")
		return
	}

	var sess models.Session
	if err := h.store.Get(r.Context(), session.SessionKey(code), &sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		writeCoreError(w, err, "Failed to load session")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()

	sessSub, err := h.store.Subscribe(ctx, store.Sessions, code)
	if err != nil {
		writeCoreError(w, err, "Failed to subscribe")
		return
	}
	defer sessSub.Close()

	partSub, err := h.store.Subscribe(ctx, store.Participants, session.ScopePrefix(code))
	if err != nil {
		writeCoreError(w, err, "Failed to subscribe")
		return
	}
	defer partSub.Close()

	voteSub, err := h.store.Subscribe(ctx, store.Votes, session.ScopePrefix(code))
	if err != nil {
		writeCoreError(w, err, "Failed to subscribe")
		return
	}
	defer voteSub.Close()

	h.metrics.FeedSubscriberStarted()
	defer h.metrics.FeedSubscriberStopped()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-sessSub.C:
			if !ok {
				return
			}
			writeEvent(w, flusher, "session", c)
		case c, ok := <-partSub.C:
			if !ok {
				return
			}
			writeEvent(w, flusher, "participant", c)
		case c, ok := <-voteSub.C:
			if !ok {
				return
			}
			writeEvent(w, flusher, "vote", c)
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, flusher http.Flusher, kind string, c store.Change) {
	data, err := json.Marshal(feedEvent{
		Kind:    kind,
		Key:     c.Key.ID,
		Deleted: c.Deleted,
		Body:    json.RawMessage(c.Body),
	})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", kind, data)
	flusher.Flush()
}
