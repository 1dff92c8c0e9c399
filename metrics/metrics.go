// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics collects and exposes Prometheus metrics for the
// Forkcast API server.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records the server's metrics. Handlers and
// middleware call the Record methods; nothing else touches prometheus
// directly.
type Collector struct {
	sessionsCreated  prometheus.Counter
	sessionsFinished prometheus.Counter
	votesToggled     *prometheus.CounterVec
	httpStatus       *prometheus.CounterVec
	feedSubscribers  prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forkcast_sessions_created_total",
			Help: "Total sessions created",
		}),
		sessionsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forkcast_sessions_finished_total",
			Help: "Total sessions finished with a winner",
		}),
		votesToggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forkcast_votes_toggled_total",
			Help: "Vote toggles by outcome",
		}, []string{"applied"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forkcast_http_status_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
		feedSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "forkcast_feed_subscribers",
			Help: "Currently connected event-feed subscribers",
		}),
	}

	reg.MustRegister(
		c.sessionsCreated,
		c.sessionsFinished,
		c.votesToggled,
		c.httpStatus,
		c.feedSubscribers,
	)

	return c
}

func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

func (c *Collector) RecordSessionFinished() {
	c.sessionsFinished.Inc()
}

// RecordVoteToggled records a toggle outcome ("added" or "removed").
func (c *Collector) RecordVoteToggled(applied string) {
	c.votesToggled.WithLabelValues(applied).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) FeedSubscriberStarted() {
	c.feedSubscribers.Inc()
}

func (c *Collector) FeedSubscriberStopped() {
	c.feedSubscribers.Dec()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
