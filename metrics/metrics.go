package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsDispatched counts actions that produced a new snapshot, by tag.
	ActionsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "director_actions_dispatched_total",
			Help: "Total number of actions applied to the tournament snapshot",
		},
		[]string{"action"},
	)

	// ActionsDiscarded counts actions that left the snapshot unchanged,
	// mostly stale actions for a tournament that is no longer open.
	ActionsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "director_actions_discarded_total",
			Help: "Total number of actions that did not change the snapshot",
		},
		[]string{"action"},
	)

	// Subscribers tracks snapshot subscribers currently attached to the store.
	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "director_snapshot_subscribers",
			Help: "Number of snapshot subscribers",
		},
	)

	// PushMessages counts inbound push frames by outcome.
	PushMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "director_push_messages_total",
			Help: "Total number of push frames received",
		},
		[]string{"outcome"},
	)

	// APIRequestDuration measures calls to the tournament API.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "director_api_request_duration_seconds",
			Help:    "Tournament API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// ConsoleClients tracks browser displays attached to the live feed.
	ConsoleClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "director_console_clients",
			Help: "Number of websocket clients attached to the console feed",
		},
	)

	// StandingsUploads counts standings uploads by outcome.
	StandingsUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "director_standings_uploads_total",
			Help: "Total number of standings uploads",
		},
		[]string{"outcome"},
	)
)
