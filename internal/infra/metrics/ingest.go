package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(eventsProcessed, eventLatencyMs, storageErrors) }

var eventsProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ingest_events_total",
		Help: "Inbound chat events by handling outcome.",
	},
	[]string{"outcome"}, // 'start', 'command_skipped', 'message', 'dropped', 'error'
)

var eventLatencyMs = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "ingest_event_latency_ms",
		Help:    "Per-event handling latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	},
)

var storageErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storage_errors_total",
		Help: "Storage operation failures by operation.",
	},
	[]string{"op"}, // 'upsert_user', 'record_message'
)

func IncEvent(outcome string)      { eventsProcessed.WithLabelValues(outcome).Inc() }
func IncStorageError(op string)    { storageErrors.WithLabelValues(op).Inc() }
func ObserveEvent(d time.Duration) { eventLatencyMs.Observe(float64(d.Milliseconds())) }
