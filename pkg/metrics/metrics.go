// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wanderlust_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// BotTurnsTotal counts bot turns by classified intent.
	BotTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_bot_turns_total",
			Help: "Recommendation bot turns by intent",
		},
		[]string{"intent"},
	)

	// RecommendationResults observes how many listings a recommendation query returned.
	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wanderlust_bot_recommendation_results",
			Help:    "Listings returned per recommendation query",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	// RecommendationFailures counts recommendation queries that failed and were swallowed.
	RecommendationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wanderlust_bot_recommendation_failures_total",
			Help: "Recommendation queries degraded to an empty result",
		},
	)

	// BookingTransitionsTotal counts booking lifecycle events.
	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderlust_booking_transitions_total",
			Help: "Booking lifecycle events",
		},
		[]string{"event"},
	)

	// ChatMessagesTotal counts chat messages appended to booking chats.
	ChatMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wanderlust_chat_messages_total",
			Help: "Messages appended to booking chats",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordBotTurn records one bot turn.
func RecordBotTurn(intent string) {
	BotTurnsTotal.WithLabelValues(intent).Inc()
}

// RecordBookingEvent records a booking lifecycle event such as "booking_confirmed".
func RecordBookingEvent(event string) {
	BookingTransitionsTotal.WithLabelValues(event).Inc()
}
