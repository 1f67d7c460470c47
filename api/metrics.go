package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registration outcomes recorded by ObserveRegistration
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeNotFound   = "not_found"
	OutcomeFailed     = "transaction_error"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, route template and status code",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	arrestRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arrest_registrations_total",
		Help: "Arrest registrations by outcome",
	}, []string{"outcome"})

	arrestRegistrationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arrest_registration_duration_seconds",
		Help:    "Time spent registering an arrest, including retries",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
	})
)

// ObserveRegistration records the outcome and duration of one arrest registration
func ObserveRegistration(outcome string, d time.Duration) {
	arrestRegistrations.WithLabelValues(outcome).Inc()
	arrestRegistrationDuration.Observe(d.Seconds())
}

// MetricsHandler serves the default prometheus registry
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
