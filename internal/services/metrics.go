// Package services – submission metrics
//
// Domain-level Prometheus counters for the ingestion path. HTTP-level
// metrics (latency, status codes) live in the middleware; these counters
// track submission outcomes by capture channel regardless of transport.
package services

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// submissionsTotal counts feedback submissions by source and outcome.
// Source labels are restricted to the known channel enum (plus "unknown")
// to keep cardinality bounded.
var submissionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "feedback_submissions_total",
		Help: "Total number of feedback submissions by source and outcome.",
	},
	[]string{"source", "outcome"},
)

func init() {
	prometheus.MustRegister(submissionsTotal)
}

// observeSubmission records one submission outcome. Unrecognized or empty
// sources are folded into a single label value to bound cardinality.
func observeSubmission(source, outcome string) {
	switch source {
	case "qr", "link", "kiosk":
	case "":
		source = "qr"
	default:
		source = "unknown"
	}
	submissionsTotal.WithLabelValues(source, outcome).Inc()
}
