// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solar"

var (
	// HTTPRequestsTotal counts served requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthzDecisionsTotal counts permission checks by resource, action and outcome.
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authz_decisions_total",
			Help:      "Total number of authorization decisions",
		},
		[]string{"role", "resource", "action", "decision"},
	)

	// OutboundFailuresTotal counts failed best-effort deliveries (email, sms, storage, events).
	OutboundFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbound_failures_total",
			Help:      "Total number of failed outbound deliveries",
		},
		[]string{"channel"},
	)
)

// Decision labels.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Outbound channels.
const (
	ChannelEmail   = "email"
	ChannelSMS     = "sms"
	ChannelStorage = "storage"
	ChannelEvents  = "events"
)

// RecordAuthzDecision increments the decision counter.
func RecordAuthzDecision(role, resource, action string, allowed bool) {
	decision := DecisionDeny
	if allowed {
		decision = DecisionAllow
	}
	AuthzDecisionsTotal.WithLabelValues(role, resource, action, decision).Inc()
}

// RecordOutboundFailure increments the failure counter of a channel.
func RecordOutboundFailure(channel string) {
	OutboundFailuresTotal.WithLabelValues(channel).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
