// Package metrics provides centralized Prometheus metrics registry for the
// pokedex client. All metrics are defined in the package that records them
// (pkg/client) to avoid circular dependencies.
//
// This package provides the HTTP exposition handler and documentation for
// all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer paired with Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the HTTP handler exposing all registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - pokedex_requests_total{resource, status} (Counter): Requests by resource type and HTTP status
//     ("network_error" when no response was received)
//   - pokedex_request_duration_seconds{resource} (Histogram): Request duration by resource type
//   - pokedex_errors_total{class} (Counter): Classified errors (network, client, server)
//   - pokedex_pages_fetched_total{resource} (Counter): Collection pages fetched
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   sum(rate(pokedex_errors_total[5m])) by (class)
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pokedex_request_duration_seconds_bucket[5m]))
//
//   # Not Found Rate
//   rate(pokedex_requests_total{status="404"}[5m]) / rate(pokedex_requests_total[5m])
