// Package metrics provides the centralized Prometheus metrics registry.
// All metrics are defined in their respective packages (catalog, cache,
// ratelimit, selection) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by articat.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/catalog):
//   - catalog_requests_total{status} (Counter): Total requests by HTTP status
//   - catalog_request_duration_seconds{endpoint} (Histogram): Request duration
//   - catalog_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Cache Metrics (pkg/cache):
//   - catalog_cache_hits_total{layer="redis"} (Counter): Page cache hits by layer
//   - catalog_cache_misses_total (Counter): Page cache misses
//   - catalog_cache_size_bytes{layer="redis"} (Gauge): Bytes written to the cache
//   - catalog_cache_errors_total{operation} (Counter): Cache operation errors
//
// Pacing Metrics (pkg/ratelimit):
//   - catalog_pacer_waits_total (Counter): Requests delayed by the pacer
//   - catalog_pacer_wait_seconds (Histogram): Time spent waiting in the pacer
//
// Selection Metrics (pkg/selection):
//   - selection_pages_fetched_total (Counter): Pages walked by the accumulator
//   - selection_records_collected_total (Counter): Records collected by the accumulator
//   - selection_invalid_inputs_total (Counter): Ignored invalid count inputs
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(catalog_cache_hits_total[5m])) /
//   (sum(rate(catalog_cache_hits_total[5m])) + sum(rate(catalog_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(catalog_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(catalog_request_duration_seconds_bucket[5m]))
//
//   # Average Pages per Accumulation
//   rate(selection_pages_fetched_total[5m]) / rate(selection_records_collected_total[5m])
