// Package metric provides Prometheus metrics for endpoint authentication.
//
//   - prometheus.go: registry, auth counters and the HTTP handler
//   - collector.go: a collector reporting keyring cache size on scrape
//
// Metrics are exposed at the configured path (default /metrics).
package metric
