package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheSizer reports the number of cached entries.
type CacheSizer interface {
	CacheSize() int
}

// KeyringCollector reports the keyring cache size at scrape time.
type KeyringCollector struct {
	keys CacheSizer
	desc *prometheus.Desc
}

// NewKeyringCollector creates a collector for keys.
func NewKeyringCollector(keys CacheSizer) *KeyringCollector {
	return &KeyringCollector{
		keys: keys,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "keyring", "cached_keys"),
			"Number of identities with a cached derived key",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *KeyringCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *KeyringCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.keys.CacheSize()))
}
