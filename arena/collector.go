package arena

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSource is anything that can produce an arena metrics snapshot.
// Both *Arena and *SafeArena implement it; only *SafeArena may be scraped
// while other goroutines use the arena.
type MetricsSource interface {
	Metrics() ArenaMetrics
}

// Collector exports arena metrics to Prometheus.
type Collector struct {
	src MetricsSource

	inUse       *prometheus.Desc
	payload     *prometheus.Desc
	capacity    *prometheus.Desc
	chunks      *prometheus.Desc
	allocations *prometheus.Desc
	utilization *prometheus.Desc
}

const arenaMetricsPrefix = "memkit_arena_"

// NewCollector returns a collector reading snapshots from src. The name is
// attached to every series as the "arena" label.
func NewCollector(name string, src MetricsSource) *Collector {
	constLabels := map[string]string{"arena": name}

	return &Collector{
		src: src,

		inUse: prometheus.NewDesc(
			arenaMetricsPrefix+"in_use_bytes",
			"Bytes bumped from arena chunks, alignment padding included.",
			nil, constLabels,
		),
		payload: prometheus.NewDesc(
			arenaMetricsPrefix+"payload_bytes",
			"Bytes held by live arena allocations.",
			nil, constLabels,
		),
		capacity: prometheus.NewDesc(
			arenaMetricsPrefix+"capacity_bytes",
			"Total size of all arena chunks.",
			nil, constLabels,
		),
		chunks: prometheus.NewDesc(
			arenaMetricsPrefix+"chunks",
			"The number of chunks owned by the arena.",
			nil, constLabels,
		),
		allocations: prometheus.NewDesc(
			arenaMetricsPrefix+"allocations",
			"The number of live allocations.",
			nil, constLabels,
		),
		utilization: prometheus.NewDesc(
			arenaMetricsPrefix+"utilization_ratio",
			"Ratio of bytes in use to capacity.",
			nil, constLabels,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUse
	ch <- c.payload
	ch <- c.capacity
	ch <- c.chunks
	ch <- c.allocations
	ch <- c.utilization
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(m.SizeInUse))
	ch <- prometheus.MustNewConstMetric(c.payload, prometheus.GaugeValue, float64(m.PayloadBytes))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity))
	ch <- prometheus.MustNewConstMetric(c.chunks, prometheus.GaugeValue, float64(m.NumChunks))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.GaugeValue, float64(m.Allocations))
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization)
}
