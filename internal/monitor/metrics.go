// ABOUTME: Prometheus metrics for the relay
// ABOUTME: Exposes relay counters through a dedicated registry
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pcmcast/pcmcast-go/internal/relay"
)

// Metrics registers relay counters with a Prometheus registry. Counter
// values come straight from the relay's own atomic counters at scrape
// time, so the hot path stays free of metrics calls.
type Metrics struct {
	registry *prometheus.Registry
}

// NewMetrics creates a registry wired to the given stats source.
func NewMetrics(stats func() relay.Stats) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "pcmcast_packets_received_total",
		Help: "Total number of UDP datagrams received",
	}, func() float64 { return float64(stats().Received) }))

	reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "pcmcast_packets_played_total",
		Help: "Total number of payloads written to the audio sink",
	}, func() float64 { return float64(stats().Played) }))

	reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "pcmcast_packets_empty_total",
		Help: "Total number of empty datagrams skipped",
	}, func() float64 { return float64(stats().Empty) }))

	reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "pcmcast_bytes_played_total",
		Help: "Total number of PCM bytes written to the audio sink",
	}, func() float64 { return float64(stats().BytesPlayed) }))

	return &Metrics{registry: reg}
}

// Registry returns the backing registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
