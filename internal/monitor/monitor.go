// Package monitor publishes cache stats snapshots to the monitoring surfaces:
// Prometheus gauges and the websocket stats stream.
package monitor

import (
	"encoding/json"
	"log"

	"clinic-perf-cache/internal/cache"
	"clinic-perf-cache/internal/metrics"
	"clinic-perf-cache/internal/realtime"
)

// Publisher fans janitor events out to metrics and connected viewers.
type Publisher struct {
	metrics *metrics.Metrics
	hub     *realtime.Hub
}

// NewPublisher wires a publisher. Either sink may be nil.
func NewPublisher(m *metrics.Metrics, hub *realtime.Hub) *Publisher {
	return &Publisher{metrics: m, hub: hub}
}

// Event is the frame sent to websocket viewers.
type Event struct {
	Type  string      `json:"type"`
	Stats cache.Stats `json:"stats"`
}

// PublishStats is a cache.JanitorConfig.OnSnapshot hook.
func (p *Publisher) PublishStats(st cache.Stats) {
	if p.metrics != nil {
		p.metrics.ObserveStats(st)
	}
	if p.hub == nil {
		return
	}
	b, err := json.Marshal(Event{Type: "cache_stats", Stats: st})
	if err != nil {
		log.Printf("monitor: encode stats: %v", err)
		return
	}
	p.hub.Broadcast(b)
}

// PublishCleanup is a cache.JanitorConfig.OnCleanup hook.
func (p *Publisher) PublishCleanup(removed int) {
	if p.metrics != nil {
		p.metrics.ObserveCleanup(removed)
	}
	if removed > 0 {
		log.Printf("cache cleanup removed %d expired entries", removed)
	}
}
