/*
Package prom supplies a pipeline.Metrics implementation backed by
prometheus/client_golang, following the counter/promauto pattern the Packt
prom_http example used for a single HTTP counter. The core pipeline package
only depends on the pipeline.Metrics interface; this package is the
concrete collaborator an operator wires in when they want /metrics served.
*/
package prom

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tjs392/otters/pipeline"
)

// Collector is a pipeline.Metrics backed by two vectors, labeled by stage
// index: a monotonic batch counter and a blocked-send counter. Register it
// once per process; every Pipeline built against it shares the same
// collectors.
type Collector struct {
	sent    *prometheus.CounterVec
	blocked *prometheus.CounterVec
}

// New registers otters_batches_sent_total and otters_batches_blocked_total
// with the default registerer and returns a Collector ready to pass to
// pipeline.Builder.WithMetrics.
func New() *Collector {
	return &Collector{
		sent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "otters_batches_sent_total",
			Help: "Total number of batches a stage delivered to its output channel.",
		}, []string{"stage"}),
		blocked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "otters_batches_blocked_total",
			Help: "Total number of sends a stage blocked on because its output channel was full.",
		}, []string{"stage"}),
	}
}

// BatchSent implements pipeline.Metrics.
func (c *Collector) BatchSent(stageIndex int) {
	c.sent.WithLabelValues(stageLabel(stageIndex)).Inc()
}

// BatchBlocked implements pipeline.Metrics.
func (c *Collector) BatchBlocked(stageIndex int) {
	c.blocked.WithLabelValues(stageLabel(stageIndex)).Inc()
}

// SentCounter exposes the otters_batches_sent_total counter for the given
// stage, for tests asserting on collected values via
// prometheus/client_golang/prometheus/testutil.
func (c *Collector) SentCounter(stageIndex int) prometheus.Counter {
	return c.sent.WithLabelValues(stageLabel(stageIndex))
}

// BlockedCounter exposes the otters_batches_blocked_total counter for the
// given stage, for tests.
func (c *Collector) BlockedCounter(stageIndex int) prometheus.Counter {
	return c.blocked.WithLabelValues(stageLabel(stageIndex))
}

func stageLabel(stageIndex int) string {
	switch stageIndex {
	case -1:
		return "edge"
	default:
		return strconv.Itoa(stageIndex)
	}
}

var _ pipeline.Metrics = (*Collector)(nil)
