package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names and labels, following the MetricName* constant block style
// of controlplane/monitor/internal/worker/metrics.go.
const (
	MetricNameQueueDepth = "activity_scheduler_queue_depth"
	MetricNameFiresTotal = "activity_scheduler_fires_total"

	metricLabelQueue = "queue"
)

type metricsSet struct {
	queueDepth *prometheus.GaugeVec
	firesTotal prometheus.Counter
}

// newMetrics registers the scheduler's metrics against reg. A nil reg
// gets its own private prometheus.Registry, so unit tests constructing
// many Schedulers in one process never collide on duplicate
// registration; cmd/activity-scheduler passes prometheus.DefaultRegisterer
// so the metrics are actually served over /metrics.
func newMetrics(reg prometheus.Registerer) *metricsSet {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &metricsSet{
		queueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: MetricNameQueueDepth,
			Help: "Number of schedules currently pending, by queue.",
		}, []string{metricLabelQueue}),
		firesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: MetricNameFiresTotal,
			Help: "Total number of schedules drained (fired) by the scheduler.",
		}),
	}
}
