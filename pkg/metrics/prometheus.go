package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Update results recorded in UpdatesTotal
const (
	ResultAdded     = "added"
	ResultDuplicate = "duplicate"
	ResultRemoved   = "removed"
	ResultUnknown   = "unknown"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	UpdatesTotal          *prometheus.CounterVec
	NotificationsSent     prometheus.Counter
	NotificationErrors    prometheus.Counter
	ActiveFlights         prometheus.Gauge
	AttachedObservers     prometheus.Gauge
	MonitorRenders        *prometheus.CounterVec
	JournalAppendDuration prometheus.Histogram
	ErrorsCount           *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered with reg.
// A nil reg registers with the default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		UpdatesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Baggage updates received by the handler, by result",
		}, []string{"result"}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of notifications delivered to observers",
		}),
		NotificationErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_errors_total",
			Help:      "The total number of notifications an observer rejected",
		}),
		ActiveFlights: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_flights",
			Help:      "Flights that currently have a carousel assigned",
		}),
		AttachedObservers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "attached_observers",
			Help:      "Observers currently subscribed to the handler",
		}),
		MonitorRenders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monitor_renders_total",
			Help:      "The total number of times a monitor rendered its view",
		}, []string{"monitor"}),
		JournalAppendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "journal_append_seconds",
			Help:      "Time taken to append an event to the journal",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
