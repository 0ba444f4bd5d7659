package event

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

type topicMetrics struct {
	published     prometheus.Counter
	unmatched     prometheus.Counter
	deliveries    *prometheus.CounterVec
	subscriptions prometheus.Gauge
}

// newTopicMetrics creates the adapter metrics. They are only registered when
// the config carries a registerer.
func newTopicMetrics(config topicBusConfig) *topicMetrics {
	factory := promauto.With(config.registerer)

	return &topicMetrics{
		published: factory.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName(config.namespace, config.subsystem, "published_total"),
			Help: "Count of topics published.",
		}),
		unmatched: factory.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName(config.namespace, config.subsystem, "unmatched_total"),
			Help: "Count of published topics no subscription matched.",
		}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prometheus.BuildFQName(config.namespace, config.subsystem, "deliveries_total"),
			Help: "Count of payloads sent to matching pattern channels by result.",
		}, []string{"result"}),
		subscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Name: prometheus.BuildFQName(config.namespace, config.subsystem, "subscriptions"),
			Help: "Number of pattern registrations currently held.",
		}),
	}
}
