package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for phone record lifecycle events.
type Metrics struct {
	PhonesCreated prometheus.Counter
	PhonesUpdated prometheus.Counter
	PhonesDeleted prometheus.Counter
	FilterQueries *prometheus.CounterVec
}

// New creates and registers all phone inventory metrics.
func New() *Metrics {
	return &Metrics{
		PhonesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phone_inventory_phones_created_total",
			Help: "Total number of phone records created",
		}),
		PhonesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phone_inventory_phones_updated_total",
			Help: "Total number of phone records updated",
		}),
		PhonesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phone_inventory_phones_deleted_total",
			Help: "Total number of phone records deleted",
		}),
		FilterQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phone_inventory_filter_queries_total",
			Help: "Total number of filtered queries, labeled by field",
		}, []string{"field"}),
	}
}

func (m *Metrics) IncrementPhonesCreated() {
	m.PhonesCreated.Inc()
}

func (m *Metrics) IncrementPhonesUpdated() {
	m.PhonesUpdated.Inc()
}

func (m *Metrics) IncrementPhonesDeleted() {
	m.PhonesDeleted.Inc()
}

func (m *Metrics) IncrementFilterQueries(field string) {
	m.FilterQueries.WithLabelValues(field).Inc()
}
