package datafile

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors updated by record readers.
// One Metrics value may be shared by any number of readers.
type Metrics struct {
	Records   *prometheus.CounterVec
	BytesRead prometheus.Counter
	Errors    *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datafile_records_total",
		Help: "Total records consumed, by kind",
	}, []string{"kind"})

	bytesRead := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "datafile_bytes_read_total",
		Help: "Total bytes read from sources",
	})

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datafile_errors_total",
		Help: "Total read errors, by type",
	}, []string{"type"})

	reg.MustRegister(records, bytesRead, errs)

	return &Metrics{
		Records:   records,
		BytesRead: bytesRead,
		Errors:    errs,
	}
}

func (m *Metrics) observeRead(n int) {
	if m == nil {
		return
	}
	m.BytesRead.Add(float64(n))
}

func (m *Metrics) observeRecord(rec Record) {
	if m == nil || rec.Kind() == KindEndOfInput {
		return
	}
	m.Records.WithLabelValues(rec.Kind().String()).Inc()
}

func (m *Metrics) observeError(kind string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(kind).Inc()
}
