package index

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes synchronizer counters and the current index size.
type Metrics struct {
	passes    *prometheus.CounterVec
	documents prometheus.Gauge
}

// NewMetrics registers the synchronizer metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_sync_passes_total",
				Help: "Total number of index synchronization passes by result.",
			},
			[]string{"result"},
		),
		documents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_documents",
				Help: "Number of document records in the current index snapshot.",
			},
		),
	}

	if err := reg.Register(m.passes); err != nil {
		return nil, err
	}
	if err := reg.Register(m.documents); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) recordPass(success bool, indexSize int) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.passes.WithLabelValues(result).Inc()
	if success {
		m.documents.Set(float64(indexSize))
	}
}
