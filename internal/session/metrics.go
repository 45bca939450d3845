package session

import "github.com/prometheus/client_golang/prometheus"

// NewActiveCollector returns a gauge reporting the number of live sessions.
func NewActiveCollector(store *Store) prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calculator_sessions_active",
		Help: "Number of live calculator sessions.",
	}, func() float64 {
		return float64(store.Len())
	})
}
