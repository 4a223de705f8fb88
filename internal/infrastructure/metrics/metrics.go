package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "useraccount"

// NewCounter registers the general counter on the default registry; the
// "result" label names what happened (user_created_total, http_4xx, ...).
func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "general_counters",
			Help:      "Operation and request outcomes by result.",
		},
		[]string{"result"})
}
