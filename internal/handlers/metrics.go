package handlers

import (
	"net/http"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters served on /metrics. Each Handler has its own
// registry.
type Metrics struct {
	registry      *prometheus.Registry
	runsEvaluated prometheus.Counter
	records       *prometheus.CounterVec
	rowLookups    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "entryeval_runs_evaluated_total",
			Help: "Total number of evaluation runs executed by the server",
		}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entryeval_records_total",
			Help: "Entered records evaluated, by outcome and match method",
		}, []string{"outcome", "method"}),
		rowLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entryeval_row_lookups_total",
			Help: "Row lookups served, by result",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.runsEvaluated,
		m.records,
		m.rowLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRun(run *evaluator.Run) {
	m.runsEvaluated.Inc()
	for method, n := range run.Stats.ByMethod {
		m.records.WithLabelValues("matched", string(method)).Add(float64(n))
	}
	if run.Stats.Unmatched > 0 {
		m.records.WithLabelValues("unmatched", "").Add(float64(run.Stats.Unmatched))
	}
}

func (m *Metrics) observeLookup(result string) {
	m.rowLookups.WithLabelValues(result).Inc()
}
