package web

import (
	"fmt"
	"subuk/numango/numa"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Analyses   *prometheus.CounterVec
	Violations *prometheus.CounterVec
	Nodes      *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "numango",
				Subsystem: "analysis",
				Name:      "total",
				Help:      "Total number of analysed documents by source and verdict",
			},
			[]string{"source", "verdict"},
		),
		Violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "numango",
				Subsystem: "analysis",
				Name:      "violations_total",
				Help:      "Total number of violated balance conditions",
			},
			[]string{"source", "condition"},
		),
		Nodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "numango",
				Subsystem: "analysis",
				Name:      "nodes",
				Help:      "Number of NUMA nodes per analysed document",
				Buckets:   []float64{1, 2, 4, 8, 16, 32},
			},
			[]string{"source"},
		),
	}
	if registerer != nil {
		registerer.MustRegister(m.Analyses, m.Violations, m.Nodes)
	}
	return m
}

func (m *Metrics) Observe(source string, analysis *numa.Analysis) {
	verdict := "failed"
	if !analysis.Failed() {
		verdict = analysis.Classification.Verdict.Short()
	}
	m.Analyses.WithLabelValues(source, verdict).Inc()
	m.Nodes.WithLabelValues(source).Observe(float64(len(analysis.Topology.CpusPerNode)))
	for _, condition := range analysis.Classification.Conditions {
		if condition.Holds {
			continue
		}
		m.Violations.WithLabelValues(source, fmt.Sprintf("%d", condition.Number)).Inc()
	}
}
