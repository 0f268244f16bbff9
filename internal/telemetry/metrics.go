package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-run counters in a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	reg       *prometheus.Registry
	artifacts *prometheus.CounterVec
	stage     *prometheus.GaugeVec
	rows      prometheus.Gauge
	columns   *prometheus.GaugeVec
}

// NewMetrics registers the run collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edareport_artifacts_total",
			Help: "Artifacts handled by outcome.",
		}, []string{"artifact", "outcome"}),
		stage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "edareport_stage_duration_seconds",
			Help: "Wall time spent in each pipeline stage.",
		}, []string{"stage"}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "edareport_dataset_rows",
			Help: "Rows in the loaded dataset.",
		}),
		columns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "edareport_dataset_columns",
			Help: "Columns in the loaded dataset by kind.",
		}, []string{"kind"}),
	}
	m.reg.MustRegister(m.artifacts, m.stage, m.rows, m.columns)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Artifact counts one artifact outcome ("produced" or "skipped").
func (m *Metrics) Artifact(name, outcome string) {
	if m == nil {
		return
	}
	m.artifacts.WithLabelValues(name, outcome).Inc()
}

// Stage records how long a stage took.
func (m *Metrics) Stage(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.stage.WithLabelValues(name).Set(d.Seconds())
}

// Dataset records the table shape.
func (m *Metrics) Dataset(rows int, columnsByKind map[string]int) {
	if m == nil {
		return
	}
	m.rows.Set(float64(rows))
	for kind, n := range columnsByKind {
		m.columns.WithLabelValues(kind).Set(float64(n))
	}
}

// WriteTextfile writes the registry in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
