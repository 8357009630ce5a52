// Package prometheus exports the game's metrics to Prometheus. The
// host-side example serves them; firmware builds use core.NilMetrics
// instead.
package prometheus

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/jyhuang/puzzlebox/core"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	ToneDurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	buttonEdgeTotal     *prom.CounterVec
	roundOutcomeTotal   *prom.CounterVec
	toneDurationSeconds *prom.HistogramVec
	transferDepth       prom.Gauge
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "puzzlebox"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.ToneDurationBuckets
	if len(buckets) == 0 {
		buckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	}

	edgeVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "button_edge_total",
		Help:      "Total number of button edges by button and edge kind.",
	}, []string{"button", "edge"})
	outcomeVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "round_outcome_total",
		Help:      "Total number of resolved rounds by outcome.",
	}, []string{"outcome"})
	toneVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "tone_duration_seconds",
		Help:      "Tone playback duration in seconds by frequency band.",
		Buckets:   buckets,
	}, []string{"band"})
	depthGauge := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "transfer_depth",
		Help:      "Current hand-off queue depth.",
	})

	var err error
	if edgeVec, err = registerCollector(reg, edgeVec); err != nil {
		return nil, err
	}
	if outcomeVec, err = registerCollector(reg, outcomeVec); err != nil {
		return nil, err
	}
	if toneVec, err = registerCollector(reg, toneVec); err != nil {
		return nil, err
	}
	if depthGauge, err = registerCollector(reg, depthGauge); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		buttonEdgeTotal:     edgeVec,
		roundOutcomeTotal:   outcomeVec,
		toneDurationSeconds: toneVec,
		transferDepth:       depthGauge,
	}, nil
}

// RecordButtonEdge records one debounced button edge.
func (m *MetricsExporter) RecordButtonEdge(button string, pressed bool) {
	if m == nil {
		return
	}
	edge := "released"
	if pressed {
		edge = "pressed"
	}
	m.buttonEdgeTotal.WithLabelValues(normalizeLabel(button, "unknown"), edge).Inc()
}

// RecordRoundOutcome records a resolved round.
func (m *MetricsExporter) RecordRoundOutcome(outcome string) {
	if m == nil {
		return
	}
	m.roundOutcomeTotal.WithLabelValues(normalizeLabel(outcome, "unknown")).Inc()
}

// RecordTonePlay records one tone playback.
func (m *MetricsExporter) RecordTonePlay(frequency int, duration time.Duration) {
	if m == nil {
		return
	}
	m.toneDurationSeconds.WithLabelValues(bandLabel(frequency)).Observe(duration.Seconds())
}

// RecordTransferDepth records the hand-off queue depth after a put.
func (m *MetricsExporter) RecordTransferDepth(depth int) {
	if m == nil {
		return
	}
	m.transferDepth.Set(float64(depth))
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// bandLabel folds the fixed tone vocabulary into a handful of label
// values so the sweep melodies do not explode cardinality.
func bandLabel(frequency int) string {
	switch {
	case frequency <= 0:
		return "rest"
	case frequency < 400:
		return "low"
	case frequency < 700:
		return "mid"
	default:
		return "high"
	}
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
