package core

import "time"

// Metrics defines the interface for collecting runtime metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast: they are invoked from button
// poll goroutines and from the orchestrator loop.
type Metrics interface {
	// RecordButtonEdge records a debounced press or release edge.
	RecordButtonEdge(button string, pressed bool)

	// RecordRoundOutcome records how a round ended ("win" or "lose").
	RecordRoundOutcome(outcome string)

	// RecordTonePlay records a single buzzer tone.
	RecordTonePlay(frequency int, duration time.Duration)

	// RecordTransferDepth records the current depth of the hand-off queue.
	// Called on every phase transfer to track producer races.
	RecordTransferDepth(depth int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordButtonEdge is a no-op.
func (m *NilMetrics) RecordButtonEdge(button string, pressed bool) {}

// RecordRoundOutcome is a no-op.
func (m *NilMetrics) RecordRoundOutcome(outcome string) {}

// RecordTonePlay is a no-op.
func (m *NilMetrics) RecordTonePlay(frequency int, duration time.Duration) {}

// RecordTransferDepth is a no-op.
func (m *NilMetrics) RecordTransferDepth(depth int) {}
