package puzzlebox

import "github.com/jyhuang/puzzlebox/core"

// Re-export commonly used types from core package for convenience.
// This allows embedders to import only the puzzlebox package for most
// use cases.

// Queue is the hand-off queue used between pollers and the game loop.
type Queue[T any] = core.Queue[T]

// Looper drives a polling loop on its own goroutine.
type Looper = core.Looper

// Logger is the structured logging contract.
type Logger = core.Logger

// Field is one structured logging key/value pair.
type Field = core.Field

// Metrics is the instrumentation contract.
type Metrics = core.Metrics

// NilMetrics discards every metric. The default on firmware builds.
type NilMetrics = core.NilMetrics

// Convenience constructors re-exported from core.
var (
	NewLooper        = core.NewLooper
	NewDefaultLogger = core.NewDefaultLogger
	NewNoOpLogger    = core.NewNoOpLogger
	F                = core.F
)

// NewQueue creates an empty hand-off queue.
func NewQueue[T any]() *Queue[T] {
	return core.NewQueue[T]()
}
