package game

import (
	"time"

	"github.com/jyhuang/puzzlebox/core"
)

// StampKind labels a timing record.
type StampKind int

const (
	// Press marks a pressed edge.
	Press StampKind = iota
	// Release marks a released edge.
	Release
)

// Stamp is one timestamped button edge, recorded into a per-iteration
// timing queue while a challenge measures a hold.
type Stamp struct {
	At   time.Time
	Kind StampKind
}

// stampRecorder binds one kind of edge to one timing queue. The
// challenges construct a fresh pair per iteration and drop them when the
// iteration ends, instead of capturing loop variables in ad hoc
// closures.
type stampRecorder struct {
	q    *core.Queue[Stamp]
	kind StampKind
}

func (r stampRecorder) record() {
	r.q.Put(Stamp{At: time.Now(), Kind: r.kind})
}

// RecordPress returns a pressed-edge recorder bound to q.
func RecordPress(q *core.Queue[Stamp]) func() {
	return stampRecorder{q: q, kind: Press}.record
}

// RecordRelease returns a released-edge recorder bound to q.
func RecordRelease(q *core.Queue[Stamp]) func() {
	return stampRecorder{q: q, kind: Release}.record
}

// HoldAbs is the hold duration as the code-pattern challenge computes
// it: the magnitude of release minus press.
func HoldAbs(press, release Stamp) time.Duration {
	d := release.At.Sub(press.At)
	if d < 0 {
		d = -d
	}
	return d
}

// HoldSigned is the hold duration as the pitch challenge computes it:
// the raw signed difference. A release recorded before its press yields
// a negative value that is never classified as long.
func HoldSigned(press, release Stamp) time.Duration {
	return release.At.Sub(press.At)
}
