package prometheus

import (
	"context"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// CountdownProvider provides the current minute:second snapshot.
type CountdownProvider interface {
	Remaining() (minute, second int)
}

// DepthProvider provides the current depth of a queue.
type DepthProvider interface {
	Size() int
}

// SnapshotPoller periodically exports countdown and queue snapshots
// into Prometheus gauges. The event-driven metrics only update on game
// activity; the poller keeps the steady-state gauges fresh between
// events.
type SnapshotPoller struct {
	interval time.Duration

	countdownsMu sync.RWMutex
	countdowns   map[string]CountdownProvider

	queuesMu sync.RWMutex
	queues   map[string]DepthProvider

	remainingSeconds *prom.GaugeVec
	queueDepth       *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	remaining := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "puzzlebox",
		Name:      "countdown_remaining_seconds",
		Help:      "Seconds left on the countdown.",
	}, []string{"countdown"})
	depth := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "puzzlebox",
		Name:      "queue_depth",
		Help:      "Current queue depth.",
	}, []string{"queue"})

	var err error
	if remaining, err = registerCollector(reg, remaining); err != nil {
		return nil, err
	}
	if depth, err = registerCollector(reg, depth); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:         interval,
		countdowns:       make(map[string]CountdownProvider),
		queues:           make(map[string]DepthProvider),
		remainingSeconds: remaining,
		queueDepth:       depth,
	}, nil
}

// RegisterCountdown adds a countdown to the polling set.
func (p *SnapshotPoller) RegisterCountdown(name string, c CountdownProvider) {
	p.countdownsMu.Lock()
	p.countdowns[name] = c
	p.countdownsMu.Unlock()
}

// RegisterQueue adds a queue to the polling set.
func (p *SnapshotPoller) RegisterQueue(name string, q DepthProvider) {
	p.queuesMu.Lock()
	p.queues[name] = q
	p.queuesMu.Unlock()
}

// Start begins polling. Calling Start on a running poller is a no-op.
func (p *SnapshotPoller) Start() {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	if p.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.run(ctx)
}

// Stop halts polling and waits for the poll loop to exit.
func (p *SnapshotPoller) Stop() {
	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	cancel()
	<-done
}

func (p *SnapshotPoller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *SnapshotPoller) poll() {
	p.countdownsMu.RLock()
	for name, c := range p.countdowns {
		minute, second := c.Remaining()
		p.remainingSeconds.WithLabelValues(name).Set(float64(minute*60 + second))
	}
	p.countdownsMu.RUnlock()

	p.queuesMu.RLock()
	for name, q := range p.queues {
		p.queueDepth.WithLabelValues(name).Set(float64(q.Size()))
	}
	p.queuesMu.RUnlock()
}
