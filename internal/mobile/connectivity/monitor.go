// Package connectivity reports network reachability to the mobile client.
package connectivity

import (
	"context"
	"sync"
	"time"
)

// Monitor exposes a point-in-time reachability snapshot and notifies
// listeners on transitions. Callers always re-read IsConnected at the
// moment of use rather than trusting a previously rendered indicator.
type Monitor interface {
	IsConnected() bool
	OnChange(listener func(connected bool))
}

// ProbeMonitor derives reachability from a periodic health probe
// against the configured server.
type ProbeMonitor struct {
	probe    func(ctx context.Context) error
	interval time.Duration

	mu        sync.Mutex
	connected bool
	listeners []func(bool)
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewProbeMonitor(probe func(ctx context.Context) error, interval time.Duration) *ProbeMonitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &ProbeMonitor{
		probe:    probe,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start performs an immediate probe and then keeps probing in the
// background until Stop is called.
func (m *ProbeMonitor) Start(ctx context.Context) {
	m.probeOnce(ctx)
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.probeOnce(ctx)
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *ProbeMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *ProbeMonitor) probeOnce(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	m.setConnected(m.probe(probeCtx) == nil)
}

func (m *ProbeMonitor) setConnected(connected bool) {
	m.mu.Lock()
	changed := m.connected != connected
	m.connected = connected
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if !changed {
		return
	}
	for _, l := range listeners {
		l(connected)
	}
}

func (m *ProbeMonitor) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *ProbeMonitor) OnChange(listener func(bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}
