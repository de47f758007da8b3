package dispatcher

import (
	"sync"
	"time"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	counts        map[OutcomeKind]uint64
	panics        uint64
	totalDuration time.Duration
	maxDuration   time.Duration
	lastDispatch  time.Time
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	Dispatches    uint64
	Commands      uint64
	Ignored       uint64
	Errors        uint64
	Panics        uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{counts: make(map[OutcomeKind]uint64)}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(kind OutcomeKind, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[kind]++
	m.totalDuration += duration
	if duration > m.maxDuration {
		m.maxDuration = duration
	}
	m.lastDispatch = time.Now()
}

// RecordPanic records a recovered callback panic.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

// Snapshot returns the current statistics.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		Commands:      m.counts[OutcomeCommand],
		Ignored:       m.counts[OutcomeIgnored],
		Errors:        m.counts[OutcomeError],
		Panics:        m.panics,
		TotalDuration: m.totalDuration,
		MaxDuration:   m.maxDuration,
		LastDispatch:  m.lastDispatch,
	}
	s.Dispatches = s.Commands + s.Ignored + s.Errors
	return s
}
