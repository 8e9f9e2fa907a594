package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what a session did with the lines it was given.
type Metrics struct {
	executed      atomic.Uint64
	execTotalNs   atomic.Int64
	execMaxNs     atomic.Int64
	undone        atomic.Uint64
	unknown       atomic.Uint64
	malformed     atomic.Uint64
	failed        atomic.Uint64
	emptyUndos    atomic.Uint64
	aliasExpanded atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordExecute records a successfully executed command.
func (m *Metrics) RecordExecute(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.executed.Add(1)
	m.execTotalNs.Add(ns)

	for {
		old := m.execMaxNs.Load()
		if ns <= old {
			break
		}
		if m.execMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordUndo records a successful undo.
func (m *Metrics) RecordUndo() {
	m.undone.Add(1)
}

// RecordUnknown records a line no grammar recognized.
func (m *Metrics) RecordUnknown() {
	m.unknown.Add(1)
}

// RecordMalformed records a recognized line whose arguments did not parse.
func (m *Metrics) RecordMalformed() {
	m.malformed.Add(1)
}

// RecordFailure records a command that parsed but failed to run.
func (m *Metrics) RecordFailure() {
	m.failed.Add(1)
}

// RecordEmptyUndo records an undo request with nothing to undo.
func (m *Metrics) RecordEmptyUndo() {
	m.emptyUndos.Add(1)
}

// RecordAlias records a line rewritten by an alias.
func (m *Metrics) RecordAlias() {
	m.aliasExpanded.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	executed := m.executed.Load()

	var avgExecNs int64
	if executed > 0 {
		avgExecNs = m.execTotalNs.Load() / int64(executed)
	}

	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		Executed:      executed,
		AvgExecNs:     avgExecNs,
		MaxExecNs:     m.execMaxNs.Load(),
		Undone:        m.undone.Load(),
		Unknown:       m.unknown.Load(),
		Malformed:     m.malformed.Load(),
		Failed:        m.failed.Load(),
		EmptyUndos:    m.emptyUndos.Load(),
		AliasExpanded: m.aliasExpanded.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.executed.Store(0)
	m.execTotalNs.Store(0)
	m.execMaxNs.Store(0)
	m.undone.Store(0)
	m.unknown.Store(0)
	m.malformed.Store(0)
	m.failed.Store(0)
	m.emptyUndos.Store(0)
	m.aliasExpanded.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	Executed      uint64
	AvgExecNs     int64
	MaxExecNs     int64
	Undone        uint64
	Unknown       uint64
	Malformed     uint64
	Failed        uint64
	EmptyUndos    uint64
	AliasExpanded uint64
}

// Rejected returns the number of lines that never reached execution.
func (s MetricsSnapshot) Rejected() uint64 {
	return s.Unknown + s.Malformed
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
