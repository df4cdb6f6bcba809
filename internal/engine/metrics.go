package engine

import (
	"sync/atomic"
	"time"
)

// Metrics tracks dispatch activity.
type Metrics struct {
	keyDowns          atomic.Uint64
	keyUps            atomic.Uint64
	ignoredTargets    atomic.Uint64
	suppressedRepeats atomic.Uint64
	chordFires        atomic.Uint64
	holdFires         atomic.Uint64
	sequenceFires     atomic.Uint64
	sequenceTimeouts  atomic.Uint64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

func (m *Metrics) recordKeyDown() {
	if m.enabled.Load() {
		m.keyDowns.Add(1)
	}
}

func (m *Metrics) recordKeyUp() {
	if m.enabled.Load() {
		m.keyUps.Add(1)
	}
}

func (m *Metrics) recordIgnoredTarget() {
	if m.enabled.Load() {
		m.ignoredTargets.Add(1)
	}
}

func (m *Metrics) recordSuppressedRepeat() {
	if m.enabled.Load() {
		m.suppressedRepeats.Add(1)
	}
}

func (m *Metrics) recordChordFire() {
	if m.enabled.Load() {
		m.chordFires.Add(1)
	}
}

func (m *Metrics) recordHoldFire() {
	if m.enabled.Load() {
		m.holdFires.Add(1)
	}
}

func (m *Metrics) recordSequenceFire() {
	if m.enabled.Load() {
		m.sequenceFires.Add(1)
	}
}

func (m *Metrics) recordSequenceTimeout() {
	if m.enabled.Load() {
		m.sequenceTimeouts.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	KeyDowns          uint64
	KeyUps            uint64
	IgnoredTargets    uint64
	SuppressedRepeats uint64
	ChordFires        uint64
	HoldFires         uint64
	SequenceFires     uint64
	SequenceTimeouts  uint64
	Uptime            time.Duration
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		KeyDowns:          m.keyDowns.Load(),
		KeyUps:            m.keyUps.Load(),
		IgnoredTargets:    m.ignoredTargets.Load(),
		SuppressedRepeats: m.suppressedRepeats.Load(),
		ChordFires:        m.chordFires.Load(),
		HoldFires:         m.holdFires.Load(),
		SequenceFires:     m.sequenceFires.Load(),
		SequenceTimeouts:  m.sequenceTimeouts.Load(),
		Uptime:            time.Since(m.startTime),
	}
}
