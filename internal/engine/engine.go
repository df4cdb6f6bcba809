package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/dshills/keychord/internal/key"
	"github.com/dshills/keychord/internal/shortcut"
)

// defaultIgnoreTarget is always part of the ignore set.
const defaultIgnoreTarget = "input"

// Engine is the keyboard-shortcut dispatch core. It owns all mutable
// dispatch state and serializes every entry point on one mutex.
type Engine struct {
	mu sync.Mutex

	config   Config
	registry *shortcut.Registry
	ignore   map[string]struct{}

	// held is the set of raw key tokens currently physically down.
	held map[string]struct{}

	// Hold timer state. holdKeys and holdCombo come from the most recent
	// key-down; holdGen invalidates ticks from cancelled timers.
	holdStop    chan struct{}
	holdGen     uint64
	holdElapsed time.Duration
	holdKeys    []string
	holdCombo   string
	holdEvent   *key.Event

	// Sequence state. seqGen invalidates timeouts from cancelled timers.
	seqBuffer []string
	seqTimer  *time.Timer
	seqGen    uint64

	hooks   []Hook
	metrics *Metrics

	closed bool
}

// New creates an engine with the given configuration.
func New(config Config) *Engine {
	config = config.withDefaults()

	ignore := map[string]struct{}{defaultIgnoreTarget: {}}
	for _, tag := range config.IgnoreTargets {
		ignore[strings.ToLower(tag)] = struct{}{}
	}

	return &Engine{
		config:   config,
		registry: shortcut.NewRegistry(),
		ignore:   ignore,
		held:     make(map[string]struct{}),
		metrics:  NewMetrics(),
	}
}

// Registry returns the underlying shortcut registry.
func (e *Engine) Registry() *shortcut.Registry {
	return e.registry
}

// Metrics returns the engine's metrics tracker.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// RegisterChord registers an instantaneous shortcut.
// It reports whether the registration was accepted.
func (e *Engine) RegisterChord(handler shortcut.Handler, keys []string, title, description string) bool {
	return e.registry.RegisterChord(handler, keys, title, description)
}

// RegisterHold registers a shortcut that fires after the combination has
// been held continuously for holdDuration.
func (e *Engine) RegisterHold(handler shortcut.Handler, keys []string, title, description string, holdDuration time.Duration) bool {
	return e.registry.RegisterHold(handler, keys, title, description, holdDuration)
}

// RegisterSequence registers an ordered key sequence shortcut.
func (e *Engine) RegisterSequence(handler shortcut.Handler, orderedKeys []string, title, description string) bool {
	return e.registry.RegisterSequence(handler, orderedKeys, title, description)
}

// UnregisterChord removes chord and hold routing for the given combinations.
func (e *Engine) UnregisterChord(keys []string) {
	e.registry.UnregisterChord(keys)
}

// UnregisterSequence removes sequence routing for the given ordered keys.
func (e *Engine) UnregisterSequence(orderedKeys []string) {
	e.registry.UnregisterSequence(orderedKeys)
}

// Snapshot returns the registered shortcuts in registration order.
func (e *Engine) Snapshot() []shortcut.Shortcut {
	return e.registry.Snapshot()
}

// OnKeyDown processes a key-down event from the host.
func (e *Engine) OnKeyDown(ev *key.Event) {
	if ev == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.metrics.recordKeyDown()

	if _, ignored := e.ignore[strings.ToLower(ev.Target)]; ignored {
		e.metrics.recordIgnoredTarget()
		return
	}

	// Auto-repeat suppression: the primary key is still physically down.
	if _, down := e.held[strings.ToLower(ev.Key)]; down {
		e.metrics.recordSuppressedRepeat()
		return
	}

	for _, h := range e.hooks {
		if h.PreKeyDown(ev) {
			return
		}
	}

	tokens := ev.Tokens()
	combo := ev.Combo()

	// 1. Instantaneous chord match.
	if s, ok := e.registry.Chord(combo); ok {
		ev.PreventDefault()
		e.metrics.recordChordFire()
		e.invokeLocked(s, ev)
	}

	// 2. Track the newly pressed keys.
	for _, tok := range tokens {
		e.held[tok] = struct{}{}
	}

	// 3. Re-arm the hold timer for this press.
	e.restartHoldLocked(tokens, combo, ev)

	// 4. Advance the sequence buffer.
	e.seqBuffer = append(e.seqBuffer, tokens...)
	e.stopSequenceTimerLocked()

	if s, ok := e.registry.Sequence(strings.Join(e.seqBuffer, ",")); ok {
		e.metrics.recordSequenceFire()
		e.invokeLocked(s, nil)
	}

	e.startSequenceTimerLocked()
}

// OnKeyUp processes a key-up event from the host.
func (e *Engine) OnKeyUp(ev *key.Event) {
	if ev == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.metrics.recordKeyUp()

	for _, tok := range ev.Tokens() {
		delete(e.held, tok)
	}

	// Any release fully resets the hold timer, even when other keys
	// remain down.
	e.stopHoldLocked()
}

// AddHook appends a hook to the dispatch pipeline.
func (e *Engine) AddHook(h Hook) {
	if h == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = append(e.hooks, h)
}

// Held reports whether a raw key token is currently down.
func (e *Engine) Held(token string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.held[strings.ToLower(token)]
	return ok
}

// Close stops all timers and makes further events no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.stopHoldLocked()
	e.stopSequenceTimerLocked()
	e.seqBuffer = nil
	e.held = make(map[string]struct{})
}

// invokeLocked runs a shortcut handler and the post-dispatch hooks.
// Caller must hold e.mu.
func (e *Engine) invokeLocked(s *shortcut.Shortcut, ev *key.Event) {
	if s.Handler != nil {
		s.Handler(ev)
	}
	for _, h := range e.hooks {
		h.PostDispatch(s, ev)
	}
}

// restartHoldLocked cancels any running hold timer and starts a fresh one
// for the keys pressed by the current event. Caller must hold e.mu.
func (e *Engine) restartHoldLocked(tokens []string, combo string, ev *key.Event) {
	e.stopHoldLocked()

	e.holdElapsed = 0
	e.holdKeys = tokens
	e.holdCombo = combo
	e.holdEvent = ev

	e.holdGen++
	gen := e.holdGen
	stop := make(chan struct{})
	ticker := time.NewTicker(e.config.HoldTick)
	e.holdStop = stop

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.holdTick(gen)
			}
		}
	}()
}

// stopHoldLocked stops the hold timer and resets its elapsed state.
// Caller must hold e.mu.
func (e *Engine) stopHoldLocked() {
	if e.holdStop != nil {
		close(e.holdStop)
		e.holdStop = nil
	}
	e.holdGen++ // invalidate ticks already waiting on the lock
	e.holdElapsed = 0
	e.holdKeys = nil
	e.holdCombo = ""
	e.holdEvent = nil
}

// holdTick advances the elapsed counter and fires hold handlers whose
// threshold has been crossed. The duration is looked up per pressed key
// token while the handler is routed by the full combo string.
func (e *Engine) holdTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.holdGen {
		return
	}

	e.holdElapsed += e.config.HoldTick
	for _, tok := range e.holdKeys {
		duration, ok := e.registry.HoldDuration(tok)
		if !ok || e.holdElapsed < duration {
			continue
		}
		if s, ok := e.registry.Hold(e.holdCombo); ok {
			e.metrics.recordHoldFire()
			e.invokeLocked(s, e.holdEvent)
		}
		// The timer keeps running; the counter restarts from zero.
		e.holdElapsed = 0
	}
}

// startSequenceTimerLocked arms the inactivity timeout that clears the
// sequence buffer. Caller must hold e.mu.
func (e *Engine) startSequenceTimerLocked() {
	e.seqGen++
	gen := e.seqGen
	e.seqTimer = time.AfterFunc(e.config.SequenceTimeout, func() {
		e.sequenceTimeout(gen)
	})
}

// stopSequenceTimerLocked cancels any pending buffer reset.
// Caller must hold e.mu.
func (e *Engine) stopSequenceTimerLocked() {
	if e.seqTimer != nil {
		e.seqTimer.Stop()
		e.seqTimer = nil
	}
	e.seqGen++ // invalidate timeouts already waiting on the lock
}

// sequenceTimeout clears the sequence buffer after inactivity.
func (e *Engine) sequenceTimeout(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.seqGen {
		return
	}
	e.seqBuffer = e.seqBuffer[:0]
	e.seqTimer = nil
	e.metrics.recordSequenceTimeout()
}

// PendingSequence returns the current sequence buffer joined with commas.
func (e *Engine) PendingSequence() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strings.Join(e.seqBuffer, ",")
}
