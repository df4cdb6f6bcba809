// Package engine implements the keyboard-shortcut dispatch core.
//
// The engine consumes raw key-down/key-up events from a host and invokes
// registered handlers for three kinds of shortcuts:
//
//   - Chords: fire on the key-down completing the combination
//   - Holds: fire once the combination has been held past a threshold
//   - Sequences: fire when an ordered key list completes within a
//     rolling inactivity window
//
// # Dispatch Order
//
// Within a single key-down, matching is strictly ordered: chord match
// first, then hold-timer re-arm, then sequence match. One physical press
// can trigger at most one chord handler and independently advance the
// sequence buffer; hold handlers only ever fire from later ticks.
//
// # Concurrency
//
// All entry points and timer callbacks serialize on one mutex, so the
// engine's mutable state (held keys, timers, sequence buffer) is never
// touched concurrently. Handlers run synchronously under that lock and
// must return quickly; they must not re-enter OnKeyDown or OnKeyUp.
// Registration calls are safe from handlers and from other goroutines.
//
// # Usage
//
//	eng := engine.New(engine.DefaultConfig())
//	defer eng.Close()
//
//	eng.RegisterChord(save, []string{"ctrl+s"}, "Save", "Write the buffer")
//
//	// Wire the host's key events:
//	eng.OnKeyDown(ev)
//	eng.OnKeyUp(ev)
package engine
