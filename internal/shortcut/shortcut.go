package shortcut

import (
	"strings"
	"time"

	"github.com/dshills/keychord/internal/key"
)

// Handler is the callback invoked when a shortcut matches.
// Sequence handlers receive a nil event.
type Handler func(ev *key.Event)

// Mode identifies how a shortcut is triggered.
type Mode uint8

const (
	// ModeChord fires on the key-down that completes the combination.
	ModeChord Mode = iota
	// ModeHold fires after the combination has been held continuously.
	ModeHold
	// ModeSequence fires when an ordered key list completes in time.
	ModeSequence
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeChord:
		return "chord"
	case ModeHold:
		return "hold"
	case ModeSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Shortcut is a registered binding.
type Shortcut struct {
	// ID uniquely identifies the registration.
	ID string

	// Keys are the canonicalized combination strings. For chord and hold
	// shortcuts each entry is an alternate trigger; for sequences the
	// entries are the ordered keys that must occur in order.
	Keys []string

	// Mode identifies the trigger style.
	Mode Mode

	// HoldDuration is the minimum continuous-hold time for ModeHold.
	HoldDuration time.Duration

	// Title and Description are display metadata, opaque to the engine.
	Title       string
	Description string

	// Handler is invoked on match.
	Handler Handler
}

// KeyString returns the keys joined for display, e.g. "ctrl+s" or "g,g".
func (s *Shortcut) KeyString() string {
	if s.Mode == ModeSequence {
		return strings.Join(s.Keys, ",")
	}
	return strings.Join(s.Keys, " | ")
}

// clone returns a copy safe to hand out in snapshots.
func (s *Shortcut) clone() Shortcut {
	c := *s
	c.Keys = make([]string, len(s.Keys))
	copy(c.Keys, s.Keys)
	return c
}
