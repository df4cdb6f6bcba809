package key

import (
	"strings"
	"time"
)

// Event represents a single key-down or key-up delivered by the host.
type Event struct {
	// Key is the primary key identifier as reported by the host.
	Key string

	// Ctrl, Alt and Meta report which modifier keys were held.
	Ctrl bool
	Alt  bool
	Meta bool

	// Target is the tag name of the element the event originated on.
	// Empty when the host has no element focus concept.
	Target string

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// prevented records whether a handler suppressed the default action.
	prevented bool
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(keyName string, ctrl, alt, meta bool) *Event {
	return &Event{
		Key:       keyName,
		Ctrl:      ctrl,
		Alt:       alt,
		Meta:      meta,
		Timestamp: time.Now(),
	}
}

// WithTarget returns the event with its target tag name set.
func (e *Event) WithTarget(tag string) *Event {
	e.Target = tag
	return e
}

// PreventDefault marks the event so the host skips its default action.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Tokens returns the raw key tokens this event presses or releases,
// in event order: held modifiers first, then the lower-cased primary key.
func (e *Event) Tokens() []string {
	tokens := make([]string, 0, 4)
	if e.Ctrl {
		tokens = append(tokens, "ctrl")
	}
	if e.Alt {
		tokens = append(tokens, "alt")
	}
	if e.Meta {
		tokens = append(tokens, "meta")
	}
	if e.Key != "" {
		tokens = append(tokens, strings.ToLower(e.Key))
	}
	return tokens
}

// Combo returns the canonical "+"-joined combination for this single event.
// Example: Ctrl held with key "K" yields "ctrl+k".
func (e *Event) Combo() string {
	return strings.Join(e.Tokens(), "+")
}

// String returns a human-readable representation, e.g. "ctrl+k".
func (e *Event) String() string {
	return e.Combo()
}

// Clone returns a copy of the event with the prevented flag cleared.
func (e *Event) Clone() *Event {
	clone := *e
	clone.prevented = false
	return &clone
}
