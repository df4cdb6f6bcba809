package engine

import (
	"github.com/dshills/keychord/internal/key"
	"github.com/dshills/keychord/internal/shortcut"
)

// Hook allows interception and observation of key dispatch.
type Hook interface {
	// PreKeyDown is called for each accepted key-down before matching.
	// Return true to consume the event (no matching, no state change).
	PreKeyDown(ev *key.Event) bool

	// PostDispatch is called after a shortcut handler has run.
	// ev is nil for sequence shortcuts.
	PostDispatch(s *shortcut.Shortcut, ev *key.Event)
}

// HookFuncs adapts plain functions to the Hook interface.
// Nil fields are no-ops.
type HookFuncs struct {
	PreKeyDownFunc   func(ev *key.Event) bool
	PostDispatchFunc func(s *shortcut.Shortcut, ev *key.Event)
}

// PreKeyDown implements Hook.
func (h HookFuncs) PreKeyDown(ev *key.Event) bool {
	if h.PreKeyDownFunc == nil {
		return false
	}
	return h.PreKeyDownFunc(ev)
}

// PostDispatch implements Hook.
func (h HookFuncs) PostDispatch(s *shortcut.Shortcut, ev *key.Event) {
	if h.PostDispatchFunc != nil {
		h.PostDispatchFunc(s, ev)
	}
}
