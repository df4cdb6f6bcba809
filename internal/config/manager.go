package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/keychord/internal/engine"
	"github.com/dshills/keychord/internal/shortcut"
)

// Actions maps binding action names to shortcut handlers.
type Actions map[string]shortcut.Handler

// Manager applies a bindings file to an engine and tracks what it
// registered so it can revert on reload.
//
// Thread Safety:
// Manager is safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	engine  *engine.Engine
	path    string
	actions Actions

	// applied records the keys this manager registered, so a reload can
	// unregister exactly its own bindings.
	applied []appliedBinding
}

// appliedBinding remembers one registration owned by the manager.
type appliedBinding struct {
	keys     []string
	sequence bool
}

// NewManager creates a manager for a bindings file.
func NewManager(eng *engine.Engine, path string, actions Actions) *Manager {
	return &Manager{
		engine:  eng,
		path:    path,
		actions: actions,
	}
}

// Path returns the bindings file path.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the bindings file and registers its bindings.
// It returns the number of bindings registered. A missing file
// registers nothing and is not an error.
func (m *Manager) Load() (int, error) {
	f, err := Load(m.path)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if f == nil {
		return 0, nil
	}
	return m.applyLocked(f), nil
}

// Reload reverts the manager's previous registrations and applies the
// file's current contents. On a parse error the previous registrations
// are kept.
func (m *Manager) Reload() (int, error) {
	f, err := Load(m.path)
	if err != nil {
		return 0, fmt.Errorf("reload: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.revertLocked()
	if f == nil {
		return 0, nil
	}
	return m.applyLocked(f), nil
}

// applyLocked registers the file's bindings, skipping entries whose
// action has no handler and entries the registry rejects as conflicts.
// Caller must hold m.mu.
func (m *Manager) applyLocked(f *File) int {
	registered := 0

	for _, c := range f.Chords {
		handler, ok := m.actions[c.Action]
		if !ok {
			continue
		}
		var added bool
		if c.Hold > 0 {
			added = m.engine.RegisterHold(handler, c.Keys, c.Title, c.Description, time.Duration(c.Hold))
		} else {
			added = m.engine.RegisterChord(handler, c.Keys, c.Title, c.Description)
		}
		if added {
			m.applied = append(m.applied, appliedBinding{keys: c.Keys})
			registered++
		}
	}

	for _, s := range f.Sequences {
		handler, ok := m.actions[s.Action]
		if !ok {
			continue
		}
		if m.engine.RegisterSequence(handler, s.Keys, s.Title, s.Description) {
			m.applied = append(m.applied, appliedBinding{keys: s.Keys, sequence: true})
			registered++
		}
	}

	return registered
}

// revertLocked unregisters everything this manager applied.
// Caller must hold m.mu.
func (m *Manager) revertLocked() {
	for _, b := range m.applied {
		if b.sequence {
			m.engine.UnregisterSequence(b.keys)
		} else {
			m.engine.UnregisterChord(b.keys)
		}
	}
	m.applied = nil
}
