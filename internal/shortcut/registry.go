package shortcut

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keychord/internal/key"
)

// Registry stores registered shortcuts and provides combination lookup.
//
// Thread Safety:
// Registry is safe for concurrent use. All public methods acquire
// appropriate locks before accessing internal state.
type Registry struct {
	mu sync.RWMutex

	// chords routes instantaneous combinations.
	chords map[string]*Shortcut

	// holds routes duration-gated combinations.
	holds map[string]*Shortcut

	// sequences routes comma-joined ordered key lists.
	sequences map[string]*Shortcut

	// shortcuts is the public list in registration order.
	shortcuts []*Shortcut
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		chords:    make(map[string]*Shortcut),
		holds:     make(map[string]*Shortcut),
		sequences: make(map[string]*Shortcut),
	}
}

// RegisterChord registers an instantaneous shortcut for one or more
// alternate combinations. The whole registration is dropped if any
// canonicalized combination is already live in the chord table.
// It reports whether the shortcut was added.
func (r *Registry) RegisterChord(handler Handler, keys []string, title, description string) bool {
	combos := key.Normalize(keys)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range combos {
		if _, exists := r.chords[c]; exists {
			return false
		}
	}

	s := &Shortcut{
		ID:          uuid.NewString(),
		Keys:        combos,
		Mode:        ModeChord,
		Title:       title,
		Description: description,
		Handler:     handler,
	}
	for _, c := range combos {
		r.chords[c] = s
	}
	r.shortcuts = append(r.shortcuts, s)
	return true
}

// RegisterHold registers a duration-gated shortcut. Conflicts are checked
// against the hold table only; a combination may be live in both the chord
// and hold tables at once. It reports whether the shortcut was added.
func (r *Registry) RegisterHold(handler Handler, keys []string, title, description string, holdDuration time.Duration) bool {
	combos := key.Normalize(keys)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range combos {
		if _, exists := r.holds[c]; exists {
			return false
		}
	}

	s := &Shortcut{
		ID:           uuid.NewString(),
		Keys:         combos,
		Mode:         ModeHold,
		HoldDuration: holdDuration,
		Title:        title,
		Description:  description,
		Handler:      handler,
	}
	for _, c := range combos {
		r.holds[c] = s
	}
	r.shortcuts = append(r.shortcuts, s)
	return true
}

// RegisterSequence registers an ordered key sequence. Sequence keys are
// lower-cased but not alias-resolved; the routing table is keyed by the
// comma-joined list. It reports whether the shortcut was added.
func (r *Registry) RegisterSequence(handler Handler, orderedKeys []string, title, description string) bool {
	keys := key.Lower(orderedKeys)
	joined := strings.Join(keys, ",")

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sequences[joined]; exists {
		return false
	}

	s := &Shortcut{
		ID:          uuid.NewString(),
		Keys:        keys,
		Mode:        ModeSequence,
		Title:       title,
		Description: description,
		Handler:     handler,
	}
	r.sequences[joined] = s
	r.shortcuts = append(r.shortcuts, s)
	return true
}

// UnregisterChord removes routing entries for each canonicalized
// combination from both the chord and hold tables, then removes every
// shortcut whose full key set is contained in the request. Removing an
// absent combination is a no-op.
func (r *Registry) UnregisterChord(keys []string) {
	combos := key.Normalize(keys)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range combos {
		delete(r.chords, c)
		delete(r.holds, c)
	}
	r.removeContainedLocked(combos)
}

// UnregisterSequence canonicalizes the keys through the chord path,
// removes the matching sequence routing entry and every shortcut whose
// full key set is contained in the request.
func (r *Registry) UnregisterSequence(orderedKeys []string) {
	combos := key.Normalize(orderedKeys)

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sequences, strings.Join(combos, ","))
	r.removeContainedLocked(combos)
}

// removeContainedLocked drops shortcuts whose keys are all present in the
// request list. Caller must hold the write lock.
func (r *Registry) removeContainedLocked(requested []string) {
	set := make(map[string]struct{}, len(requested))
	for _, k := range requested {
		set[k] = struct{}{}
	}

	kept := r.shortcuts[:0]
	for _, s := range r.shortcuts {
		if !keysContained(s.Keys, set) {
			kept = append(kept, s)
		}
	}
	// Release references past the new length.
	for i := len(kept); i < len(r.shortcuts); i++ {
		r.shortcuts[i] = nil
	}
	r.shortcuts = kept
}

// keysContained reports whether every key appears in the set.
// An empty key list is never considered contained.
func keysContained(keys []string, set map[string]struct{}) bool {
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}

// Chord returns the instantaneous shortcut routed for a combination.
func (r *Registry) Chord(combo string) (*Shortcut, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.chords[combo]
	return s, ok
}

// Hold returns the duration-gated shortcut routed for a combination.
func (r *Registry) Hold(combo string) (*Shortcut, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.holds[combo]
	return s, ok
}

// HoldDuration returns the configured hold duration routed under a single
// key token. Durations are stored per combination, so multi-key hold
// combinations are not found by their individual tokens.
func (r *Registry) HoldDuration(token string) (time.Duration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.holds[token]
	if !ok {
		return 0, false
	}
	return s.HoldDuration, true
}

// Sequence returns the shortcut routed for a comma-joined key list.
func (r *Registry) Sequence(joined string) (*Shortcut, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sequences[joined]
	return s, ok
}

// Snapshot returns a copy of the registered shortcuts in registration order.
func (r *Registry) Snapshot() []Shortcut {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]Shortcut, len(r.shortcuts))
	for i, s := range r.shortcuts {
		snapshot[i] = s.clone()
	}
	return snapshot
}

// Len returns the number of registered shortcuts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shortcuts)
}
