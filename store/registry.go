package store

import (
	"sync"

	"mangatan.com/yomitan/types"
)

// Registry is the live per-dictionary configuration. Searches snapshot it at
// the start of a request, so toggling a dictionary mid-search never produces a
// half-filtered result set.
type Registry struct {
	mu     sync.RWMutex
	states map[types.DictionaryID]types.DictionaryState
}

func NewRegistry() *Registry {
	return &Registry{states: make(map[types.DictionaryID]types.DictionaryState)}
}

// SeedFromProfile loads the dictionary rows of a profile file into the
// registry, replacing any previous state for the same IDs.
func (r *Registry) SeedFromProfile(profile *types.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dict := range profile.Dictionaries {
		r.states[types.DictionaryID(dict.ID)] = types.DictionaryState{
			Enabled:  dict.Enabled,
			Priority: dict.Priority,
		}
	}
}

func (r *Registry) Upsert(id types.DictionaryID, state types.DictionaryState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[id] = state
}

// SetEnabled toggles a dictionary, creating a default-priority entry when the
// dictionary was previously unconfigured.
func (r *Registry) SetEnabled(id types.DictionaryID, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[id]
	if !ok {
		state = types.DictionaryState{Priority: types.DefaultPriority}
	}
	state.Enabled = enabled
	r.states[id] = state
}

func (r *Registry) SetPriority(id types.DictionaryID, priority int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[id]
	if !ok {
		state = types.DictionaryState{Enabled: true}
	}
	state.Priority = priority
	r.states[id] = state
}

func (r *Registry) Delete(id types.DictionaryID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, id)
}

// Snapshot returns a copy of the current states, safe to read for the rest of
// a request without holding the lock.
func (r *Registry) Snapshot() map[types.DictionaryID]types.DictionaryState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[types.DictionaryID]types.DictionaryState, len(r.states))
	for id, state := range r.states {
		snapshot[id] = state
	}
	return snapshot
}
