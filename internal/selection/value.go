// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import "sync"

// =============================================================================
// SELECTED VALUE
// =============================================================================

// SelectedValue is the active selection. Exactly one identity is
// authoritative at a time: on the agents endpoint Model holds an agent
// id, on an assistants endpoint an assistant id, otherwise a plain model
// name. ModelSpec is set only when the selection came from a named
// preset and is cleared on any direct endpoint/model pick.
type SelectedValue struct {
	Endpoint  string
	Model     string
	ModelSpec string
}

// IsEmpty reports whether nothing is selected at all.
func (v SelectedValue) IsEmpty() bool {
	return v == SelectedValue{}
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the single source of truth for the active selection.
// Reads are synchronous and writes are immediately visible. The store
// performs no validation; writers are responsible for the SelectedValue
// invariants.
type Store struct {
	mu    sync.RWMutex
	value SelectedValue
}

// NewStore creates a store seeded with the given value.
func NewStore(seed SelectedValue) *Store {
	return &Store{value: seed}
}

// Get returns the current selection.
func (s *Store) Get() SelectedValue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the current selection.
func (s *Store) Set(v SelectedValue) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
}
