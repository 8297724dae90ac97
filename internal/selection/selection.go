// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

// Package selection tracks which courses a console user has ticked.
package selection

import (
	"errors"
	"slices"
	"sync"
)

var (
	// ErrEmpty is returned by QuickPop on an empty slice.
	ErrEmpty = errors.New("tried to quickpop an empty slice")

	// ErrOutOfBounds is returned by QuickPop for an index outside the slice.
	ErrOutOfBounds = errors.New("quickpop index out of bounds")
)

// QuickPop removes s[i] in O(1) by moving the last element into its place.
// Order is not preserved. The removed element is returned with the shortened
// slice, which shares s's backing array.
func QuickPop[T any](s []T, i int) ([]T, T, error) {
	var zero T
	if len(s) == 0 {
		return s, zero, ErrEmpty
	}
	if i < 0 || i >= len(s) {
		return s, zero, ErrOutOfBounds
	}

	removed := s[i]
	last := len(s) - 1
	s[i] = s[last]
	s[last] = zero
	return s[:last], removed, nil
}

// Set is an unordered set of course ids, safe for concurrent use.
type Set struct {
	mu  sync.RWMutex
	ids []int64
}

// Toggle adds id when absent and removes it when present. It reports
// whether id is selected afterwards.
func (s *Set) Toggle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := slices.Index(s.ids, id); idx >= 0 {
		s.ids, _, _ = QuickPop(s.ids, idx)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove drops id. Removing an absent id is a no-op.
func (s *Set) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := slices.Index(s.ids, id); idx >= 0 {
		s.ids, _, _ = QuickPop(s.ids, idx)
	}
}

// Contains reports whether id is selected.
func (s *Set) Contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids.
func (s *Set) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Len returns the number of selected ids.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
