// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package selection

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestQuickPop(t *testing.T) {
	tests := []struct {
		name        string
		in          []int
		idx         int
		wantSlice   []int
		wantRemoved int
		wantErr     error
	}{
		{"middle", []int{1, 2, 3, 4}, 1, []int{1, 4, 3}, 2, nil},
		{"last", []int{1, 2, 3}, 2, []int{1, 2}, 3, nil},
		{"first", []int{1, 2, 3}, 0, []int{3, 2}, 1, nil},
		{"single", []int{9}, 0, []int{}, 9, nil},
		{"empty", []int{}, 0, []int{}, 0, ErrEmpty},
		{"nil", nil, 0, nil, 0, ErrEmpty},
		{"past end", []int{1, 2}, 2, []int{1, 2}, 0, ErrOutOfBounds},
		{"negative", []int{1, 2}, -1, []int{1, 2}, 0, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed, err := QuickPop(tt.in, tt.idx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if removed != tt.wantRemoved {
				t.Errorf("removed = %d, want %d", removed, tt.wantRemoved)
			}
			if len(got) != len(tt.wantSlice) || (len(got) > 0 && !slices.Equal(got, tt.wantSlice)) {
				t.Errorf("slice = %v, want %v", got, tt.wantSlice)
			}
		})
	}
}

func TestQuickPop_Strings(t *testing.T) {
	got, removed, err := QuickPop([]string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if removed != "a" || !slices.Equal(got, []string{"c", "b"}) {
		t.Errorf("got (%v, %q)", got, removed)
	}
}

func TestSet_ToggleAndRemove(t *testing.T) {
	var s Set

	if !s.Toggle(10) || !s.Toggle(20) || !s.Toggle(30) {
		t.Fatal("first toggles should select")
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	if s.Toggle(10) {
		t.Error("second toggle should deselect")
	}
	if s.Contains(10) {
		t.Error("10 should be removed")
	}
	// 30 moved into 10's slot
	if !slices.Equal(s.IDs(), []int64{30, 20}) {
		t.Errorf("IDs() = %v, want [30 20]", s.IDs())
	}

	s.Remove(999)
	if s.Len() != 2 {
		t.Errorf("Remove of absent id changed Len to %d", s.Len())
	}
	s.Remove(20)
	if s.Contains(20) || !s.Contains(30) {
		t.Errorf("IDs() = %v after Remove(20)", s.IDs())
	}
}

func TestSet_IDsIsCopy(t *testing.T) {
	var s Set
	s.Toggle(1)
	ids := s.IDs()
	ids[0] = 42
	if !s.Contains(1) {
		t.Error("mutating IDs() result changed the set")
	}
}

func TestSet_Concurrent(t *testing.T) {
	var s Set
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle(int64(i))
			_ = s.Contains(int64(i))
		}()
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Errorf("Len() = %d, want 50", s.Len())
	}
}
