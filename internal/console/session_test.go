// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package console

import (
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/canvas-console/internal/models"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Hour)
	s := store.Create("tok", models.Profile{ID: 1, Name: "A"})

	got, err := store.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}

	store.Delete(s.ID)
	if _, err := store.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	store.Delete("unknown")
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(-time.Second)
	s := store.Create("tok", models.Profile{ID: 1, Name: "A"})

	if _, err := store.Get(s.ID); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if store.Len() != 0 {
		t.Error("expired session should be removed")
	}
}

func TestSession_CourseData(t *testing.T) {
	store := NewSessionStore(time.Hour)
	s := store.Create("tok", models.Profile{ID: 1, Name: "A"})

	if !s.NeedsCourseData(7) {
		t.Error("unfetched course should need data")
	}
	s.SetCourseData(7, &CourseData{Err: "boom"})
	if !s.NeedsCourseData(7) {
		t.Error("failed fetch should be retried")
	}
	s.SetCourseData(7, &CourseData{Folders: []models.Folder{{ID: 1}}})
	if s.NeedsCourseData(7) {
		t.Error("fetched course should not need data")
	}
	if data, ok := s.CourseData(7); !ok || len(data.Folders) != 1 {
		t.Errorf("CourseData() = %+v, %v", data, ok)
	}
}

func TestSessionStore_Prune(t *testing.T) {
	store := NewSessionStore(-time.Second)
	store.Create("a", models.Profile{ID: 1, Name: "A"})
	store.Create("b", models.Profile{ID: 2, Name: "B"})

	// Create prunes before inserting, so only the newest survives.
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}
	if n := store.Prune(); n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if store.Len() != 0 {
		t.Error("store should be empty")
	}
}
