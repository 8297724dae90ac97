// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package console

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/canvas-console/internal/metrics"
	"github.com/tomtom215/canvas-console/internal/models"
	"github.com/tomtom215/canvas-console/internal/selection"
)

// Session-related errors
var (
	// ErrSessionNotFound is returned when a session is not in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when the session outlived its max age.
	ErrSessionExpired = errors.New("session expired")
)

// CourseData is what the console shows under a selected course.
type CourseData struct {
	Folders []models.Folder
	Files   []models.File

	// Err is set when the fetch failed; the next selection fetches again.
	Err string
}

// Session is one signed-in browser. It lives in memory only.
type Session struct {
	ID        string
	Token     string
	Profile   models.Profile
	CreatedAt time.Time
	ExpiresAt time.Time

	// Selection holds the ids of the checked courses.
	Selection *selection.Set

	mu         sync.RWMutex
	courseData map[int64]*CourseData
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// CourseData returns the fetched data of a course, if any.
func (s *Session) CourseData(courseID int64) (*CourseData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.courseData[courseID]
	return data, ok
}

// NeedsCourseData reports whether courseID has no successfully fetched data.
func (s *Session) NeedsCourseData(courseID int64) bool {
	data, ok := s.CourseData(courseID)
	return !ok || data.Err != ""
}

// SetCourseData stores the data of a course for the rest of the session.
func (s *Session) SetCourseData(courseID int64, data *CourseData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courseData[courseID] = data
}

// SessionStore keeps sessions in memory, keyed by id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	maxAge   time.Duration
}

// NewSessionStore creates a store whose sessions last maxAge.
func NewSessionStore(maxAge time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		maxAge:   maxAge,
	}
}

// Create stores a new session for a verified token.
func (s *SessionStore) Create(token string, profile models.Profile) *Session {
	now := time.Now()
	session := &Session{
		ID:         uuid.NewString(),
		Token:      token,
		Profile:    profile,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.maxAge),
		Selection:  &selection.Set{},
		courseData: make(map[int64]*CourseData),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.sessions[session.ID] = session
	metrics.ConsoleActiveSessions.Set(float64(len(s.sessions)))
	return session
}

// Get returns the session with id. An expired session is removed and
// reported as ErrSessionExpired.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		delete(s.sessions, id)
		metrics.ConsoleActiveSessions.Set(float64(len(s.sessions)))
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Delete removes a session. Unknown ids are ignored.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	metrics.ConsoleActiveSessions.Set(float64(len(s.sessions)))
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune drops expired sessions and returns how many were removed.
func (s *SessionStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.sessions)
	s.pruneLocked(time.Now())
	metrics.ConsoleActiveSessions.Set(float64(len(s.sessions)))
	return before - len(s.sessions)
}

// pruneLocked drops expired sessions. Must be called with mu held.
func (s *SessionStore) pruneLocked(now time.Time) {
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
