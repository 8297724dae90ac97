// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package testinfra

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/models"
)

const (
	// FakeToken is the only bearer token FakeCanvas accepts.
	FakeToken = "fake-canvas-token"

	// FakeAccountID is the account courses are created under.
	FakeAccountID int64 = 1

	// FakeUserID is the id of the token's user.
	FakeUserID int64 = 4242
)

// Capture is one request received by FakeCanvas.
type Capture struct {
	Method  string
	Path    string
	Query   string
	Headers http.Header
}

// FakeCanvas is an in-memory Canvas REST API.
type FakeCanvas struct {
	Server *httptest.Server

	// Profile is served by users/self/profile; its id and name also back
	// users/self.
	Profile models.Profile

	mu       sync.Mutex
	nextID   int64
	courses  map[int64]models.Course
	folders  map[int64][]models.Folder
	files    map[int64][]models.File
	blobs    map[string][]byte
	failures map[string]int
	captures []Capture
}

// NewFakeCanvas starts a FakeCanvas that is closed when the test ends.
func NewFakeCanvas(t *testing.T) *FakeCanvas {
	t.Helper()

	fc := &FakeCanvas{
		Profile: models.Profile{
			ID:            FakeUserID,
			Name:          "Test Admin",
			PrimaryEmail:  "admin@example.edu",
			IntegrationID: "A0000000X",
		},
		nextID:   100,
		courses:  make(map[int64]models.Course),
		folders:  make(map[int64][]models.Folder),
		files:    make(map[int64][]models.File),
		blobs:    make(map[string][]byte),
		failures: make(map[string]int),
	}
	fc.Server = httptest.NewServer(fc.router())
	t.Cleanup(fc.Server.Close)
	return fc
}

// URL returns the base URL of the fake instance.
func (fc *FakeCanvas) URL() string {
	return fc.Server.URL
}

// Client returns a canvas.Client authenticated with FakeToken.
func (fc *FakeCanvas) Client(t *testing.T) *canvas.Client {
	t.Helper()
	client, err := canvas.NewClient(canvas.Config{
		BaseURL:    fc.Server.URL,
		Token:      FakeToken,
		HTTPClient: fc.Server.Client(),
		PerPage:    100,
	})
	if err != nil {
		t.Fatalf("canvas.NewClient() error = %v", err)
	}
	return client
}

// Fail makes every request whose route pattern equals pattern (for example
// "/api/v1/courses/{id}") answer with status.
func (fc *FakeCanvas) Fail(pattern string, status int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.failures[pattern] = status
}

// AddCourse stores a course and returns its id.
func (fc *FakeCanvas) AddCourse(name string) int64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.addCourseLocked(name).ID
}

func (fc *FakeCanvas) addCourseLocked(name string) models.Course {
	fc.nextID++
	course := models.Course{
		ID:            fc.nextID,
		Name:          name,
		CourseCode:    name,
		WorkflowState: "available",
		AccountID:     FakeAccountID,
		DefaultView:   canvas.DefaultCourseView,
	}
	fc.courses[course.ID] = course
	return course
}

// AddFolder stores a folder of courseID. fullName includes the
// "course files" root.
func (fc *FakeCanvas) AddFolder(courseID int64, fullName string) int64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.nextID++
	name := fullName
	if i := strings.LastIndex(fullName, "/"); i >= 0 {
		name = fullName[i+1:]
	}
	fc.folders[courseID] = append(fc.folders[courseID], models.Folder{
		ID:       fc.nextID,
		Name:     name,
		FullName: fullName,
	})
	return fc.nextID
}

// AddFile stores a file in folderID. Its download URL serves content
// without authentication.
func (fc *FakeCanvas) AddFile(folderID int64, filename string, content []byte) models.File {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.nextID++
	key := strconv.FormatInt(fc.nextID, 10)
	file := models.File{
		ID:          fc.nextID,
		FolderID:    folderID,
		DisplayName: filename,
		Filename:    filename,
		URL:         fc.Server.URL + "/files/" + key + "/download?verifier=v" + key,
		Size:        int64(len(content)),
		ContentType: "application/octet-stream",
	}
	fc.files[folderID] = append(fc.files[folderID], file)
	fc.blobs[key] = content
	return file
}

// Courses returns the stored courses ordered by id.
func (fc *FakeCanvas) Courses() []models.CourseSummary {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.summariesLocked()
}

func (fc *FakeCanvas) summariesLocked() []models.CourseSummary {
	out := make([]models.CourseSummary, 0, len(fc.courses))
	for _, c := range fc.courses {
		out = append(out, c.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Captures returns every request received so far.
func (fc *FakeCanvas) Captures() []Capture {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]Capture, len(fc.captures))
	copy(out, fc.captures)
	return out
}

func (fc *FakeCanvas) router() http.Handler {
	r := chi.NewRouter()
	r.Use(fc.capture)

	r.Get("/files/{key}/download", fc.handleDownload)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(fc.authorize)

		r.Get("/users/self", fc.route(fc.handleSelf))
		r.Get("/users/self/profile", fc.route(fc.handleProfile))
		r.Get("/accounts", fc.route(fc.handleAccounts))
		r.Post("/accounts/{id}/courses", fc.route(fc.handleCreateCourse))
		r.Get("/courses", fc.route(fc.handleListCourses))
		r.Get("/courses/{id}", fc.route(fc.handleCourse))
		r.Delete("/courses/{id}", fc.route(fc.handleDeleteCourse))
		r.Get("/courses/{id}/folders", fc.route(fc.handleFolders))
		r.Get("/courses/{id}/files", fc.route(fc.handleCourseFiles))
		r.Get("/folders/{id}/files", fc.route(fc.handleFolderFiles))
	})
	return r
}

// route answers with an injected failure, if one is set for the matched
// pattern, before h runs.
func (fc *FakeCanvas) route(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		fc.mu.Lock()
		status, failed := fc.failures[pattern]
		fc.mu.Unlock()
		if failed {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		h(w, r)
	}
}

func (fc *FakeCanvas) capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			_, _ = io.Copy(io.Discard, r.Body)
		}
		fc.mu.Lock()
		fc.captures = append(fc.captures, Capture{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.RawQuery,
			Headers: r.Header.Clone(),
		})
		fc.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (fc *FakeCanvas) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+FakeToken {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"errors": []map[string]string{{"message": "Invalid access token."}},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (fc *FakeCanvas) handleSelf(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.User{
		ID:        fc.Profile.ID,
		Name:      fc.Profile.Name,
		ShortName: fc.Profile.Name,
	})
}

func (fc *FakeCanvas) handleProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, fc.Profile)
}

func (fc *FakeCanvas) handleAccounts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []models.Account{{ID: FakeAccountID, Name: "Test Account", WorkflowState: "active"}})
}

func (fc *FakeCanvas) handleListCourses(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	courses := make([]models.Course, 0, len(fc.courses))
	for _, c := range fc.courses {
		courses = append(courses, c)
	}
	fc.mu.Unlock()
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })

	if perPage, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && perPage < len(courses) {
		courses = courses[:perPage]
	}
	writeJSON(w, http.StatusOK, courses)
}

func (fc *FakeCanvas) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("course[name]")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "course name is required"})
		return
	}
	fc.mu.Lock()
	course := fc.addCourseLocked(name)
	course.DefaultView = r.URL.Query().Get("course[default_view]")
	fc.courses[course.ID] = course
	fc.mu.Unlock()
	writeJSON(w, http.StatusOK, course)
}

func (fc *FakeCanvas) handleCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fc.mu.Lock()
	course, found := fc.courses[id]
	fc.mu.Unlock()
	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (fc *FakeCanvas) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("event") != "delete" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "event must be delete or conclude"})
		return
	}
	fc.mu.Lock()
	_, found := fc.courses[id]
	delete(fc.courses, id)
	fc.mu.Unlock()
	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"delete": true})
}

func (fc *FakeCanvas) handleFolders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fc.mu.Lock()
	folders := append([]models.Folder{}, fc.folders[id]...)
	fc.mu.Unlock()
	writeJSON(w, http.StatusOK, folders)
}

func (fc *FakeCanvas) handleCourseFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fc.mu.Lock()
	files := []models.File{}
	for _, folder := range fc.folders[id] {
		files = append(files, fc.files[folder.ID]...)
	}
	fc.mu.Unlock()
	writeJSON(w, http.StatusOK, files)
}

func (fc *FakeCanvas) handleFolderFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	fc.mu.Lock()
	files := append([]models.File{}, fc.files[id]...)
	fc.mu.Unlock()
	writeJSON(w, http.StatusOK, files)
}

func (fc *FakeCanvas) handleDownload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	fc.mu.Lock()
	blob, ok := fc.blobs[key]
	fc.mu.Unlock()
	if !ok || r.URL.Query().Get("verifier") != "v"+key {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(blob)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeNotFound(w)
		return 0, false
	}
	return id, true
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"errors": []map[string]string{{"message": "The specified resource does not exist."}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
