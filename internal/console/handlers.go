// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package console

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/metrics"
	"github.com/tomtom215/canvas-console/internal/models"
)

// invalidResponse is shown whenever a Canvas call fails.
const invalidResponse = `{ "message": "Invalid Response" }`

// DefaultTrackURL prefills the tracked-folder box.
const DefaultTrackURL = "https://canvas.nus.edu.sg/courses/36732/files/folder/Lecture%20Notes"

type tokenPage struct {
	Token    string
	Response string
}

type courseView struct {
	ID       int64
	Name     string
	Selected bool
	Data     *CourseData
}

type coursesPage struct {
	Profile  models.Profile
	SignedIn time.Time
	Courses  []courseView
	Error    string
}

type trackPage struct {
	URL        string
	CourseID   string
	RemotePath string
	Response   string
}

func (c *Console) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, err := c.currentSession(r); err == nil {
		http.Redirect(w, r, "/courses", http.StatusSeeOther)
		return
	}
	c.render(w, r, http.StatusOK, "token.html", tokenPage{Response: "{}"})
}

// handleToken verifies a pasted token against users/self/profile. A profile
// with an id and a name signs the browser in; anything else is shown as
// JSON under the input.
func (c *Console) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	token := strings.TrimSpace(r.PostFormValue("token"))

	body, profile := c.checkToken(r.Context(), token)
	if !profile.Authenticated() {
		metrics.RecordLogin("rejected")
		c.render(w, r, http.StatusOK, "token.html", tokenPage{Token: token, Response: body})
		return
	}

	session := c.sessions.Create(token, profile)
	value, err := c.signer.Sign(session.ID)
	if err != nil {
		c.sessions.Delete(session.ID)
		metrics.RecordLogin("error")
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to sign session cookie")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	c.setCookie(w, value)
	metrics.RecordLogin("authenticated")
	logging.Ctx(r.Context()).Info().
		Int64("canvas_user_id", profile.ID).
		Msg("Console session started")
	http.Redirect(w, r, "/courses", http.StatusSeeOther)
}

// checkToken returns the profile body as Canvas sent it (or the fixed
// failure body) and its decoded form.
func (c *Console) checkToken(ctx context.Context, token string) (string, models.Profile) {
	var profile models.Profile
	client, err := c.clients(token)
	if err != nil {
		return invalidResponse, profile
	}
	body, err := client.Raw(ctx, c.profileURL())
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Token check failed")
		return invalidResponse, profile
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return string(body), models.Profile{}
	}
	return string(body), profile
}

func (c *Console) handleCourses(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	page := coursesPage{Profile: session.Profile, SignedIn: session.CreatedAt}

	client, err := c.client(session)
	if err != nil {
		page.Error = err.Error()
		c.render(w, r, http.StatusOK, "courses.html", page)
		return
	}
	courses, err := client.ListCourses(r.Context(), c.opts.CoursesPerPage)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to list courses")
		page.Error = invalidResponse
		c.render(w, r, http.StatusOK, "courses.html", page)
		return
	}

	for _, course := range courses {
		if course.Name == "" {
			continue
		}
		view := courseView{
			ID:       course.ID,
			Name:     course.Name,
			Selected: session.Selection.Contains(course.ID),
		}
		if data, ok := session.CourseData(course.ID); ok {
			view.Data = data
		}
		page.Courses = append(page.Courses, view)
	}
	c.render(w, r, http.StatusOK, "courses.html", page)
}

// handleToggle flips the selection of a course. The first time a course is
// selected its folders and files are fetched together and kept for the
// rest of the session.
func (c *Console) handleToggle(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad course id", http.StatusBadRequest)
		return
	}

	if session.Selection.Toggle(id) && session.NeedsCourseData(id) {
		session.SetCourseData(id, c.fetchCourseData(r.Context(), session, id))
	}
	http.Redirect(w, r, fmt.Sprintf("/courses#course-%d", id), http.StatusSeeOther)
}

func (c *Console) handleRemove(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad course id", http.StatusBadRequest)
		return
	}
	session.Selection.Remove(id)
	http.Redirect(w, r, fmt.Sprintf("/courses#course-%d", id), http.StatusSeeOther)
}

func (c *Console) fetchCourseData(ctx context.Context, session *Session, courseID int64) *CourseData {
	client, err := c.client(session)
	if err != nil {
		return &CourseData{Err: err.Error()}
	}

	data := &CourseData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		folders, err := client.CourseFolders(gctx, courseID)
		data.Folders = folders
		return err
	})
	g.Go(func() error {
		files, err := client.CourseFiles(gctx, courseID)
		data.Files = files
		return err
	})
	if err := g.Wait(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("course_id", courseID).Msg("Failed to fetch course data")
		return &CourseData{Err: invalidResponse}
	}
	return data
}

// handleTrack parses a course folder URL leniently and shows the course it
// points at as raw JSON.
func (c *Console) handleTrack(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	page := trackPage{URL: r.URL.Query().Get("url")}
	if page.URL == "" {
		page.URL = DefaultTrackURL
		c.render(w, r, http.StatusOK, "track.html", page)
		return
	}

	courseID, remotePath, ok := canvas.ParseCourseURL(c.opts.BaseURL, page.URL)
	page.CourseID = courseID
	page.RemotePath = remotePath
	page.Response = invalidResponse

	id, err := strconv.ParseInt(courseID, 10, 64)
	if ok && err == nil {
		if client, err := c.client(session); err == nil {
			if raw, err := client.Course(r.Context(), id); err == nil {
				page.Response = indentJSON(raw)
			}
		}
	}
	c.render(w, r, http.StatusOK, "track.html", page)
}

func (c *Console) handleLogout(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	c.sessions.Delete(session.ID)
	c.clearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func indentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
