// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/models"
	"github.com/tomtom215/canvas-console/internal/validation"
)

// DefaultCoursesPerPage is the per_page of GET /api/v1/courses.
const DefaultCoursesPerPage = 200

// ListCourses lists the token user's courses as {id, name}.
//
// GET /api/v1/courses?per_page=N
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	perPage, err := getIntParam(r, "per_page", DefaultCoursesPerPage)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(models.ListCoursesRequest{PerPage: perPage}); verr != nil {
		rw.ValidationError(verr)
		return
	}

	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	courses, err := client.ListCourses(r.Context(), perPage)
	if err != nil {
		rw.CanvasError("list_courses", err)
		return
	}
	rw.SuccessList(courses, len(courses))
}

// CreateCourse creates a course from {"name": ..., "account_id": ...}. The
// account defaults to canvas.account_id. The Canvas course is returned as
// Canvas sent it.
//
// POST /api/v1/courses
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.CreateCourseRequest
	if err := decodeBody(r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		rw.ValidationError(verr)
		return
	}
	accountID := req.AccountID
	if accountID == 0 {
		accountID = h.cfg.Canvas.AccountID
	}
	if accountID == 0 {
		rw.BadRequest("account_id is required when canvas.account_id is not configured")
		return
	}

	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	course, raw, err := client.CreateCourse(r.Context(), accountID, req.Name)
	if err != nil {
		rw.CanvasError("create_course", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("course_id", course.ID).
		Int64("account_id", accountID).
		Msg("Course created")
	rw.Created(json.RawMessage(raw))
}

// GetCourse returns one course as Canvas sends it.
//
// GET /api/v1/courses/{id}
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := courseIDParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	raw, err := client.Course(r.Context(), id)
	if err != nil {
		rw.CanvasError("course", err)
		return
	}
	rw.Success(raw)
}

// DeleteCourse deletes one course.
//
// DELETE /api/v1/courses/{id}
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := courseIDParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	result, err := client.DeleteCourse(r.Context(), id)
	if err != nil {
		rw.CanvasError("delete_course", err)
		return
	}
	logging.Ctx(r.Context()).Info().Int64("course_id", id).Msg("Course deleted")
	rw.Success(result)
}

// DeleteAllCourses deletes every listed course concurrently.
//
// DELETE /api/v1/courses?per_page=N
func (h *Handler) DeleteAllCourses(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	perPage, err := getIntParam(r, "per_page", DefaultCoursesPerPage)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(models.ListCoursesRequest{PerPage: perPage}); verr != nil {
		rw.ValidationError(verr)
		return
	}

	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	results, err := client.DeleteAllCourses(r.Context(), perPage)
	if err != nil {
		rw.CanvasError("delete_all_courses", err)
		return
	}
	logging.Ctx(r.Context()).Info().Int("deleted", len(results)).Msg("All courses deleted")
	rw.SuccessList(results, len(results))
}

// Self returns users/self.
//
// GET /api/v1/self
func (h *Handler) Self(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	user, err := client.Self(r.Context())
	if err != nil {
		rw.CanvasError("self", err)
		return
	}
	rw.Success(user)
}

// Profile returns users/self/profile.
//
// GET /api/v1/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	profile, err := client.Profile(r.Context())
	if err != nil {
		rw.CanvasError("profile", err)
		return
	}
	rw.Success(profile)
}

// Accounts lists the accounts the token administers.
//
// GET /api/v1/accounts
func (h *Handler) Accounts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	client := h.adminClient(rw, r)
	if client == nil {
		return
	}
	accounts, err := client.Accounts(r.Context())
	if err != nil {
		rw.CanvasError("accounts", err)
		return
	}
	rw.SuccessList(accounts, len(accounts))
}
