// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"net/http"

	"github.com/tomtom215/canvas-console/internal/harness"
	"github.com/tomtom215/canvas-console/internal/models"
	"github.com/tomtom215/canvas-console/internal/validation"
)

func (h *Handler) harness(rw *ResponseWriter, r *http.Request) *harness.Harness {
	client := h.adminClient(rw, r)
	if client == nil {
		return nil
	}
	return harness.New(client, h.cfg.Canvas.AccountID, DefaultCoursesPerPage)
}

// HarnessReset deletes every course of the token user.
//
// POST /api/v1/harness/reset
func (h *Handler) HarnessReset(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	hs := h.harness(rw, r)
	if hs == nil {
		return
	}
	results, err := hs.Reset(r.Context())
	if err != nil {
		rw.CanvasError("reset", err)
		return
	}
	rw.SuccessList(results, len(results))
}

// HarnessSeed creates prefix0..prefix{count-1} under canvas.account_id.
//
// POST /api/v1/harness/seed {"prefix": "C", "count": 20}
func (h *Handler) HarnessSeed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.SeedRequest
	if err := decodeBody(r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		rw.ValidationError(verr)
		return
	}
	if h.cfg.Canvas.AccountID == 0 {
		rw.ServiceUnavailable("canvas.account_id is not configured")
		return
	}

	hs := h.harness(rw, r)
	if hs == nil {
		return
	}
	created, err := hs.Seed(r.Context(), req.Prefix, req.Count)
	if err != nil {
		rw.CanvasError("seed", err)
		return
	}
	rw.Created(models.CreateCoursesResult{Created: created})
}

// HarnessExperiments creates "CS1010 Version 0".."CS1010 Version 9".
//
// POST /api/v1/harness/experiments
func (h *Handler) HarnessExperiments(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.cfg.Canvas.AccountID == 0 {
		rw.ServiceUnavailable("canvas.account_id is not configured")
		return
	}
	hs := h.harness(rw, r)
	if hs == nil {
		return
	}
	created, err := hs.Experiments(r.Context())
	if err != nil {
		rw.CanvasError("experiments", err)
		return
	}
	rw.Created(models.CreateCoursesResult{Created: created})
}
