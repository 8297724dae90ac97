// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"net/http"
	"time"
)

// HealthLive reports that the process is up, regardless of Canvas.
//
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the server can serve traffic. It does not
// call Canvas: the console works with per-user tokens, so a missing admin
// token only disables the admin API's fallback.
//
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	data := map[string]interface{}{
		"canvas_base_url":        h.cfg.Canvas.BaseURL,
		"admin_token_configured": h.cfg.Canvas.Token != "",
		"account_configured":     h.cfg.Canvas.AccountID != 0,
		"uptime":                 time.Since(h.startTime).Seconds(),
	}
	if h.cfg.Canvas.BaseURL == "" || h.clients == nil {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Canvas is not configured", data)
		return
	}
	rw.Success(data)
}
