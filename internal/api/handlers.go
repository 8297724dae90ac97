// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/config"
)

// Handler holds the dependencies of the API handlers.
//
// Handler methods are split across files:
//   - handlers_proxy.go: /api/canvas pass-through
//   - handlers_courses.go: admin course and user endpoints
//   - handlers_harness.go: seed and reset endpoints
//   - handlers_health.go: liveness and readiness
type Handler struct {
	clients   canvas.Factory
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates a Handler. clients builds a Canvas client per token.
func NewHandler(clients canvas.Factory, cfg *config.Config) *Handler {
	return &Handler{
		clients:   clients,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// adminClient returns a Canvas client for the request's bearer token, or
// the configured admin token when the request carries none. It writes the
// 401 itself and returns nil when neither is available.
func (h *Handler) adminClient(rw *ResponseWriter, r *http.Request) canvas.API {
	token := bearerToken(r)
	if token == "" {
		token = h.cfg.Canvas.Token
	}
	if token == "" {
		rw.Unauthorized("A Canvas token is required: send Authorization: Bearer <token> or configure canvas.token")
		return nil
	}
	client, err := h.clients(token)
	if err != nil {
		rw.CanvasError("client", err)
		return nil
	}
	return client
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
