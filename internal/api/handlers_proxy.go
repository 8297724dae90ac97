// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/logging"
)

// Fixed bodies of the pass-through endpoints. They are written byte for
// byte as the browser UI matches on them.
const (
	invalidURLBody      = `{ "message": "Invalid Url" }`
	invalidResponseBody = `{ "message": "Invalid Response" }`
)

// CanvasAny performs an authorized GET of the url query parameter with the
// token query parameter and returns the upstream body unchanged.
//
// GET /api/canvas/any?url=<absolute url>&token=<canvas token>
func (h *Handler) CanvasAny(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		writeRaw(w, []byte(invalidURLBody))
		return
	}

	logging.Ctx(r.Context()).Debug().Str("target", describeURL(target)).Msg("Proxying Canvas request")
	h.passThrough(w, r, target)
}

// CanvasProfile returns users/self/profile for the token query parameter.
//
// GET /api/canvas/profile?token=<canvas token>
func (h *Handler) CanvasProfile(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSuffix(h.cfg.Canvas.BaseURL, "/") + canvas.APIPrefix + "users/self/profile"
	h.passThrough(w, r, target)
}

func (h *Handler) passThrough(w http.ResponseWriter, r *http.Request, target string) {
	client, err := h.clients(r.URL.Query().Get("token"))
	if err != nil {
		writeRaw(w, []byte(invalidResponseBody))
		return
	}
	body, err := client.Raw(r.Context(), target)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Str("target", describeURL(target)).Msg("Canvas pass-through failed")
		writeRaw(w, []byte(invalidResponseBody))
		return
	}
	writeRaw(w, body)
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// describeURL keeps the host and path of a URL for logging.
func describeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	return u.Host + u.Path
}
