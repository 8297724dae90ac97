// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/validation"
)

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-1"))

	NewResponseWriter(w, r).Success(map[string]string{"message": "hello"})

	checkStatus(t, w, http.StatusOK)
	resp := decodeResponse(t, w)
	if !resp.Success {
		t.Error("Expected Success to be true")
	}
	if resp.Error != nil {
		t.Error("Expected Error to be nil")
	}
	if resp.Meta == nil || resp.Meta.Timestamp.IsZero() {
		t.Fatal("Expected Meta with a timestamp")
	}
	if resp.Meta.RequestID != "req-1" {
		t.Errorf("Expected request id req-1, got %q", resp.Meta.RequestID)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestResponseWriter_SuccessListAndCreated(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	NewResponseWriter(w, r).SuccessList([]int{1, 2, 3}, 3)
	resp := decodeResponse(t, w)
	if resp.Meta.Count == nil || *resp.Meta.Count != 3 {
		t.Errorf("Expected count 3, got %v", resp.Meta.Count)
	}

	w = httptest.NewRecorder()
	NewResponseWriter(w, r).Created("x")
	checkStatus(t, w, http.StatusCreated)
}

func TestResponseWriter_ValidationError(t *testing.T) {
	t.Parallel()

	type body struct {
		Name string `json:"name" validate:"required"`
	}
	verr := validation.ValidateStruct(body{})
	if verr == nil {
		t.Fatal("expected a validation error")
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test", nil)
	NewResponseWriter(w, r).ValidationError(verr)

	checkStatus(t, w, http.StatusBadRequest)
	resp := decodeResponse(t, w)
	checkErrorCode(t, resp, ErrCodeValidationFailed)
	if resp.Error.Message != "name is required" {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestResponseWriter_CanvasError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid token", &canvas.TokenError{Err: canvas.ErrInvalidToken, BaseURL: "https://x.test"}, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"wrapped token", fmt.Errorf("reset: %w", &canvas.TokenError{Err: canvas.ErrInvalidToken}), http.StatusUnauthorized, ErrCodeUnauthorized},
		{"not found", &canvas.APIError{Status: 404, URL: "u", Message: "gone"}, http.StatusNotFound, ErrCodeNotFound},
		{"server error", &canvas.APIError{Status: 500, URL: "u", Message: "boom"}, http.StatusBadGateway, ErrCodeExternalServiceFail},
		{"transport", errors.New("connection refused"), http.StatusBadGateway, ErrCodeExternalServiceFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			NewResponseWriter(w, r).CanvasError("op", tt.err)
			checkStatus(t, w, tt.status)
			checkErrorCode(t, decodeResponse(t, w), tt.code)
		})
	}
}

func TestResponseWriter_CanvasErrorKeepsInstructions(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	NewResponseWriter(w, r).CanvasError("self", &canvas.TokenError{Err: canvas.ErrInvalidToken, BaseURL: "https://canvas.nus.edu.sg"})

	resp := decodeResponse(t, w)
	if !strings.Contains(resp.Error.Message, "https://canvas.nus.edu.sg/profile/settings") {
		t.Errorf("message should carry token instructions, got %q", resp.Error.Message)
	}
}
