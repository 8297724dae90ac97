// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/config"
	"github.com/tomtom215/canvas-console/internal/testinfra"
)

func checkStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status: expected %d, got %d (body %s)", want, w.Code, w.Body.String())
	}
}

func checkErrorCode(t *testing.T, resp APIResponse, want string) {
	t.Helper()
	if resp.Success {
		t.Fatal("Expected Success to be false")
	}
	if resp.Error == nil {
		t.Fatal("Expected Error to be set")
	}
	if resp.Error.Code != want {
		t.Errorf("error code: expected %s, got %s (%s)", want, resp.Error.Code, resp.Error.Message)
	}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return resp
}

// testServer bundles a fake Canvas with a router pointed at it.
type testServer struct {
	fc      *testinfra.FakeCanvas
	cfg     *config.Config
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	fc := testinfra.NewFakeCanvas(t)

	cfg := &config.Config{
		Canvas: config.CanvasConfig{
			BaseURL:   fc.URL(),
			AccountID: testinfra.FakeAccountID,
			PerPage:   100,
		},
	}
	clients := canvas.NewFactory(canvas.Config{
		BaseURL:    fc.URL(),
		HTTPClient: fc.Server.Client(),
		PerPage:    100,
	})
	console := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "console")
	})
	router := NewRouter(NewHandler(clients, cfg), console, DefaultCORSConfig())
	return &testServer{fc: fc, cfg: cfg, handler: router.SetupChi()}
}

func (ts *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}
