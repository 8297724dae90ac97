// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package canvas

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/metrics"
	"github.com/tomtom215/canvas-console/internal/models"
)

// APIPrefix is appended to the base URL for every REST call.
const APIPrefix = "/api/v1/"

// maxErrorBody caps how much of a failed response is read for the message.
const maxErrorBody = 64 << 10

// API is the set of Canvas operations the console, admin API, harness, and
// sync tool depend on. *Client implements it; tests substitute fakes.
type API interface {
	Self(ctx context.Context) (*models.User, error)
	Profile(ctx context.Context) (*models.Profile, error)
	Accounts(ctx context.Context) ([]models.Account, error)
	ListCourses(ctx context.Context, perPage int) ([]models.CourseSummary, error)
	CreateCourse(ctx context.Context, accountID int64, name string) (models.CourseSummary, json.RawMessage, error)
	DeleteCourse(ctx context.Context, courseID int64) (models.DeleteResult, error)
	DeleteAllCourses(ctx context.Context, perPage int) ([]models.DeleteResult, error)
	Course(ctx context.Context, courseID int64) (json.RawMessage, error)
	CourseFolders(ctx context.Context, courseID int64) ([]models.Folder, error)
	CourseFiles(ctx context.Context, courseID int64) ([]models.File, error)
	FolderFiles(ctx context.Context, folderID int64) ([]models.File, error)
	Raw(ctx context.Context, rawURL string) ([]byte, error)
	Download(ctx context.Context, rawURL, localPath string) (string, int64, error)
}

var _ API = (*Client)(nil)

// Config configures a Client.
type Config struct {
	// BaseURL is the Canvas host, e.g. https://canvas.nus.edu.sg.
	BaseURL string

	// Token is sent as a bearer token on every API request.
	Token string

	// Timeout bounds API requests. Downloads are bounded by ctx only.
	Timeout time.Duration

	// PerPage is sent on folder and file listings, which Canvas otherwise
	// pages at 10.
	PerPage int

	// HTTPClient overrides the transport for API requests.
	HTTPClient *http.Client
}

// Client is a Canvas REST API client. It never retries and never caches: a
// failed call is reported once.
type Client struct {
	baseURL        string
	apiURL         string
	token          string
	perPage        int
	httpClient     *http.Client
	downloadClient *http.Client
}

// NewClient creates a Canvas client. An empty token yields a *TokenError
// wrapping ErrEmptyToken.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Token == "" {
		return nil, &TokenError{Err: ErrEmptyToken, BaseURL: baseURL}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	return &Client{
		baseURL:        baseURL,
		apiURL:         baseURL + APIPrefix,
		token:          cfg.Token,
		perPage:        perPage,
		httpClient:     httpClient,
		downloadClient: &http.Client{Transport: httpClient.Transport},
	}, nil
}

// Factory builds an API for a caller-supplied token.
type Factory func(token string) (API, error)

// NewFactory returns a Factory whose clients share cfg's base URL,
// timeout, and transport. cfg.Token is ignored.
func NewFactory(cfg Config) Factory {
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return func(token string) (API, error) {
		c := cfg
		c.Token = token
		client, err := NewClient(c)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// WithToken returns a client for the same Canvas instance authenticated
// with a different token. The transport is shared.
func (c *Client) WithToken(token string) (*Client, error) {
	if token == "" {
		return nil, &TokenError{Err: ErrEmptyToken, BaseURL: c.baseURL}
	}
	clone := *c
	clone.token = token
	return &clone, nil
}

// BaseURL returns the Canvas host URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIURL returns the absolute REST URL for path, e.g.
// APIURL("courses/1") -> https://canvas.nus.edu.sg/api/v1/courses/1.
func (c *Client) APIURL(path string) string {
	return c.apiURL + strings.TrimPrefix(path, "/")
}

// Raw performs an authorized GET on an absolute URL and returns the body
// verbatim. Non-2xx answers become *APIError.
func (c *Client) Raw(ctx context.Context, rawURL string) ([]byte, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	return c.do(ctx, "raw", http.MethodGet, rawURL, nil)
}

// getJSON GETs an API path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	return decode(op, body, out)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.APIURL(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends one authorized request and returns the body of a 2xx answer.
func (c *Client) do(ctx context.Context, op, method, rawURL string, body io.Reader) ([]byte, error) {
	start := time.Now()
	status := 0
	var err error
	defer func() {
		metrics.RecordCanvasRequest(op, status, time.Since(start), err)
	}()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canvas %s request failed: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	logging.Ctx(ctx).Debug().
		Str("op", op).
		Str("method", method).
		Str("url", redactURL(rawURL)).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("Canvas request")

	if status < 200 || status > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if status == http.StatusUnauthorized {
			err = &TokenError{Err: ErrInvalidToken, BaseURL: c.baseURL}
			return nil, err
		}
		err = newAPIError(status, redactURL(rawURL), errBody)
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read canvas %s response: %w", op, err)
	}
	return data, nil
}

func decode(op string, body []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode canvas %s response: %w", op, err)
	}
	return nil
}

// extractErrorMessage pulls a readable message from a Canvas error body.
func extractErrorMessage(body []byte) string {
	var payload struct {
		Errors  json.RawMessage `json:"errors"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if payload.Message != "" {
		return payload.Message
	}

	var list []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Errors, &list); err == nil && len(list) > 0 {
		msgs := make([]string, 0, len(list))
		for _, e := range list {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(string(body))
}

// redactURL drops query parameters whose names suggest credentials so they
// never reach logs or error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return rawURL
	}
	q := u.Query()
	changed := false
	for key := range q {
		k := strings.ToLower(key)
		if strings.Contains(k, "token") || k == "verifier" {
			q.Set(key, "REDACTED")
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
