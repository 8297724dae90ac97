// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package canvas

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// BinaryName is the CLI name used in user-facing instructions.
const BinaryName = "canvas"

var (
	// ErrEmptyToken is returned when a client is built without a token.
	ErrEmptyToken = errors.New("no token provided")

	// ErrInvalidToken is returned when Canvas answers 401.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrDownloadNoParentDir is returned when a download or sync target's
	// parent directory does not exist.
	ErrDownloadNoParentDir = errors.New("download target directory does not exist")
)

// TokenError wraps ErrEmptyToken or ErrInvalidToken and renders the steps
// for obtaining a new token from the given Canvas instance.
type TokenError struct {
	Err     error
	BaseURL string
}

func (e *TokenError) Error() string {
	reason := "Invalid access token."
	if errors.Is(e.Err, ErrEmptyToken) {
		reason = "No token provided."
	}
	return TokenInstructions(reason, e.BaseURL)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// TokenInstructions prefixes pre to the steps for creating a token.
func TokenInstructions(pre, baseURL string) string {
	settings := strings.TrimSuffix(baseURL, "/") + "/profile/settings"
	return fmt.Sprintf(`%s

To obtain a token, go to your profile settings at
%s
and create a new access token.

Run `+"`%s set-token <token>`"+` to set the token,
and then try to run `+"`%s`"+` again.
`, pre, settings, BinaryName, BinaryName)
}

// APIError is a non-2xx answer from Canvas.
type APIError struct {
	Status  int
	URL     string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Canvas error: %s\nurl: %s", e.Message, e.URL)
}

// HTTPStatus returns the upstream status code.
func (e *APIError) HTTPStatus() int {
	return e.Status
}

// newAPIError builds an APIError from a failed response body. Canvas
// usually answers {"errors":[{"message":"..."}]}; anything else is kept
// as text, trimmed.
func newAPIError(status int, rawURL string, body []byte) *APIError {
	msg := extractErrorMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, URL: rawURL, Message: msg}
}

// InvalidTrackingURLError is returned for a folder URL that does not have
// the shape https://<host>/courses/<id>/files/folder/<path>.
type InvalidTrackingURLError struct {
	URL string
}

func (e *InvalidTrackingURLError) Error() string {
	return "Invalid url: " + e.URL
}

// NoFoldersFoundError is returned when no folder of a course matches a
// tracked folder URL.
type NoFoldersFoundError struct {
	URL string
}

func (e *NoFoldersFoundError) Error() string {
	return "No folders found in course: " + e.URL
}

// DownloadTargetError reports a download target whose directory is missing.
// It matches ErrDownloadNoParentDir.
type DownloadTargetError struct {
	Path string
}

func (e *DownloadTargetError) Error() string {
	return fmt.Sprintf("Bad download target: `%s` (directory does not exist).", e.Path)
}

func (e *DownloadTargetError) Is(target error) bool {
	return target == ErrDownloadNoParentDir
}
