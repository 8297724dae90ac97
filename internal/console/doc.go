// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

// Package console serves the browser UI: a token dialog, the list of the
// user's courses with per-course folder and file listings, and a tracked
// folder view.
//
// Pages are rendered on the server from embedded html/template files. A
// verified token opens an in-memory session; the browser holds only an
// HS256-signed cookie carrying the session id. Sessions keep the token, the
// selected courses, and every course's fetched folders and files until they
// expire or the user signs out. Nothing is refreshed behind the user's back
// and no Canvas call is retried.
package console
