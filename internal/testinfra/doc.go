// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

// Package testinfra provides test infrastructure for the packages that talk
// to Canvas.
//
// # Fake Canvas
//
// FakeCanvas is an in-memory Canvas instance behind an httptest server. It
// serves the subset of the REST API the console uses (users, accounts,
// courses, folders, files, downloads), checks the bearer token, and captures
// every request for later assertions:
//
//	func TestSeed(t *testing.T) {
//	    fc := testinfra.NewFakeCanvas(t)
//	    client := fc.Client(t)
//
//	    h := harness.New(client, testinfra.FakeAccountID, 100)
//	    if _, err := h.Seed(ctx, "C", 3); err != nil {
//	        t.Fatal(err)
//	    }
//	    if got := len(fc.Courses()); got != 3 { ... }
//	}
//
// Responses use Canvas field names so the production decoders are exercised
// end to end. Failures can be injected per route with Fail.
package testinfra
