// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

// Package harness drives a Canvas test account: it wipes every course and
// seeds fresh ones so that the console and the sync tool can be exercised
// against a known state.
//
// Every operation is a fan-out of plain Canvas calls. Nothing is retried; the
// first failed call fails the operation.
//
//	h := harness.New(client, cfg.Canvas.AccountID, 200)
//	if _, err := h.Reset(ctx); err != nil { ... }
//	courses, err := h.Seed(ctx, "C", 20)
//
// The end-to-end test in this package runs against a real Canvas instance
// when ADMIN_TOKEN is set (directly or through a .env file).
package harness
