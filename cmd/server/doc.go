// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

// Command server runs the Canvas console: the browser UI on / and the JSON
// admin API on /api.
//
// # Configuration
//
// Settings come from built-in defaults, then config.yaml, then environment
// variables (a .env file is read first and never overrides the environment):
//
//	CANVAS_BASE_URL=https://canvas.nus.edu.sg
//	ADMIN_TOKEN=...            # default token for /api/v1 callers without one
//	CANVAS_ACCOUNT_ID=1        # account new courses are created under
//	HTTP_PORT=3000
//	CONSOLE_SESSION_SECRET=... # random per process when unset
//	CORS_ORIGINS=https://a.example,https://b.example
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
// in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT.
package main
