// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

/*
Package api provides the HTTP surface of the console server.

Three groups of routes share one chi router:

  - /api/canvas/any and /api/canvas/profile pass Canvas JSON through
    unchanged. Any upstream failure is answered with the fixed body
    {"message": "Invalid Response"} and status 200, which is what the
    browser UI expects.
  - /api/v1 is the admin API. It answers in the APIResponse envelope and
    authenticates against Canvas with the request's bearer token, falling
    back to the configured admin token.
  - /metrics exposes Prometheus metrics, and everything else is handed to
    the server-rendered console.

# Middleware

Every request passes through, in order: request id, real IP, panic recovery,
access log, Prometheus metrics, CORS, and response compression.

# Errors

Canvas failures are mapped onto the envelope by canvasError:

	*canvas.TokenError          -> 401 UNAUTHORIZED
	*canvas.APIError (404)      -> 404 NOT_FOUND
	*canvas.APIError (other)    -> 502 EXTERNAL_SERVICE_FAILED
	anything else               -> 502 EXTERNAL_SERVICE_FAILED

No call is retried.
*/
package api
