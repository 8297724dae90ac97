// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

/*
Package canvas is a thin client for the Canvas LMS REST API.

Every method maps to one HTTP call (DeleteAllCourses fans out one DELETE per
course). Responses are decoded into the models package types, or returned
verbatim where callers pass them through. Nothing is retried, rate limited,
or cached.

	client, err := canvas.NewClient(canvas.Config{
	    BaseURL: "https://canvas.nus.edu.sg",
	    Token:   token,
	})
	if err != nil {
	    return err // *TokenError wrapping ErrEmptyToken
	}
	courses, err := client.ListCourses(ctx, 200)

Error types:
  - *TokenError wraps ErrEmptyToken or ErrInvalidToken (a 401) and prints how
    to create a new token
  - *APIError carries the status and message of any other non-2xx answer
  - *InvalidTrackingURLError, *NoFoldersFoundError, and *DownloadTargetError
    come from folder URL parsing, sync, and downloads

The package also holds the two folder URL parsers: ParseFolderURL, the strict
one used by sync, and ParseCourseURL, the lenient one behind the console's
tracked-folder box.
*/
package canvas
