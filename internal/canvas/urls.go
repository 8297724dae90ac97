// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package canvas

import (
	"net/url"
	"strconv"
	"strings"
)

// coursesPrefix returns "<scheme>://<host>/courses/" for a host or base URL.
// A bare host is assumed to be https.
func coursesPrefix(base string) string {
	base = strings.TrimSuffix(base, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return base + "/courses/"
}

// ParseFolderURL extracts the course id and the folder path from a
// user-facing folder URL:
//
//	https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures/Java%20Intro
//	-> 38518, "Lectures/Java Intro"
//
// base is the Canvas host or base URL. The path is URL-decoded when it
// decodes cleanly and returned as written otherwise.
func ParseFolderURL(base, rawURL string) (uint32, string, error) {
	invalid := &InvalidTrackingURLError{URL: rawURL}

	rest, ok := strings.CutPrefix(rawURL, coursesPrefix(base))
	if !ok {
		return 0, "", invalid
	}
	idPart, folder, ok := strings.Cut(rest, "/")
	if !ok {
		return 0, "", invalid
	}
	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		return 0, "", invalid
	}
	folder, ok = strings.CutPrefix(folder, "files/folder/")
	if !ok {
		return 0, "", invalid
	}
	if decoded, err := url.PathUnescape(folder); err == nil {
		folder = decoded
	}
	return uint32(id), folder, nil
}

// ParseCourseURL is the lenient parser of the console's tracked-folder box.
// It accepts the course files page as well as folder pages and leaves the
// path encoded:
//
//	https://canvas.nus.edu.sg/courses/36732/files             -> "36732", ""
//	https://canvas.nus.edu.sg/courses/36732/files/folder/A%20B -> "36732", "A%20B"
//
// Only the first two pieces around "/files" are kept, so a path that itself
// contains "/files" is cut there. ok is false when nothing is left after the
// prefixes are stripped. The course id is not validated.
func ParseCourseURL(host, rawURL string) (courseID, remotePath string, ok bool) {
	rest := strings.TrimPrefix(rawURL, "https://")
	rest = strings.TrimPrefix(rest, hostOnly(host)+"/courses/")
	if rest == "" {
		return "", "", false
	}

	parts := strings.Split(rest, "/files")
	courseID = parts[0]
	if len(parts) > 1 {
		remotePath = strings.TrimPrefix(parts[1], "/folder/")
	}
	return courseID, remotePath, true
}

func hostOnly(base string) string {
	if _, after, found := strings.Cut(base, "://"); found {
		base = after
	}
	return strings.TrimSuffix(base, "/")
}
