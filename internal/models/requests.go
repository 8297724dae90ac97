// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package models

// CreateCourseRequest is the body of POST /api/v1/courses.
type CreateCourseRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=255"`
	AccountID int64  `json:"account_id,omitempty" validate:"omitempty,min=1"`
}

// ListCoursesRequest holds the query parameters of GET /api/v1/courses.
type ListCoursesRequest struct {
	PerPage int `validate:"min=1,max=1000"`
}

// CreateCoursesResult is returned by bulk creation.
type CreateCoursesResult struct {
	Created []CourseSummary `json:"created"`
}

// SeedRequest is the body of POST /api/v1/harness/seed.
type SeedRequest struct {
	Prefix string `json:"prefix" validate:"required,notblank,max=200"`
	Count  int    `json:"count" validate:"min=1,max=100"`
}
