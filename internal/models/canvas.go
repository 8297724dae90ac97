// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package models

import (
	"strings"
	"time"
)

// CourseFilesRoot is the prefix Canvas puts on every course folder's full_name.
const CourseFilesRoot = "course files"

// Course is a Canvas course as returned by /courses and /courses/:id.
type Course struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CourseCode    string `json:"course_code,omitempty"`
	WorkflowState string `json:"workflow_state,omitempty"`
	AccountID     int64  `json:"account_id,omitempty"`
	DefaultView   string `json:"default_view,omitempty"`
}

// CourseSummary is the reduced {id, name} shape used by listings.
type CourseSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Summary reduces a Course to its id and name.
func (c *Course) Summary() CourseSummary {
	return CourseSummary{ID: c.ID, Name: c.Name}
}

// Folder is a Canvas folder.
type Folder struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	FullName       string `json:"full_name"`
	FilesURL       string `json:"files_url,omitempty"`
	FoldersURL     string `json:"folders_url,omitempty"`
	ParentFolderID *int64 `json:"parent_folder_id,omitempty"`
	FilesCount     int    `json:"files_count"`
	FoldersCount   int    `json:"folders_count"`
	Hidden         bool   `json:"hidden,omitempty"`
	Locked         bool   `json:"locked,omitempty"`
}

// RemoteDir returns the folder path relative to the course files root, and
// false when full_name does not live under it. The root itself yields "".
func (f *Folder) RemoteDir() (string, bool) {
	if f.FullName == CourseFilesRoot {
		return "", true
	}
	rest, ok := strings.CutPrefix(f.FullName, CourseFilesRoot+"/")
	return rest, ok
}

// File is a Canvas file.
type File struct {
	ID          int64      `json:"id"`
	FolderID    int64      `json:"folder_id,omitempty"`
	DisplayName string     `json:"display_name"`
	Filename    string     `json:"filename"`
	URL         string     `json:"url"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content-type,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Locked      bool       `json:"locked,omitempty"`
}

// User is the /users/self object.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	SortName  string `json:"sortable_name,omitempty"`
}

// Profile is the /users/self/profile object.
type Profile struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ShortName     string `json:"short_name,omitempty"`
	PrimaryEmail  string `json:"primary_email"`
	LoginID       string `json:"login_id,omitempty"`
	IntegrationID string `json:"integration_id"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// Authenticated reports whether the profile carries the id and name that a
// valid token always yields.
func (p *Profile) Authenticated() bool {
	return p.ID != 0 && p.Name != ""
}

// Account is a Canvas account.
type Account struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ParentAccountID *int64 `json:"parent_account_id,omitempty"`
	WorkflowState   string `json:"workflow_state,omitempty"`
}

// DeleteResult is the payload of DELETE /courses/:id?event=delete.
type DeleteResult struct {
	CourseID int64 `json:"course_id,omitempty"`
	Delete   bool  `json:"delete"`
}
