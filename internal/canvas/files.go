// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package canvas

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tomtom215/canvas-console/internal/models"
)

func (c *Client) pageQuery() url.Values {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(c.perPage))
	return query
}

// CourseFolders lists every folder of a course, nested ones included.
func (c *Client) CourseFolders(ctx context.Context, courseID int64) ([]models.Folder, error) {
	var folders []models.Folder
	path := fmt.Sprintf("courses/%d/folders", courseID)
	if err := c.getJSON(ctx, "course_folders", path, c.pageQuery(), &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CourseFiles lists the files of a course across all folders.
func (c *Client) CourseFiles(ctx context.Context, courseID int64) ([]models.File, error) {
	var files []models.File
	path := fmt.Sprintf("courses/%d/files", courseID)
	if err := c.getJSON(ctx, "course_files", path, c.pageQuery(), &files); err != nil {
		return nil, err
	}
	return files, nil
}

// FolderFiles lists the files directly inside a folder.
func (c *Client) FolderFiles(ctx context.Context, folderID int64) ([]models.File, error) {
	var files []models.File
	path := fmt.Sprintf("folders/%d/files", folderID)
	if err := c.getJSON(ctx, "folder_files", path, c.pageQuery(), &files); err != nil {
		return nil, err
	}
	return files, nil
}
