// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package sync

import (
	"context"
	"errors"
	"os"
	stdsync "sync"
	"sync/atomic"

	"github.com/goccy/go-json"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/models"
)

// fakeAPI serves canned folders and files and records downloads.
type fakeAPI struct {
	folders map[int64][]models.Folder
	files   map[int64][]models.File
	courses []models.CourseSummary

	foldersErr  error
	downloadErr map[string]error

	inFlight    atomic.Int32
	maxInFlight atomic.Int32

	mu         stdsync.Mutex
	downloaded []string
}

var _ canvas.API = (*fakeAPI)(nil)

var errNotImplemented = errors.New("not implemented")

func (f *fakeAPI) Self(context.Context) (*models.User, error)       { return nil, errNotImplemented }
func (f *fakeAPI) Profile(context.Context) (*models.Profile, error) { return nil, errNotImplemented }
func (f *fakeAPI) Accounts(context.Context) ([]models.Account, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) ListCourses(context.Context, int) ([]models.CourseSummary, error) {
	return f.courses, nil
}

func (f *fakeAPI) CreateCourse(context.Context, int64, string) (models.CourseSummary, json.RawMessage, error) {
	return models.CourseSummary{}, nil, errNotImplemented
}

func (f *fakeAPI) DeleteCourse(context.Context, int64) (models.DeleteResult, error) {
	return models.DeleteResult{}, errNotImplemented
}

func (f *fakeAPI) DeleteAllCourses(context.Context, int) ([]models.DeleteResult, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) Course(context.Context, int64) (json.RawMessage, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) CourseFolders(_ context.Context, courseID int64) ([]models.Folder, error) {
	if f.foldersErr != nil {
		return nil, f.foldersErr
	}
	return f.folders[courseID], nil
}

func (f *fakeAPI) CourseFiles(context.Context, int64) ([]models.File, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) FolderFiles(_ context.Context, folderID int64) ([]models.File, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	return f.files[folderID], nil
}

func (f *fakeAPI) Raw(context.Context, string) ([]byte, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) Download(_ context.Context, rawURL, localPath string) (string, int64, error) {
	if err := f.downloadErr[rawURL]; err != nil {
		return "", 0, err
	}
	if err := os.WriteFile(localPath, []byte(rawURL), 0o644); err != nil {
		return "", 0, err
	}
	f.mu.Lock()
	f.downloaded = append(f.downloaded, localPath)
	f.mu.Unlock()
	return localPath, int64(len(rawURL)), nil
}

func folder(id int64, fullName string) models.Folder {
	return models.Folder{ID: id, Name: fullName, FullName: fullName}
}

func file(name, url string) models.File {
	return models.File{Filename: name, DisplayName: name, URL: url}
}
