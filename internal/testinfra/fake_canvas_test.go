// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package testinfra

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/canvas-console/internal/canvas"
)

func TestFakeCanvas_CourseLifecycle(t *testing.T) {
	fc := NewFakeCanvas(t)
	client := fc.Client(t)
	ctx := context.Background()

	created, raw, err := client.CreateCourse(ctx, FakeAccountID, "CS1010")
	if err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}
	if created.Name != "CS1010" || len(raw) == 0 {
		t.Errorf("CreateCourse() = %+v, raw %s", created, raw)
	}

	courses, err := client.ListCourses(ctx, 10)
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	if len(courses) != 1 || courses[0].ID != created.ID {
		t.Fatalf("ListCourses() = %+v", courses)
	}

	res, err := client.DeleteCourse(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}
	if !res.Delete {
		t.Error("DeleteCourse() should report delete=true")
	}
	if len(fc.Courses()) != 0 {
		t.Errorf("courses left after delete: %+v", fc.Courses())
	}
}

func TestFakeCanvas_RejectsBadToken(t *testing.T) {
	fc := NewFakeCanvas(t)
	client, err := fc.Client(t).WithToken("wrong")
	if err != nil {
		t.Fatal(err)
	}
	_, err = client.Self(context.Background())
	if !errors.Is(err, canvas.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestFakeCanvas_Fail(t *testing.T) {
	fc := NewFakeCanvas(t)
	id := fc.AddCourse("keep me")
	fc.Fail("/api/v1/courses/{id}", http.StatusInternalServerError)

	_, err := fc.Client(t).DeleteCourse(context.Background(), id)
	var apiErr *canvas.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
	if len(fc.Courses()) != 1 {
		t.Error("failed delete must not remove the course")
	}
}

func TestFakeCanvas_FilesAndDownload(t *testing.T) {
	fc := NewFakeCanvas(t)
	course := fc.AddCourse("CS2030")
	root := fc.AddFolder(course, "course files")
	file := fc.AddFile(root, "notes.pdf", []byte("hello"))

	client := fc.Client(t)
	ctx := context.Background()

	files, err := client.FolderFiles(ctx, root)
	if err != nil {
		t.Fatalf("FolderFiles() error = %v", err)
	}
	if len(files) != 1 || files[0].URL != file.URL {
		t.Fatalf("FolderFiles() = %+v", files)
	}

	target := filepath.Join(t.TempDir(), "notes.pdf")
	written, n, err := client.Download(ctx, file.URL, target)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" || n != 5 {
		t.Errorf("downloaded %q (%d bytes)", data, n)
	}

	for _, c := range fc.Captures() {
		if strings.HasPrefix(c.Path, "/files/") && c.Headers.Get("Authorization") != "" {
			t.Error("download must be unauthenticated")
		}
	}
}
