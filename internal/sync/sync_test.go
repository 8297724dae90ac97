// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package sync

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/config"
	"github.com/tomtom215/canvas-console/internal/models"
)

const testBase = "https://canvas.nus.edu.sg"

func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

func mustFolderMap(t *testing.T, url, local string) FolderMap {
	t.Helper()
	fm, err := NewFolderMap(testBase, config.FolderMap{URL: url, Path: local}, "")
	if err != nil {
		t.Fatalf("NewFolderMap() error = %v", err)
	}
	return fm
}

// lecturesAPI models course 38518: Lectures with a Week 1 subfolder, and an
// unrelated Tutorials folder.
func lecturesAPI() *fakeAPI {
	return &fakeAPI{
		folders: map[int64][]models.Folder{
			38518: {
				folder(1, "course files"),
				folder(2, "course files/Lectures"),
				folder(3, "course files/Lectures/Week 1"),
				folder(4, "course files/Tutorials"),
				folder(5, "course files/LecturesOld"),
			},
		},
		files: map[int64][]models.File{
			1: {file("syllabus.pdf", "https://dl/syllabus")},
			2: {file("overview.pdf", "https://dl/overview"), file("locked.pdf", "")},
			3: {file("intro.pdf", "https://dl/intro"), file(" a/b.pdf ", "https://dl/ab")},
			4: {file("t1.pdf", "https://dl/t1")},
			5: {file("old.pdf", "https://dl/old")},
		},
		courses: []models.CourseSummary{{ID: 38518, Name: "CS2040S"}},
	}
}

func TestMatchFolders(t *testing.T) {
	folders := lecturesAPI().folders[38518]

	tests := []struct {
		tracked string
		want    []RemoteFolder
	}{
		{"Lectures", []RemoteFolder{{2, ""}, {3, "Week 1"}}},
		{"Lectures/Week 1", []RemoteFolder{{3, ""}}},
		{"", []RemoteFolder{{1, ""}, {2, "Lectures"}, {3, "Lectures/Week 1"}, {4, "Tutorials"}, {5, "LecturesOld"}}},
		{"Missing", []RemoteFolder{}},
	}
	for _, tt := range tests {
		t.Run(tt.tracked, func(t *testing.T) {
			got := MatchFolders(folders, tt.tracked)
			if len(got) != len(tt.want) {
				t.Fatalf("MatchFolders() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"notes.pdf", "notes.pdf"},
		{"  spaced.pdf\t", "spaced.pdf"},
		{"a/b\\c.pdf", "a_b_c.pdf"},
		{"nul\x00.pdf", "nul_.pdf"},
		{"..", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		checkStringEqual(t, tt.in, NormalizeFilename(tt.in), tt.want)
	}
}

func TestNewFolderMap(t *testing.T) {
	base := t.TempDir()
	fm, err := NewFolderMap(testBase, config.FolderMap{
		URL:  "https://canvas.nus.edu.sg/courses/38518/files/folder/Lecture%20Notes",
		Path: "cs2040s",
	}, base)
	if err != nil {
		t.Fatalf("NewFolderMap() error = %v", err)
	}
	if fm.CourseID != 38518 {
		t.Errorf("CourseID = %d, want 38518", fm.CourseID)
	}
	checkStringEqual(t, "RemoteDir", fm.RemoteDir, "Lecture Notes")
	checkStringEqual(t, "URL", fm.URL, "https://canvas.nus.edu.sg/courses/38518/files/folder/Lecture Notes")
	checkStringEqual(t, "LocalDir", fm.LocalDir(), filepath.Join(base, "cs2040s"))
	if !fm.ParentExists() {
		t.Error("ParentExists() should be true for a temp dir base")
	}

	_, err = NewFolderMap(testBase, config.FolderMap{URL: "https://canvas.nus.edu.sg/courses/x", Path: "a"}, "")
	var invalid *canvas.InvalidTrackingURLError
	if !errors.As(err, &invalid) {
		t.Errorf("expected *InvalidTrackingURLError, got %v", err)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	checkStringEqual(t, "~", ExpandTilde("~"), home)
	checkStringEqual(t, "~/school", ExpandTilde("~/school"), filepath.Join(home, "school"))
	checkStringEqual(t, "abs", ExpandTilde("/srv/school"), "/srv/school")
	checkStringEqual(t, "~user", ExpandTilde("~user/x"), "~user/x")
}

func TestUpdates_FetchOnly(t *testing.T) {
	api := lecturesAPI()
	local := filepath.Join(t.TempDir(), "lectures")
	fm := mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures", local)

	updates, err := NewSyncer(api, Options{}).Updates(context.Background(), fm, false)
	if err != nil {
		t.Fatalf("Updates() error = %v", err)
	}

	var paths []string
	for _, u := range updates {
		if u.Download != nil {
			t.Errorf("fetch-only update %q has a download", u.RemotePath)
		}
		paths = append(paths, u.RemotePath)
	}
	want := []string{"overview.pdf", "Week 1/intro.pdf", "Week 1/a_b.pdf"}
	if strings.Join(paths, "|") != strings.Join(want, "|") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	if _, err := os.Stat(local); !os.IsNotExist(err) {
		t.Error("fetch-only must not create the local directory")
	}
}

func TestUpdates_SkipsExistingAndPreparesDownloads(t *testing.T) {
	api := lecturesAPI()
	local := filepath.Join(t.TempDir(), "lectures")
	if err := os.MkdirAll(filepath.Join(local, "Week 1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(local, "Week 1", "intro.pdf"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	fm := mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures", local)

	updates, err := NewSyncer(api, Options{}).Updates(context.Background(), fm, true)
	if err != nil {
		t.Fatalf("Updates() error = %v", err)
	}
	checkIntEqual(t, "updates", len(updates), 2)
	for _, u := range updates {
		if u.Download == nil {
			t.Fatalf("update %q missing download", u.RemotePath)
		}
	}
	checkStringEqual(t, "target", updates[1].Download.Target, filepath.Join(local, "Week 1", "a_b.pdf"))
	checkStringEqual(t, "url", updates[0].Download.URL, "https://dl/overview")
}

func TestUpdates_Errors(t *testing.T) {
	t.Run("missing parent", func(t *testing.T) {
		fm := mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures",
			filepath.Join(t.TempDir(), "no", "such", "dir"))
		_, err := NewSyncer(lecturesAPI(), Options{}).Updates(context.Background(), fm, false)
		if !errors.Is(err, canvas.ErrDownloadNoParentDir) {
			t.Errorf("expected ErrDownloadNoParentDir, got %v", err)
		}
	})

	t.Run("no matching folders", func(t *testing.T) {
		fm := mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Nope", filepath.Join(t.TempDir(), "x"))
		_, err := NewSyncer(lecturesAPI(), Options{}).Updates(context.Background(), fm, false)
		var nf *canvas.NoFoldersFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected *NoFoldersFoundError, got %v", err)
		}
		checkStringEqual(t, "url", nf.URL, "https://canvas.nus.edu.sg/courses/38518/files/folder/Nope")
	})

	t.Run("folders request fails", func(t *testing.T) {
		api := lecturesAPI()
		api.foldersErr = canvas.ErrInvalidToken
		fm := mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures", filepath.Join(t.TempDir(), "x"))
		_, err := NewSyncer(api, Options{}).Updates(context.Background(), fm, false)
		if !errors.Is(err, canvas.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestUpdates_FileConcurrencyBound(t *testing.T) {
	api := &fakeAPI{
		folders: map[int64][]models.Folder{1: {}},
		files:   map[int64][]models.File{},
	}
	for i := int64(1); i <= 40; i++ {
		api.folders[1] = append(api.folders[1], folder(i, "course files/F"+string(rune('A'+i%26))))
	}
	fm := mustFolderMap(t, "https://canvas.nus.edu.sg/courses/1/files/folder/", filepath.Join(t.TempDir(), "all"))

	if _, err := NewSyncer(api, Options{FileConcurrency: 3}).Updates(context.Background(), fm, false); err != nil {
		t.Fatalf("Updates() error = %v", err)
	}
	if got := api.maxInFlight.Load(); got > 3 {
		t.Errorf("max in-flight listings = %d, want <= 3", got)
	}
}

func TestRun_FetchSummary(t *testing.T) {
	api := lecturesAPI()
	api.folders[100] = []models.Folder{folder(50, "course files/Slides")}
	api.files[50] = []models.File{file("s1.pdf", "https://dl/s1")}
	api.courses = append(api.courses, models.CourseSummary{ID: 100, Name: "CS1010"})

	dir := t.TempDir()
	maps := []FolderMap{
		mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures/Week%201", filepath.Join(dir, "w1")),
		mustFolderMap(t, "https://canvas.nus.edu.sg/courses/100/files/folder/Slides", filepath.Join(dir, "slides")),
	}

	var out bytes.Buffer
	report, err := NewSyncer(api, Options{Out: &out}).Run(context.Background(), maps, false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	checkIntEqual(t, "updates", len(report.Updates), 3)
	checkIntEqual(t, "downloaded", report.Downloaded, 0)

	text := out.String()
	if !strings.HasPrefix(text, "Syncing 2 folders...\n") {
		t.Errorf("output should start with the folder count: %q", text)
	}
	// CS1010 sorts before CS2040S
	if i, j := strings.Index(text, "CS1010"), strings.Index(text, "CS2040S"); i < 0 || j < 0 || i > j {
		t.Errorf("courses not sorted by name: %q", text)
	}
	for _, want := range []string{"+ s1.pdf", "+ intro.pdf", "+ a_b.pdf", "! Fetch only. Nothing downloaded."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q: %q", want, text)
		}
	}
	if len(api.downloaded) != 0 {
		t.Errorf("fetch downloaded %v", api.downloaded)
	}
}

func TestRun_UpToDate(t *testing.T) {
	api := lecturesAPI()
	local := filepath.Join(t.TempDir(), "t")
	if err := os.MkdirAll(local, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(local, "t1.pdf"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	maps := []FolderMap{mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Tutorials", local)}

	var out bytes.Buffer
	if _, err := NewSyncer(api, Options{Out: &out}).Run(context.Background(), maps, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No new files found. All up to date!") {
		t.Errorf("output = %q", out.String())
	}
	if strings.Contains(out.String(), "Fetch only") {
		t.Errorf("fetch notice printed with no updates: %q", out.String())
	}
}

func TestRun_PullDownloadsAndAggregatesErrors(t *testing.T) {
	api := lecturesAPI()
	api.downloadErr = map[string]error{
		"https://dl/intro": errors.New("connection reset"),
		"https://dl/ab":    errors.New("disk full"),
	}
	local := filepath.Join(t.TempDir(), "lectures")
	maps := []FolderMap{mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures", local)}

	var out bytes.Buffer
	report, err := NewSyncer(api, Options{Out: &out}).Run(context.Background(), maps, true)
	if err == nil {
		t.Fatal("expected aggregated download error")
	}
	for _, want := range []string{"connection reset", "disk full"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
	checkIntEqual(t, "downloaded", report.Downloaded, 1)
	if _, statErr := os.Stat(filepath.Join(local, "overview.pdf")); statErr != nil {
		t.Errorf("overview.pdf not downloaded: %v", statErr)
	}
	if strings.Contains(out.String(), "Fetch only") {
		t.Errorf("pull printed the fetch notice: %q", out.String())
	}
}

func TestRun_UnknownCourseName(t *testing.T) {
	api := lecturesAPI()
	api.courses = nil
	maps := []FolderMap{mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Tutorials", filepath.Join(t.TempDir(), "t"))}

	var out bytes.Buffer
	if _, err := NewSyncer(api, Options{Out: &out}).Run(context.Background(), maps, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Error: failed to fetch course with id 38518") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_FirstMapErrorAborts(t *testing.T) {
	api := lecturesAPI()
	maps := []FolderMap{mustFolderMap(t, "https://canvas.nus.edu.sg/courses/38518/files/folder/Nope", filepath.Join(t.TempDir(), "n"))}

	var out bytes.Buffer
	_, err := NewSyncer(api, Options{Out: &out}).Run(context.Background(), maps, false)
	var nf *canvas.NoFoldersFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NoFoldersFoundError, got %v", err)
	}
	if strings.Contains(out.String(), "+") {
		t.Errorf("no summary expected after failure: %q", out.String())
	}
}

func TestLoadFolderMaps(t *testing.T) {
	cfg := &config.Config{
		Canvas: config.CanvasConfig{BaseURL: testBase},
		Sync: config.SyncConfig{
			BasePath: "/srv/school",
			Folders: []config.FolderMap{
				{URL: "https://canvas.nus.edu.sg/courses/1/files/folder/A", Path: "a"},
				{URL: "https://canvas.nus.edu.sg/courses/2/files/folder/B", Path: "b"},
			},
		},
	}
	maps, err := LoadFolderMaps(cfg)
	if err != nil {
		t.Fatalf("LoadFolderMaps() error = %v", err)
	}
	checkIntEqual(t, "len", len(maps), 2)
	checkStringEqual(t, "LocalDir", maps[1].LocalDir(), "/srv/school/b")

	cfg.Sync.Folders = append(cfg.Sync.Folders, config.FolderMap{URL: "bad", Path: "c"})
	if _, err := LoadFolderMaps(cfg); err == nil || !strings.Contains(err.Error(), "sync.folders[2]") {
		t.Errorf("expected indexed error, got %v", err)
	}
}
