// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package sync

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/metrics"
	"github.com/tomtom215/canvas-console/internal/models"
)

// Default fan-out limits.
const (
	DefaultFolderConcurrency = 5
	DefaultFileConcurrency   = 10
	DefaultCoursesPerPage    = 200
)

// Update is a remote file that is missing locally.
type Update struct {
	CourseID uint32
	// RemotePath is the file path relative to the tracked folder.
	RemotePath string
	// Download is set only when the sync downloads.
	Download *Download
}

// Download is one pending (url -> local file) transfer.
type Download struct {
	URL    string
	Target string
}

// Options configures a Syncer. Zero values take the defaults.
type Options struct {
	Out               io.Writer
	FolderConcurrency int
	FileConcurrency   int
	CoursesPerPage    int
}

// Syncer finds and downloads files added to tracked Canvas folders.
type Syncer struct {
	api               canvas.API
	out               io.Writer
	style             styles
	folderConcurrency int
	fileConcurrency   int
	coursesPerPage    int
}

// NewSyncer creates a Syncer over api.
func NewSyncer(api canvas.API, opts Options) *Syncer {
	s := &Syncer{
		api:               api,
		out:               opts.Out,
		folderConcurrency: opts.FolderConcurrency,
		fileConcurrency:   opts.FileConcurrency,
		coursesPerPage:    opts.CoursesPerPage,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.folderConcurrency <= 0 {
		s.folderConcurrency = DefaultFolderConcurrency
	}
	if s.fileConcurrency <= 0 {
		s.fileConcurrency = DefaultFileConcurrency
	}
	if s.coursesPerPage <= 0 {
		s.coursesPerPage = DefaultCoursesPerPage
	}
	s.style = newStyles(s.out)
	return s
}

// Updates lists the files of fm's folder (and its subfolders) that are
// missing locally. With download set, each update carries its transfer
// and the local directories are created.
func (s *Syncer) Updates(ctx context.Context, fm FolderMap, download bool) ([]Update, error) {
	if !fm.ParentExists() {
		return nil, &canvas.DownloadTargetError{Path: fm.LocalDir()}
	}

	folders, err := s.api.CourseFolders(ctx, int64(fm.CourseID))
	if err != nil {
		return nil, err
	}
	matched := MatchFolders(folders, fm.RemoteDir)
	if len(matched) == 0 {
		return nil, &canvas.NoFoldersFoundError{URL: fm.URL}
	}

	listings := make([][]models.File, len(matched))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fileConcurrency)
	for i, folder := range matched {
		g.Go(func() error {
			files, err := s.api.FolderFiles(gctx, folder.ID)
			if err != nil {
				return err
			}
			listings[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var updates []Update
	for i, folder := range matched {
		finalDir := filepath.Join(fm.LocalDir(), filepath.FromSlash(folder.Path))
		for _, file := range listings[i] {
			name := NormalizeFilename(file.Filename)
			if name == "" || file.URL == "" {
				continue
			}
			target := filepath.Join(finalDir, name)
			if isFile(target) {
				continue
			}

			update := Update{
				CourseID:   fm.CourseID,
				RemotePath: joinRemote(folder.Path, name),
			}
			if download {
				if err := os.MkdirAll(finalDir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create %s: %w", finalDir, err)
				}
				update.Download = &Download{URL: file.URL, Target: target}
			}
			updates = append(updates, update)
		}
	}
	return updates, nil
}

// Report summarizes a Run.
type Report struct {
	Updates    []Update
	Downloaded int
	Bytes      int64
}

// Run syncs every folder map. At most FolderConcurrency maps are resolved
// at once and any failure aborts the run before output is written. The
// summary lists updates grouped by course name. Downloads run after the
// summary; their failures are collected and returned together.
func (s *Syncer) Run(ctx context.Context, maps []FolderMap, download bool) (*Report, error) {
	start := time.Now()
	report, err := s.run(ctx, maps, download)
	updates := 0
	if report != nil {
		updates = len(report.Updates)
	}
	metrics.RecordSyncRun(time.Since(start), updates, err)
	return report, err
}

func (s *Syncer) run(ctx context.Context, maps []FolderMap, download bool) (*Report, error) {
	log := logging.Ctx(ctx)
	fmt.Fprintf(s.out, "Syncing %d folders...\n", len(maps))

	perMap := make([][]Update, len(maps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.folderConcurrency)
	for i, fm := range maps {
		g.Go(func() error {
			updates, err := s.Updates(gctx, fm, download)
			if err != nil {
				return err
			}
			perMap[i] = updates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var updates []Update
	for _, u := range perMap {
		updates = append(updates, u...)
	}

	courses, err := s.api.ListCourses(ctx, s.coursesPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	names := make(map[uint32]string, len(courses))
	for _, c := range courses {
		names[uint32(c.ID)] = c.Name
	}
	sortByCourseName(updates, names)

	s.display(updates, names)
	if !download && len(updates) > 0 {
		fmt.Fprintln(s.out, s.style.warn.Render("! Fetch only. Nothing downloaded."))
	}

	report := &Report{Updates: updates}
	if !download {
		return report, nil
	}

	downloaded, bytes, err := s.downloadAll(ctx, updates)
	report.Downloaded = downloaded
	report.Bytes = bytes
	log.Info().
		Int("updates", len(updates)).
		Int("downloaded", downloaded).
		Int64("bytes", bytes).
		Msg("Sync finished")
	return report, err
}

// downloadAll transfers every pending download with at most
// FileConcurrency in flight. Every failure is reported.
func (s *Syncer) downloadAll(ctx context.Context, updates []Update) (int, int64, error) {
	pending := make([]*Download, 0, len(updates))
	for i := range updates {
		if updates[i].Download != nil {
			pending = append(pending, updates[i].Download)
		}
	}

	errs := make([]error, len(pending))
	sizes := make([]int64, len(pending))
	var g errgroup.Group
	g.SetLimit(s.fileConcurrency)
	for i, d := range pending {
		g.Go(func() error {
			_, n, err := s.api.Download(ctx, d.URL, d.Target)
			sizes[i] = n
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	var result *multierror.Error
	downloaded := 0
	var total int64
	for i, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		downloaded++
		total += sizes[i]
	}
	return downloaded, total, result.ErrorOrNil()
}

// sortByCourseName orders updates by course name; courses without a known
// name sort first. The order within a course is kept.
func sortByCourseName(updates []Update, names map[uint32]string) {
	sort.SliceStable(updates, func(i, j int) bool {
		a, aok := names[updates[i].CourseID]
		b, bok := names[updates[j].CourseID]
		if aok != bok {
			return !aok
		}
		return a < b
	})
}

func (s *Syncer) display(updates []Update, names map[uint32]string) {
	if len(updates) == 0 {
		fmt.Fprintln(s.out, "No new files found. All up to date!")
		return
	}

	var prev uint32
	for i, u := range updates {
		if i == 0 || u.CourseID != prev {
			prev = u.CourseID
			if name, ok := names[u.CourseID]; ok {
				fmt.Fprintln(s.out, s.style.course.Render(name))
			} else {
				fmt.Fprintf(s.out, "Error: failed to fetch course with id %d\n", u.CourseID)
			}
		}
		fmt.Fprintf(s.out, "  %s %s\n", s.style.plus.Render("+"), u.RemotePath)
	}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
