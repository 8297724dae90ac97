// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package sync

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/config"
	"github.com/tomtom215/canvas-console/internal/models"
)

// FolderMap is one tracked Canvas folder and the local directory that
// mirrors it.
type FolderMap struct {
	// URL is the folder page URL, decoded for display.
	URL string

	// CourseID and RemoteDir come from the URL. RemoteDir is relative to the
	// course files root; "" tracks the whole course.
	CourseID  uint32
	RemoteDir string

	localDir string
}

// NewFolderMap resolves a configured folder map against the Canvas base URL
// and the optional base path.
func NewFolderMap(canvasBaseURL string, fm config.FolderMap, basePath string) (FolderMap, error) {
	courseID, remoteDir, err := canvas.ParseFolderURL(canvasBaseURL, fm.URL)
	if err != nil {
		return FolderMap{}, err
	}

	display := fm.URL
	if decoded, err := url.PathUnescape(fm.URL); err == nil {
		display = decoded
	}

	local := fm.Path
	if basePath != "" {
		local = filepath.Join(basePath, fm.Path)
	}

	return FolderMap{
		URL:       display,
		CourseID:  courseID,
		RemoteDir: remoteDir,
		localDir:  ExpandTilde(local),
	}, nil
}

// LoadFolderMaps resolves every folder map in cfg. The first invalid URL
// fails the load.
func LoadFolderMaps(cfg *config.Config) ([]FolderMap, error) {
	maps := make([]FolderMap, 0, len(cfg.Sync.Folders))
	for i, fm := range cfg.Sync.Folders {
		m, err := NewFolderMap(cfg.Canvas.BaseURL, fm, cfg.Sync.BasePath)
		if err != nil {
			return nil, fmt.Errorf("sync.folders[%d]: %w", i, err)
		}
		maps = append(maps, m)
	}
	return maps, nil
}

// LocalDir returns the directory that mirrors the remote folder.
func (fm *FolderMap) LocalDir() string {
	return fm.localDir
}

// ParentExists reports whether the local directory's parent exists. Sync
// creates the tracked directory itself but never its parents.
func (fm *FolderMap) ParentExists() bool {
	info, err := os.Stat(filepath.Dir(fm.localDir))
	return err == nil && info.IsDir()
}

// ExpandTilde replaces a leading ~ with the user's home directory. Paths
// without one, and paths on systems without a home, are returned as is.
func ExpandTilde(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

// RemoteFolder is a Canvas folder inside a tracked directory.
type RemoteFolder struct {
	ID int64
	// Path is relative to the tracked directory, slash separated. The
	// tracked directory itself is "".
	Path string
}

// MatchFolders keeps the folders that are the tracked directory or lie
// under it. An empty tracked directory keeps every folder under the course
// files root.
func MatchFolders(folders []models.Folder, tracked string) []RemoteFolder {
	tracked = strings.Trim(tracked, "/")
	out := make([]RemoteFolder, 0, len(folders))
	for i := range folders {
		dir, ok := folders[i].RemoteDir()
		if !ok {
			continue
		}
		switch {
		case tracked == "":
			out = append(out, RemoteFolder{ID: folders[i].ID, Path: dir})
		case dir == tracked:
			out = append(out, RemoteFolder{ID: folders[i].ID, Path: ""})
		default:
			if rest, found := strings.CutPrefix(dir, tracked+"/"); found {
				out = append(out, RemoteFolder{ID: folders[i].ID, Path: rest})
			}
		}
	}
	return out
}

// NormalizeFilename makes a Canvas filename safe as a single path element:
// path separators and NUL become "_" and surrounding whitespace is trimmed.
// "." and ".." are rejected with "".
func NormalizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// joinRemote joins a remote relative dir and a filename with "/".
func joinRemote(dir, name string) string {
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}
