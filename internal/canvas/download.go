// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package canvas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/metrics"
)

// Download fetches rawURL without credentials (Canvas download URLs carry
// their own verifier) and streams it to localPath. When localPath already
// holds a file, the name gets a _(n) suffix. It returns the path written
// and the byte count.
func (c *Client) Download(ctx context.Context, rawURL, localPath string) (written string, n int64, err error) {
	start := time.Now()
	status := 0
	defer func() {
		metrics.RecordCanvasRequest("download", status, time.Since(start), err)
		metrics.RecordDownload(n, err)
	}()

	if err = checkParentDir(localPath); err != nil {
		return "", 0, err
	}
	target := FreePath(localPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to download from url %s: %w", redactURL(rawURL), err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if status < 200 || status > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err = newAPIError(status, redactURL(rawURL), body)
		return "", 0, err
	}

	n, err = writeFile(target, resp.Body)
	if err != nil {
		return "", n, err
	}

	logging.Ctx(ctx).Debug().
		Str("path", target).
		Int64("bytes", n).
		Dur("duration", time.Since(start)).
		Msg("File downloaded")
	return target, n, nil
}

// writeFile streams r to path and removes the partial file on failure.
func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return n, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return n, nil
}

func checkParentDir(path string) error {
	parent := filepath.Dir(path)
	if parent == "." || parent == "" {
		return nil
	}
	info, err := os.Stat(parent)
	if err != nil || !info.IsDir() {
		return &DownloadTargetError{Path: path}
	}
	return nil
}

// FreePath returns path if no regular file exists there, otherwise the
// first of path_(1), path_(2), ... that is free. The suffix goes after the
// full base name, extension included: notes.pdf -> notes.pdf_(1).
func FreePath(path string) string {
	if !isFile(path) {
		return path
	}
	dir, base := filepath.Split(path)
	for idx := 1; ; idx++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_(%d)", base, idx))
		if !isFile(candidate) {
			return candidate
		}
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
