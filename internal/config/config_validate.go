// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package config

import (
	"fmt"
	"net/url"
	"slices"
)

// Validate checks that required configuration is present and valid.
// An empty Canvas token is allowed: the console takes the token from the
// browser, and the CLI reports ErrEmptyToken itself.
func (c *Config) Validate() error {
	if err := c.validateCanvas(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateConsole(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateCanvas() error {
	if c.Canvas.BaseURL == "" {
		return fmt.Errorf("CANVAS_BASE_URL is required")
	}
	if err := validateHTTPURL(c.Canvas.BaseURL, "CANVAS_BASE_URL"); err != nil {
		return fmt.Errorf("CANVAS_BASE_URL is invalid: %w", err)
	}
	if c.Canvas.AccountID < 0 {
		return fmt.Errorf("CANVAS_ACCOUNT_ID must not be negative")
	}
	if c.Canvas.PerPage < 1 || c.Canvas.PerPage > 1000 {
		return fmt.Errorf("CANVAS_PER_PAGE must be between 1 and 1000")
	}
	if c.Canvas.Timeout <= 0 {
		return fmt.Errorf("CANVAS_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateConsole() error {
	if c.Console.SessionMaxAge <= 0 {
		return fmt.Errorf("CONSOLE_SESSION_MAX_AGE must be positive")
	}
	if c.Console.CoursesPerPage < 1 {
		return fmt.Errorf("CONSOLE_COURSES_PER_PAGE must be at least 1")
	}
	if c.Console.SessionSecret != "" && len(c.Console.SessionSecret) < 32 {
		return fmt.Errorf("CONSOLE_SESSION_SECRET must be at least 32 characters")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.FolderConcurrency < 1 {
		return fmt.Errorf("SYNC_FOLDER_CONCURRENCY must be at least 1")
	}
	if c.Sync.FileConcurrency < 1 {
		return fmt.Errorf("SYNC_FILE_CONCURRENCY must be at least 1")
	}
	for i, fm := range c.Sync.Folders {
		if fm.URL == "" {
			return fmt.Errorf("sync.folders[%d].url is required", i)
		}
		if fm.Path == "" {
			return fmt.Errorf("sync.folders[%d].path is required", i)
		}
	}
	return nil
}

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

var validLogFormats = []string{"json", "console"}

func (c *Config) validateLogging() error {
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !slices.Contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is "*".
func (c *Config) HasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

// validateHTTPURL validates that a URL is an http(s) base URL with a host
// and no path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	// trailing slash is fine
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
