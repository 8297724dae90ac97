// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Canvas   CanvasConfig   `koanf:"canvas"`
	Server   ServerConfig   `koanf:"server"`
	Console  ConsoleConfig  `koanf:"console"`
	Security SecurityConfig `koanf:"security"`
	Sync     SyncConfig     `koanf:"sync"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CanvasConfig describes the Canvas instance and the admin credentials.
type CanvasConfig struct {
	// BaseURL is the Canvas host, e.g. https://canvas.nus.edu.sg. The /api/v1
	// prefix is added by the client.
	BaseURL string `koanf:"base_url"`

	// Token is the access token used by the CLI and the admin API when the
	// caller does not supply one. Also read from ADMIN_TOKEN.
	Token string `koanf:"token"`

	// AccountID is the account new courses are created under.
	AccountID int64 `koanf:"account_id"`

	// PerPage is the page size for course listings (admin API and harness).
	PerPage int `koanf:"per_page"`

	// Timeout bounds every Canvas request.
	Timeout time.Duration `koanf:"timeout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ConsoleConfig holds browser console settings.
type ConsoleConfig struct {
	// SessionSecret signs the session cookie. A random secret is generated at
	// startup when empty, which invalidates sessions on restart.
	SessionSecret string `koanf:"session_secret"`

	// SessionMaxAge is the lifetime of the console session cookie.
	SessionMaxAge time.Duration `koanf:"session_max_age"`

	// CoursesPerPage is the per_page used by the course browser.
	CoursesPerPage int `koanf:"courses_per_page"`

	// SecureCookie sets the Secure attribute on the session cookie.
	SecureCookie bool `koanf:"secure_cookie"`
}

// SecurityConfig holds cross-origin settings.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`
}

// SyncConfig describes the tracked folders of the sync tool.
type SyncConfig struct {
	// BasePath is prepended to every folder map path. A leading ~ is expanded.
	BasePath string `koanf:"base_path"`

	// Folders lists the tracked (Canvas folder URL -> local path) pairs.
	Folders []FolderMap `koanf:"folders"`

	// FolderConcurrency bounds how many folder maps are resolved at once.
	FolderConcurrency int `koanf:"folder_concurrency"`

	// FileConcurrency bounds how many folder file listings are in flight per map.
	FileConcurrency int `koanf:"file_concurrency"`
}

// FolderMap is one tracked folder as written in the config file.
type FolderMap struct {
	// URL is the user-facing folder page, e.g.
	// https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures
	URL string `koanf:"url"`

	// Path is the local directory that mirrors the folder.
	Path string `koanf:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// Load loads configuration from the default locations.
// See LoadFrom for the layering rules.
func Load() (*Config, error) {
	return LoadFrom("")
}
