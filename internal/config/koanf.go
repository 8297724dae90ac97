// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigPathEnvVar overrides the config file location.
	ConfigPathEnvVar = "CONFIG_PATH"

	// DotEnvPathEnvVar overrides the .env file location.
	DotEnvPathEnvVar = "DOTENV_PATH"

	// AppName names the per-user config directory.
	AppName = "canvas-sync"
)

// DefaultConfigPaths lists the config files searched, in priority order,
// after CONFIG_PATH and before the per-user config file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/canvas-console/config.yaml",
}

// DefaultDotEnvPaths lists the .env files searched when DOTENV_PATH is unset.
// The harness keeps its ADMIN_TOKEN one directory up, next to the repo root.
var DefaultDotEnvPaths = []string{
	".env",
	"../.env",
}

func defaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			BaseURL:   "https://canvas.nus.edu.sg",
			AccountID: 0,
			PerPage:   200,
			Timeout:   30 * time.Second,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Console: ConsoleConfig{
			SessionMaxAge:  12 * time.Hour,
			CoursesPerPage: 420,
		},
		Security: SecurityConfig{
			CORSOrigins: []string{},
		},
		Sync: SyncConfig{
			Folders:           []FolderMap{},
			FolderConcurrency: 5,
			FileConcurrency:   10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadFrom loads configuration with layered sources, highest priority last:
//  1. Built-in defaults
//  2. YAML config file: path if non-empty, otherwise the first file found by
//     findConfigFile (optional)
//  3. Environment variables, including those from an optional .env file
//
// A .env file never overrides variables already present in the environment.
func LoadFrom(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads the first .env file that exists into the process environment.
func loadDotEnv() error {
	paths := DefaultDotEnvPaths
	if p := os.Getenv(DotEnvPathEnvVar); p != "" {
		paths = []string{p}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		return nil
	}
	return nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if userPath, err := UserConfigPath(); err == nil {
		if _, err := os.Stat(userPath); err == nil {
			return userPath
		}
	}

	return ""
}

// UserConfigPath returns the per-user config file, e.g.
// ~/.config/canvas-sync/config.yaml on Linux.
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to get config path: %w", err)
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

// ResolvePath returns path, or the config file Load would pick, or the
// per-user config file when nothing exists yet.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if found := findConfigFile(); found != "" {
		return found, nil
	}
	return UserConfigPath()
}

// SetToken writes canvas.token into the YAML file at path, preserving the
// rest of the file. The file and its directory are created when missing.
func SetToken(path, token string) error {
	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Set("canvas.token", token); err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}

	out, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// sliceConfigPaths are parsed as comma-separated lists when they come from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config paths.
var envMappings = map[string]string{
	"canvas_base_url":   "canvas.base_url",
	"canvas_token":      "canvas.token",
	"admin_token":       "canvas.token",
	"canvas_account_id": "canvas.account_id",
	"account_id":        "canvas.account_id",
	"canvas_per_page":   "canvas.per_page",
	"canvas_timeout":    "canvas.timeout",

	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"console_session_secret":   "console.session_secret",
	"console_session_max_age":  "console.session_max_age",
	"console_courses_per_page": "console.courses_per_page",
	"console_secure_cookie":    "console.secure_cookie",

	"cors_origins": "security.cors_origins",

	"sync_base_path":          "sync.base_path",
	"sync_folder_concurrency": "sync.folder_concurrency",
	"sync_file_concurrency":   "sync.file_concurrency",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to its config path.
// Unmapped variables return "" and are skipped so that unrelated
// environment does not leak into the config.
//
// Examples:
//   - CANVAS_BASE_URL -> canvas.base_url
//   - ADMIN_TOKEN -> canvas.token
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
