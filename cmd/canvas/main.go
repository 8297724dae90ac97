// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

// Command canvas is the terminal client: it shows the token's user, keeps
// tracked Canvas folders in sync with local directories, and drives the
// course harness.
//
//	canvas                       # print the token's user data
//	canvas set-token <token>     # store the token in the config file
//	canvas config [--edit]       # print or edit the config file
//	canvas fetch                 # list files missing locally
//	canvas pull                  # download them
//	canvas courses list|create|delete|delete-all|seed|experiments
//	canvas get <url> [--out f]   # save a raw API response
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/config"
	"github.com/tomtom215/canvas-console/internal/logging"
)

var (
	configPath string
	verbose    bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   canvas.BinaryName,
	Short: "Canvas LMS folder sync and course tools",
	Long: `Canvas LMS folder sync and course tools.

Without a subcommand, prints the user the configured token belongs to.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRun:  setupLogging,
	RunE:              runUser,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: config.yaml or the per-user config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Overall operation timeout")

	rootCmd.AddCommand(setTokenCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(getCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging keeps the terminal quiet: only warnings unless --verbose.
func setupLogging(*cobra.Command, []string) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: "console", Timestamp: true})
}

func loadConfig() (*config.Config, error) {
	return config.LoadFrom(configPath)
}

// newClient builds a client for the configured token. An empty token is
// reported with the steps for creating one.
func newClient(cfg *config.Config) (*canvas.Client, error) {
	return canvas.NewClient(canvas.Config{
		BaseURL: cfg.Canvas.BaseURL,
		Token:   cfg.Canvas.Token,
		Timeout: cfg.Canvas.Timeout,
		PerPage: cfg.Canvas.PerPage,
	})
}
