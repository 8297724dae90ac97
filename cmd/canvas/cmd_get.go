// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var getOut string

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Save the raw response of an authorized GET to a file",
	Long: `Save the raw response of an authorized GET to a file.

A path without a scheme is taken relative to the API root, so
"courses?per_page=5" fetches <base_url>/api/v1/courses?per_page=5.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getOut, "out", "o", "tmp.json", "Output file")
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	target := args[0]
	if !strings.Contains(target, "://") {
		target = client.APIURL(strings.TrimPrefix(target, "/"))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	body, err := client.Raw(ctx, target)
	if err != nil {
		return err
	}
	if err := os.WriteFile(getOut, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", getOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(body), getOut)
	return nil
}
