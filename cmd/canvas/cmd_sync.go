// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomtom215/canvas-console/internal/sync"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "List files in tracked folders that are missing locally",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSync(cmd, false)
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download files in tracked folders that are missing locally",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSync(cmd, true)
	},
}

func runSync(cmd *cobra.Command, download bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	maps, err := sync.LoadFolderMaps(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	syncer := sync.NewSyncer(client, sync.Options{
		Out:               cmd.OutOrStdout(),
		FolderConcurrency: cfg.Sync.FolderConcurrency,
		FileConcurrency:   cfg.Sync.FileConcurrency,
		CoursesPerPage:    cfg.Canvas.PerPage,
	})
	_, err = syncer.Run(ctx, maps, download)
	return err
}
