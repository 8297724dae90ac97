// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/models"
)

func runUser(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	profile, err := client.Profile(ctx)
	if err != nil {
		return err
	}
	printUser(cmd.OutOrStdout(), profile)
	return nil
}

func printUser(w io.Writer, p *models.Profile) {
	fmt.Fprintf(w, `%s

user data
  * canvas id: %d
  * name:      %s
  * email:     %s
  * matric:    %s
`, canvas.BinaryName, p.ID, p.Name, p.PrimaryEmail, p.IntegrationID)
}
