// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/canvas-console/internal/harness"
	"github.com/tomtom215/canvas-console/internal/models"
)

var seedPrefix string

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List, create and delete the token user's courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	Args:  cobra.NoArgs,
	RunE: withHarness(func(ctx context.Context, cmd *cobra.Command, h *harness.Harness, _ []string) error {
		courses, err := h.List(ctx)
		if err != nil {
			return err
		}
		printCourses(cmd.OutOrStdout(), courses)
		return nil
	}),
}

var coursesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a published course",
	Args:  cobra.ExactArgs(1),
	RunE: withHarness(func(ctx context.Context, cmd *cobra.Command, h *harness.Harness, args []string) error {
		created, err := h.CreateAll(ctx, args)
		if err != nil {
			return err
		}
		printCourses(cmd.OutOrStdout(), created)
		return nil
	}),
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course",
	Args:  cobra.ExactArgs(1),
	RunE: withHarness(func(ctx context.Context, cmd *cobra.Command, h *harness.Harness, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid course id %q", args[0])
		}
		result, err := h.Delete(ctx, id)
		if err != nil {
			return err
		}
		printDeleted(cmd.OutOrStdout(), []models.DeleteResult{result})
		return nil
	}),
}

var coursesDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every course the token can see",
	Args:  cobra.NoArgs,
	RunE: withHarness(func(ctx context.Context, cmd *cobra.Command, h *harness.Harness, _ []string) error {
		results, err := h.Reset(ctx)
		if err != nil {
			return err
		}
		printDeleted(cmd.OutOrStdout(), results)
		return nil
	}),
}

var coursesSeedCmd = &cobra.Command{
	Use:   "seed <n>",
	Short: "Create n courses named <prefix>0 .. <prefix>n-1",
	Args:  cobra.ExactArgs(1),
	RunE: withHarness(func(ctx context.Context, cmd *cobra.Command, h *harness.Harness, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid course count %q", args[0])
		}
		created, err := h.Seed(ctx, seedPrefix, n)
		if err != nil {
			return err
		}
		printCourses(cmd.OutOrStdout(), created)
		return nil
	}),
}

var coursesExperimentsCmd = &cobra.Command{
	Use:   "experiments",
	Short: "Create the experiment courses",
	Args:  cobra.NoArgs,
	RunE: withHarness(func(ctx context.Context, cmd *cobra.Command, h *harness.Harness, _ []string) error {
		created, err := h.Experiments(ctx)
		if err != nil {
			return err
		}
		printCourses(cmd.OutOrStdout(), created)
		return nil
	}),
}

func init() {
	coursesSeedCmd.Flags().StringVar(&seedPrefix, "prefix", "Course ", "Name prefix of seeded courses")

	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesCreateCmd)
	coursesCmd.AddCommand(coursesDeleteCmd)
	coursesCmd.AddCommand(coursesDeleteAllCmd)
	coursesCmd.AddCommand(coursesSeedCmd)
	coursesCmd.AddCommand(coursesExperimentsCmd)
}

type harnessFunc func(ctx context.Context, cmd *cobra.Command, h *harness.Harness, args []string) error

// withHarness loads the config and hands a harness over the configured
// token to fn.
func withHarness(fn harnessFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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
		return fn(ctx, cmd, harness.New(client, cfg.Canvas.AccountID, cfg.Canvas.PerPage), args)
	}
}

func printCourses(w io.Writer, courses []models.CourseSummary) {
	if len(courses) == 0 {
		fmt.Fprintln(w, "No courses.")
		return
	}
	for _, c := range courses {
		fmt.Fprintf(w, "%8d  %s\n", c.ID, c.Name)
	}
}

func printDeleted(w io.Writer, results []models.DeleteResult) {
	fmt.Fprintf(w, "Deleted %d courses.\n", len(results))
}
