// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/config"
)

var configEdit bool

var setTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Store the Canvas access token in the config file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetToken,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the config file path, or open it with --edit",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVarP(&configEdit, "edit", "e", false, "Open the config file in $EDITOR")
}

func runSetToken(cmd *cobra.Command, args []string) error {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return err
	}
	if err := config.SetToken(path, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "New token set! Try running `%s` to verify it.\n", canvas.BinaryName)
	return nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return err
	}
	if !configEdit {
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New("unable to get an editor from $EDITOR")
	}
	c := exec.CommandContext(cmd.Context(), editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
