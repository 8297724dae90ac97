// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

/*
Package config loads configuration for the console server and the canvas CLI.

Sources are layered with koanf, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, ./config.yaml, /etc/canvas-console/config.yaml,
    or the per-user file returned by UserConfigPath
 3. Environment variables, mapped explicitly in envMappings

A .env file (./.env or ../.env, or DOTENV_PATH) is loaded into the process
environment first with godotenv, so ADMIN_TOKEN can live there.

Example config.yaml:

	canvas:
	  base_url: https://canvas.nus.edu.sg
	  token: "21450~..."
	  account_id: 81259
	sync:
	  base_path: ~/school
	  folders:
	    - url: https://canvas.nus.edu.sg/courses/38518/files/folder/Lectures
	      path: cs2040s/lectures

The CLI writes the token back with SetToken, which keeps the rest of the file.
*/
package config
