// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

/*
Package supervisor runs the long-lived services of the console server under
a suture v4 supervisor tree.

The tree has two layers so that a crashing maintenance job never takes the
HTTP listener down with it:

	root ("canvas-console")
	├── maintenance ("maintenance-layer")
	│   └── SessionJanitor
	└── api ("api-layer")
	    └── HTTPService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through sutureslog, which writes to the
process zerolog logger via logging.NewSlogLogger.

Usage in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddMaintenanceService(services.NewSessionJanitor(console.Sessions(), time.Minute))
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
