// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package supervisor provides suture-based process supervision for CareerPath.

The tree has two layers under one root:

  - data: background work against the profile store (catalog refresh)
  - api: the HTTP server

A failing catalog refresh is restarted by the data layer without touching the
HTTP server, and a crashed listener is restarted without dropping the warm
catalog cache. Supervisor events are logged through sutureslog, which the
caller wires to zerolog with logging.NewSlogHandler.

	tree, err := supervisor.NewSupervisorTree(slog.New(logging.NewSlogHandler(logger)), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCatalogRefreshService(store, time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 15*time.Second, logger))
	err = tree.Serve(ctx)
*/
package supervisor
