// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package main is the entry point for the CareerPath server.

CareerPath recommends careers to a user from the subjects they selected and
their thinking-style profile. It serves a JSON API in front of a pluggable
profile store and a recommendation engine with two scoring strategies.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("careerpath")
	├── DataSupervisor ("data-layer")
	│   └── Catalog refresh (warms the career catalog, optional ticker)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Profile store: memory, BadgerDB or Supabase, wrapped with retries,
    a circuit breaker and a catalog cache
 4. Recommendation engine: baseline or graph scoring strategy
 5. Supervisor Tree: catalog refresh and HTTP server services

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8080               # listen port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	STORE_BACKEND=memory         # memory, badger or supabase
	SEED_FILE=seed.yaml          # imported into memory or badger at startup
	SUPABASE_URL=https://<project>.supabase.co
	SUPABASE_KEY=<anon key>
	RECOMMEND_STRATEGY=baseline  # baseline or graph
	RECOMMEND_TOP_K=5
	CATALOG_REFRESH_INTERVAL=0   # 0 disables background refresh

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to HTTP_SHUTDOWN_TIMEOUT, then the store is closed.

# Example Usage

	export STORE_BACKEND=badger
	export BADGER_PATH=/var/lib/careerpath
	export SEED_FILE=/etc/careerpath/seed.yaml
	./careerpath

	curl 'http://localhost:8080/api/v1/recommendations?username=ada'
*/
package main
