// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package api provides the HTTP interface of CareerPath.

Routes are served by a chi router (see NewRouter). Versioned endpoints answer
with the standard envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Endpoints:

	GET  /api/v1/recommendations?username=   ranked careers for a user
	GET  /api/v1/recommendations/stats      engine counters
	GET  /api/v1/courses                    course catalog
	POST /api/v1/selections                 save a user's selected subjects
	GET  /api/v1/health/live                liveness
	GET  /api/v1/health/ready               store reachability
	GET  /metrics                           Prometheus exposition

Two unversioned routes keep older clients working: /career_recommendation and
/courses return bare JSON arrays and report failures as {"detail": "..."}.

Error mapping for recommendations: invalid or missing username is 400, missing
or degenerate user data is 404, an unreachable store or open circuit breaker
is 503, a timeout is 504 and scoring failures are 500.
*/
package api
