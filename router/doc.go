// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls server.

# Route Registration

	mux := router.NewRouter(db, cfg, renderer)

# Endpoints

Operational:

	GET /health
	GET /metrics

Public:

	GET /                - Latest published questions
	GET /{id}/           - Question detail with voting form
	GET /{id}/results/   - Vote tallies
	    /{id}/vote/      - Cast a vote

Admin (requires X-Admin-Key):

	GET    /admin/questions
	POST   /admin/questions
	GET    /admin/questions/{id}
	PUT    /admin/questions/{id}
	DELETE /admin/questions/{id}
	POST   /admin/questions/{id}/choices
	GET    /admin/choices/{id}
	PUT    /admin/choices/{id}
	DELETE /admin/choices/{id}

Every route except /health and /metrics is wrapped with request logging
and Prometheus instrumentation labelled by its pattern.
*/
package router
