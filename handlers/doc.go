// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polls server.

# Handler Types

  - PollHandler: public HTML pages and voting
  - AdminHandler: JSON CRUD over questions and choices

	pollHandler := handlers.NewPollHandler(db, renderer, metrics)
	adminHandler := handlers.NewAdminHandler(db)

# Public Pages

	GET /                 → Index (latest 5 published questions)
	GET /{id}/            → Detail (voting form)
	GET /{id}/results/    → Results (vote tallies)
	    /{id}/vote/       → Vote (form field "choice")

A question whose pub_date is in the future does not exist as far as these
routes are concerned: all of them answer 404.

# Voting

Vote increments the chosen choice with a single UPDATE that also checks
the choice belongs to the question. On success it redirects (302) to the
results page, which shows a one-time notice. An unknown or missing choice
re-renders the detail page with an inline error and status 200.

# Admin API

Admin routes are wrapped in middleware.WithAdminKey by the router. Vote
counts are returned but never accepted as input. Inline choices on
PUT /admin/questions/{id} replace the question's choice set.
*/
package handlers
