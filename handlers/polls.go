// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/danielhkuo/premios-polls/middleware"
	"github.com/danielhkuo/premios-polls/models"
	"github.com/danielhkuo/premios-polls/views"
)

const notFoundMessage = "No question matches the given query."

type PollHandler struct {
	db      *sql.DB
	views   *views.Renderer
	metrics *middleware.Metrics
	now     func() time.Time
}

// NewPollHandler builds the public handlers. metrics may be nil.
func NewPollHandler(db *sql.DB, renderer *views.Renderer, metrics *middleware.Metrics) *PollHandler {
	return &PollHandler{
		db:      db,
		views:   renderer,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Index handles GET /
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := listPublishedQuestions(r.Context(), h.db, h.now(), LatestQuestionsLimit)
	if err != nil {
		middleware.Logger(r).Error("failed to list questions", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.views.Render(w, http.StatusOK, views.PageIndex, views.IndexPage{Questions: questions})
}

// Detail handles GET /{id}/
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadPublished(w, r)
	if !ok {
		return
	}

	h.views.Render(w, http.StatusOK, views.PageDetail, views.DetailPage{
		Question: question,
		Choices:  choices,
	})
}

// Results handles GET /{id}/results/
func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadPublished(w, r)
	if !ok {
		return
	}

	page := views.ResultsPage{Question: question, Choices: choices}
	if consumeVoteNotice(w, r, question.ID) {
		page.Message = views.VoteRecordedMessage
	}

	h.views.Render(w, http.StatusOK, views.PageResults, page)
}

// loadPublished fetches the question named in the path with its choices.
// It writes the 404/500 response itself and reports false in that case.
func (h *PollHandler) loadPublished(w http.ResponseWriter, r *http.Request) (models.Question, []models.Choice, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		h.views.NotFound(w, notFoundMessage)
		return models.Question{}, nil, false
	}

	question, err := getPublishedQuestion(r.Context(), h.db, id, h.now())
	if errors.Is(err, models.ErrNotFound) {
		h.views.NotFound(w, notFoundMessage)
		return models.Question{}, nil, false
	}
	if err != nil {
		middleware.Logger(r).Error("failed to query question", "question_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return models.Question{}, nil, false
	}

	choices, err := listChoices(r.Context(), h.db, question.ID)
	if err != nil {
		middleware.Logger(r).Error("failed to query choices", "question_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return models.Question{}, nil, false
	}

	return question, choices, true
}
