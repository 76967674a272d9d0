// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielhkuo/premios-polls/middleware"
	"github.com/danielhkuo/premios-polls/models"
	"github.com/danielhkuo/premios-polls/views"
)

// voteNoticeCookie carries the "vote recorded" notice across the redirect
const voteNoticeCookie = "vote_notice"

const maxVoteFormBytes = 64 << 10

// Vote handles /{id}/vote/
// Any method is accepted; without a submitted choice the detail page is
// shown again with an error.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.views.NotFound(w, notFoundMessage)
		return
	}

	question, err := getPublishedQuestion(r.Context(), h.db, id, h.now())
	if errors.Is(err, models.ErrNotFound) {
		h.views.NotFound(w, notFoundMessage)
		return
	}
	if err != nil {
		middleware.Logger(r).Error("failed to query question", "question_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxVoteFormBytes)

	recorded := false
	choiceID, parseErr := strconv.ParseInt(r.PostFormValue("choice"), 10, 64)
	if parseErr == nil {
		recorded, err = addVote(r.Context(), h.db, question.ID, choiceID)
		if err != nil {
			middleware.Logger(r).Error("failed to record vote", "question_id", question.ID, "choice_id", choiceID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	if !recorded {
		choices, err := listChoices(r.Context(), h.db, question.ID)
		if err != nil {
			middleware.Logger(r).Error("failed to query choices", "question_id", question.ID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		middleware.Logger(r).Info("invalid choice submitted", "question_id", question.ID, "choice", r.PostFormValue("choice"))
		h.views.Render(w, http.StatusOK, views.PageDetail, views.DetailPage{
			Question:     question,
			Choices:      choices,
			ErrorMessage: views.InvalidChoiceMessage,
		})
		return
	}

	if h.metrics != nil {
		h.metrics.VotesCounter.Inc()
	}
	middleware.Logger(r).Info("vote recorded", "question_id", question.ID, "choice_id", choiceID)

	resultsURL := fmt.Sprintf("/%d/results/", question.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     voteNoticeCookie,
		Value:    strconv.FormatInt(question.ID, 10),
		Path:     resultsURL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, resultsURL, http.StatusFound)
}

// consumeVoteNotice reports whether a vote was just recorded for the
// question and clears the notice so it shows once.
func consumeVoteNotice(w http.ResponseWriter, r *http.Request, questionID int64) bool {
	c, err := r.Cookie(voteNoticeCookie)
	if err != nil {
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     voteNoticeCookie,
		Path:     fmt.Sprintf("/%d/results/", questionID),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Value == strconv.FormatInt(questionID, 10)
}
