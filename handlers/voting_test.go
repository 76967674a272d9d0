// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/premios-polls/testutil"
	"github.com/danielhkuo/premios-polls/views"
)

func vote(h *PollHandler, req *http.Request, questionID int64) *httptest.ResponseRecorder {
	req.SetPathValue("id", strconv.FormatInt(questionID, 10))
	w := httptest.NewRecorder()
	h.Vote(w, req)
	return w
}

func voteFor(h *PollHandler, questionID int64, choice string) *httptest.ResponseRecorder {
	req := testutil.MakeFormRequest(fmt.Sprintf("/%d/vote/", questionID), url.Values{"choice": {choice}})
	return vote(h, req, questionID)
}

func TestVote_Success(t *testing.T) {
	h, db := newPollHandler(t)
	questionID := testutil.CreateTestQuestion(t, db, "past question", -5)
	choiceID := testutil.CreateTestChoice(t, db, questionID, "available choice")

	w := voteFor(h, questionID, strconv.FormatInt(choiceID, 10))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/%d/results/", questionID), w.Header().Get("Location"))
	assert.Equal(t, int64(1), testutil.Votes(t, db, choiceID))
	assert.Equal(t, float64(1), promtest.ToFloat64(h.metrics.VotesCounter))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, voteNoticeCookie, cookies[0].Name)
	assert.Equal(t, strconv.FormatInt(questionID, 10), cookies[0].Value)
	assert.Equal(t, fmt.Sprintf("/%d/results/", questionID), cookies[0].Path)
}

func TestVote_RepeatedVotesAccumulate(t *testing.T) {
	h, db := newPollHandler(t)
	questionID := testutil.CreateTestQuestion(t, db, "again", -1)
	choiceID := testutil.CreateTestChoice(t, db, questionID, "me")

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusFound, voteFor(h, questionID, strconv.FormatInt(choiceID, 10)).Code)
	}

	assert.Equal(t, int64(3), testutil.Votes(t, db, choiceID))
}

func TestVote_NonexistentQuestion(t *testing.T) {
	h, _ := newPollHandler(t)

	w := voteFor(h, 999, "1")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), notFoundMessage)
}

func TestVote_GetOnNonexistentQuestion(t *testing.T) {
	h, _ := newPollHandler(t)

	w := vote(h, httptest.NewRequest("GET", "/999/vote/", nil), 999)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVote_FutureQuestion(t *testing.T) {
	h, db := newPollHandler(t)
	questionID := testutil.CreateTestQuestion(t, db, "not yet", 3)
	choiceID := testutil.CreateTestChoice(t, db, questionID, "early bird")

	w := voteFor(h, questionID, strconv.FormatInt(choiceID, 10))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(0), testutil.Votes(t, db, choiceID))
}

func TestVote_InvalidChoice(t *testing.T) {
	h, db := newPollHandler(t)
	questionID := testutil.CreateTestQuestion(t, db, "past question", -5)
	choiceID := testutil.CreateTestChoice(t, db, questionID, "available choice")

	other := testutil.CreateTestQuestion(t, db, "other question", -5)
	otherChoice := testutil.CreateTestChoice(t, db, other, "elsewhere")

	testCases := []struct {
		name   string
		choice string
	}{
		{"nonexistent choice", "999"},
		{"non-numeric choice", "abc"},
		{"empty choice", ""},
		{"choice of another question", strconv.FormatInt(otherChoice, 10)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := voteFor(h, questionID, tc.choice)

			assert.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, views.InvalidChoiceMessage)
			assert.Contains(t, body, "available choice")
			assert.Empty(t, w.Result().Cookies())
		})
	}

	assert.Equal(t, int64(0), testutil.Votes(t, db, choiceID))
	assert.Equal(t, int64(0), testutil.Votes(t, db, otherChoice))
	assert.Equal(t, float64(0), promtest.ToFloat64(h.metrics.VotesCounter))
}

func TestVote_MissingForm(t *testing.T) {
	h, db := newPollHandler(t)
	questionID := testutil.CreateTestQuestion(t, db, "past question", -5)

	w := vote(h, httptest.NewRequest("GET", fmt.Sprintf("/%d/vote/", questionID), nil), questionID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), views.InvalidChoiceMessage)
}

func TestVoteNotice(t *testing.T) {
	h, db := newPollHandler(t)
	questionID := testutil.CreateTestQuestion(t, db, "noticed", -1)
	other := testutil.CreateTestQuestion(t, db, "unnoticed", -1)

	results := func(id int64, cookieValue string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", fmt.Sprintf("/%d/results/", id), nil)
		req.SetPathValue("id", strconv.FormatInt(id, 10))
		if cookieValue != "" {
			req.AddCookie(&http.Cookie{Name: voteNoticeCookie, Value: cookieValue})
		}
		w := httptest.NewRecorder()
		h.Results(w, req)
		return w
	}

	t.Run("matching cookie shows notice and clears it", func(t *testing.T) {
		w := results(questionID, strconv.FormatInt(questionID, 10))

		assert.Contains(t, w.Body.String(), views.VoteRecordedMessage)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("cookie for another question", func(t *testing.T) {
		w := results(other, strconv.FormatInt(questionID, 10))
		assert.NotContains(t, w.Body.String(), views.VoteRecordedMessage)
	})

	t.Run("no cookie", func(t *testing.T) {
		w := results(questionID, "")
		assert.NotContains(t, w.Body.String(), views.VoteRecordedMessage)
		assert.Empty(t, w.Result().Cookies())
	})
}
