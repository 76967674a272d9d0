// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/premios-polls/testutil"
	"github.com/danielhkuo/premios-polls/views"
)

var errDBDown = errors.New("connection refused")

func newMockPollHandler(t *testing.T) (*PollHandler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	renderer, err := views.New()
	require.NoError(t, err)

	return NewPollHandler(db, renderer, nil), mock
}

func questionRows(id int64, pubDate time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "question_text", "pub_date"}).
		AddRow(id, "Mocked?", pubDate)
}

func TestIndex_DatabaseError(t *testing.T) {
	h, mock := newMockPollHandler(t)
	mock.ExpectQuery("SELECT id, question_text, pub_date").WillReturnError(errDBDown)

	w := index(h)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetail_ChoicesError(t *testing.T) {
	h, mock := newMockPollHandler(t)
	mock.ExpectQuery("SELECT id, question_text, pub_date FROM question").
		WithArgs(int64(1)).
		WillReturnRows(questionRows(1, time.Now().Add(-time.Hour)))
	mock.ExpectQuery("SELECT id, question_id, choice_text, votes").
		WithArgs(int64(1)).
		WillReturnError(errDBDown)

	w := get(h.Detail, "1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVote_UpdateError(t *testing.T) {
	h, mock := newMockPollHandler(t)
	mock.ExpectQuery("SELECT id, question_text, pub_date FROM question").
		WithArgs(int64(1)).
		WillReturnRows(questionRows(1, time.Now().Add(-time.Hour)))
	mock.ExpectExec("UPDATE choice SET votes").
		WithArgs(int64(2), int64(1)).
		WillReturnError(errDBDown)

	w := vote(h, testutil.MakeFormRequest("/1/vote/", url.Values{"choice": {"2"}}), 1)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVote_StaleChoiceIsInvalid(t *testing.T) {
	h, mock := newMockPollHandler(t)
	mock.ExpectQuery("SELECT id, question_text, pub_date FROM question").
		WithArgs(int64(1)).
		WillReturnRows(questionRows(1, time.Now().Add(-time.Hour)))
	// The choice was deleted between rendering and voting
	mock.ExpectExec("UPDATE choice SET votes").
		WithArgs(int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, question_id, choice_text, votes").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "choice_text", "votes"}))

	w := vote(h, testutil.MakeFormRequest("/1/vote/", url.Values{"choice": {"2"}}), 1)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), views.InvalidChoiceMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminListQuestions_DatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, question_text, pub_date").WillReturnError(errDBDown)

	w := httptest.NewRecorder()
	NewAdminHandler(db).ListQuestions(w, httptest.NewRequest("GET", "/admin/questions", nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.JSONEq(t, `{"error": "Internal Server Error", "message": "Database error"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreateQuestion_RollsBackOnChoiceError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO question").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO choice").
		WillReturnError(errDBDown)
	mock.ExpectRollback()

	w := call(NewAdminHandler(db).CreateQuestion, "POST", "/admin/questions", "", map[string]interface{}{
		"question_text": "Half written",
		"choices":       []map[string]string{{"choice_text": "never stored"}},
	})

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
