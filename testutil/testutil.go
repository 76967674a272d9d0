// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/premios-polls/cliparse"
	"github.com/danielhkuo/premios-polls/db"
)

// TestDBURL is a private in-memory SQLite database per pool
const TestDBURL = "file::memory:"

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		AdminKey:     TestAdminKey,
		LogLevel:     "error",
	}
}

// CreateTestQuestion inserts a question published `days` from now
// (negative for the past, positive for the future) and returns its ID.
func CreateTestQuestion(t *testing.T, conn *sql.DB, text string, days int) int64 {
	t.Helper()
	return CreateTestQuestionAt(t, conn, text, time.Now().UTC().AddDate(0, 0, days))
}

// CreateTestQuestionAt inserts a question with an exact pub_date
func CreateTestQuestionAt(t *testing.T, conn *sql.DB, text string, pubDate time.Time) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO question (question_text, pub_date) VALUES ($1, $2) RETURNING id
	`, text, pubDate.UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return id
}

// CreateTestChoice adds a choice with zero votes and returns its ID
func CreateTestChoice(t *testing.T, conn *sql.DB, questionID int64, text string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO choice (question_id, choice_text) VALUES ($1, $2) RETURNING id
	`, questionID, text).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return id
}

// Votes reads a choice's current vote count
func Votes(t *testing.T, conn *sql.DB, choiceID int64) int64 {
	t.Helper()

	var votes int64
	if err := conn.QueryRow(`SELECT votes FROM choice WHERE id = $1`, choiceID).Scan(&votes); err != nil {
		t.Fatalf("Failed to read votes: %v", err)
	}
	return votes
}

// MakeRequest creates an HTTP test request with a JSON body
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a url-encoded form POST, as a browser would send
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
