// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/premios-polls/models"
)

// LatestQuestionsLimit caps the index page
const LatestQuestionsLimit = 5

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// pathID parses a positive integer path value. Anything else reads as
// "no such record" to the caller.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func scanQuestion(row interface{ Scan(...any) error }) (models.Question, error) {
	var q models.Question
	if err := row.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
		return models.Question{}, err
	}
	q.PubDate = q.PubDate.UTC()
	return q, nil
}

func getQuestion(ctx context.Context, db queryer, id int64) (models.Question, error) {
	q, err := scanQuestion(db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date FROM question WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, models.ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question %d: %w", id, err)
	}
	return q, nil
}

// getPublishedQuestion hides questions whose pub_date is after now
func getPublishedQuestion(ctx context.Context, db queryer, id int64, now time.Time) (models.Question, error) {
	q, err := getQuestion(ctx, db, id)
	if err != nil {
		return models.Question{}, err
	}
	if !q.IsPublished(now) {
		return models.Question{}, models.ErrNotFound
	}
	return q, nil
}

func listPublishedQuestions(ctx context.Context, db queryer, now time.Time, limit int) ([]models.Question, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE pub_date <= $1
		ORDER BY pub_date DESC, id DESC
		LIMIT $2
	`, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	return collectQuestions(rows)
}

func listAllQuestions(ctx context.Context, db queryer) ([]models.Question, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		ORDER BY pub_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	return collectQuestions(rows)
}

func collectQuestions(rows *sql.Rows) ([]models.Question, error) {
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}
	return questions, nil
}

func listChoices(ctx context.Context, db queryer, questionID int64) ([]models.Choice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		WHERE question_id = $1
		ORDER BY id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate choices: %w", err)
	}
	return choices, nil
}

func getChoice(ctx context.Context, db queryer, id int64) (models.Choice, error) {
	var c models.Choice
	err := db.QueryRowContext(ctx, `
		SELECT id, question_id, choice_text, votes FROM choice WHERE id = $1
	`, id).Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Choice{}, models.ErrNotFound
	}
	if err != nil {
		return models.Choice{}, fmt.Errorf("failed to query choice %d: %w", id, err)
	}
	return c, nil
}

// addVote increments the choice only if it belongs to the question.
// The match and the increment are one statement, so concurrent votes
// cannot overwrite each other.
func addVote(ctx context.Context, db queryer, questionID, choiceID int64) (bool, error) {
	res, err := db.ExecContext(ctx, `
		UPDATE choice SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
	`, choiceID, questionID)
	if err != nil {
		return false, fmt.Errorf("failed to record vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to record vote: %w", err)
	}
	return n == 1, nil
}
