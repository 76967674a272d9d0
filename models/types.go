// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"time"
)

// Field limits
const (
	MaxQuestionTextLen = 100
	MaxChoiceTextLen   = 100
)

// RecentWindow is how far back a question still counts as recently published.
const RecentWindow = 24 * time.Hour

// ErrNotFound is returned when a question or choice does not exist,
// or is not visible yet.
var ErrNotFound = errors.New("not found")

// Domain types

type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

func (q Question) String() string {
	return q.QuestionText
}

// IsPublished reports whether the question is visible at now.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently reports whether pub_date falls within the last 24
// hours of now. Future dates are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return !q.PubDate.Before(now.Add(-RecentWindow)) && !q.PubDate.After(now)
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int64  `json:"votes"`
}

// Label renders the choice the way the admin lists it.
func (c Choice) Label(q Question) string {
	return q.QuestionText + ": " + c.ChoiceText
}

type QuestionWithChoices struct {
	Question Question `json:"question"`
	Choices  []Choice `json:"choices"`
}

// Request types (admin)

type ChoiceInput struct {
	// ID is set when updating an existing inline choice.
	ID         int64  `json:"id,omitempty"`
	ChoiceText string `json:"choice_text" validate:"required,max=100"`
}

// QuestionRequest is used for both create and update. On update the
// choices list replaces the inline set: entries with an ID are renamed,
// entries without one are created, and missing ones are deleted.
type QuestionRequest struct {
	QuestionText string        `json:"question_text" validate:"required,max=100"`
	PubDate      *time.Time    `json:"pub_date"`
	Choices      []ChoiceInput `json:"choices" validate:"dive"`
}

type ChoiceRequest struct {
	ChoiceText string `json:"choice_text" validate:"required,max=100"`
}

// Response types (admin)

type AdminQuestion struct {
	Question
	WasPublishedRecently bool `json:"was_published_recently"`
}

type AdminQuestionList struct {
	Questions []AdminQuestion `json:"questions"`
}

type AdminQuestionDetail struct {
	Question             Question `json:"question"`
	WasPublishedRecently bool     `json:"was_published_recently"`
	Choices              []Choice `json:"choices"`
}

type AdminChoice struct {
	Choice
	Display string `json:"display"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
