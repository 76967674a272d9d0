// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types.

# Domain Types

  - Question: poll prompt with a publication timestamp
  - Choice: answer option owned by a question, with a vote tally
  - QuestionWithChoices: a question and its choices, used by the views

A question is visible to the public once its pub_date is not in the
future (IsPublished). WasPublishedRecently is true for questions
published within the last 24 hours, inclusive of the lower bound:

	q.WasPublishedRecently(time.Now())

# Admin Types

  - QuestionRequest: question_text, pub_date, inline choices
  - ChoiceRequest: choice_text
  - AdminQuestion, AdminQuestionDetail, AdminChoice: responses

Vote counts appear in responses but are never accepted as input.

# Errors

ErrNotFound marks a missing or unpublished question or choice.
*/
package models
