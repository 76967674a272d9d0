// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielhkuo/premios-polls/middleware"
	"github.com/danielhkuo/premios-polls/models"
)

// errForeignChoice marks an inline choice ID that belongs to another question
var errForeignChoice = errors.New("choice does not belong to this question")

// AdminHandler serves the JSON admin API. The router guards every route
// with middleware.WithAdminKey.
type AdminHandler struct {
	db  *sql.DB
	now func() time.Time
}

func NewAdminHandler(db *sql.DB) *AdminHandler {
	return &AdminHandler{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// ListQuestions handles GET /admin/questions
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := listAllQuestions(r.Context(), h.db)
	if err != nil {
		middleware.Logger(r).Error("failed to list questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := h.now()
	resp := models.AdminQuestionList{Questions: make([]models.AdminQuestion, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, models.AdminQuestion{
			Question:             q,
			WasPublishedRecently: q.WasPublishedRecently(now),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CreateQuestion handles POST /admin/questions
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.QuestionRequest
	if !h.decode(w, r, &req) {
		return
	}

	pubDate := h.now()
	if req.PubDate != nil {
		pubDate = req.PubDate.UTC()
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		middleware.Logger(r).Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var questionID int64
	err = tx.QueryRowContext(r.Context(), `
		INSERT INTO question (question_text, pub_date)
		VALUES ($1, $2)
		RETURNING id
	`, req.QuestionText, pubDate).Scan(&questionID)
	if err != nil {
		middleware.Logger(r).Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	for _, c := range req.Choices {
		if _, err := insertChoice(r.Context(), tx, questionID, c.ChoiceText); err != nil {
			middleware.Logger(r).Error("failed to insert choice", "question_id", questionID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		middleware.Logger(r).Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	middleware.Logger(r).Info("question created", "question_id", questionID, "choices", len(req.Choices))
	h.writeQuestion(w, r, http.StatusCreated, questionID)
}

// GetQuestion handles GET /admin/questions/{id}
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	h.writeQuestion(w, r, http.StatusOK, id)
}

// UpdateQuestion handles PUT /admin/questions/{id}
// Vote counts are never written here.
func (h *AdminHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	var req models.QuestionRequest
	if !h.decode(w, r, &req) {
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		middleware.Logger(r).Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var res sql.Result
	if req.PubDate != nil {
		res, err = tx.ExecContext(r.Context(), `
			UPDATE question SET question_text = $1, pub_date = $2 WHERE id = $3
		`, req.QuestionText, req.PubDate.UTC(), id)
	} else {
		res, err = tx.ExecContext(r.Context(), `
			UPDATE question SET question_text = $1 WHERE id = $2
		`, req.QuestionText, id)
	}
	if err != nil {
		middleware.Logger(r).Error("failed to update question", "question_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update question")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	// A nil list leaves the inline choices alone; an empty one clears them
	if req.Choices != nil {
		err := syncChoices(r.Context(), tx, id, req.Choices)
		if errors.Is(err, errForeignChoice) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			middleware.Logger(r).Error("failed to update choices", "question_id", id, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update question")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		middleware.Logger(r).Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update question")
		return
	}

	middleware.Logger(r).Info("question updated", "question_id", id)
	h.writeQuestion(w, r, http.StatusOK, id)
}

// DeleteQuestion handles DELETE /admin/questions/{id}
// Choices go with it through ON DELETE CASCADE.
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	h.deleteRow(w, r, `DELETE FROM question WHERE id = $1`, id, "Question not found")
}

// AddChoice handles POST /admin/questions/{id}/choices
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	var req models.ChoiceRequest
	if !h.decode(w, r, &req) {
		return
	}

	question, err := getQuestion(r.Context(), h.db, questionID)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		middleware.Logger(r).Error("failed to query question", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	choiceID, err := insertChoice(r.Context(), h.db, question.ID, req.ChoiceText)
	if err != nil {
		middleware.Logger(r).Error("failed to insert choice", "question_id", question.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create choice")
		return
	}

	middleware.Logger(r).Info("choice added", "question_id", question.ID, "choice_id", choiceID)

	choice := models.Choice{ID: choiceID, QuestionID: question.ID, ChoiceText: req.ChoiceText}
	middleware.JSONResponse(w, http.StatusCreated, models.AdminChoice{
		Choice:  choice,
		Display: choice.Label(question),
	})
}

// GetChoice handles GET /admin/choices/{id}
func (h *AdminHandler) GetChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}

	h.writeChoice(w, r, id)
}

// UpdateChoice handles PUT /admin/choices/{id}
// Only the text is editable; votes stay read-only.
func (h *AdminHandler) UpdateChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}

	var req models.ChoiceRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.db.ExecContext(r.Context(), `
		UPDATE choice SET choice_text = $1 WHERE id = $2
	`, req.ChoiceText, id)
	if err != nil {
		middleware.Logger(r).Error("failed to update choice", "choice_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update choice")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}

	middleware.Logger(r).Info("choice updated", "choice_id", id)
	h.writeChoice(w, r, id)
}

// DeleteChoice handles DELETE /admin/choices/{id}
func (h *AdminHandler) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}

	h.deleteRow(w, r, `DELETE FROM choice WHERE id = $1`, id, "Choice not found")
}

// decode parses and validates a JSON body, writing a 400 on failure
func (h *AdminHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := validate.Struct(v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func (h *AdminHandler) writeQuestion(w http.ResponseWriter, r *http.Request, status int, id int64) {
	question, err := getQuestion(r.Context(), h.db, id)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		middleware.Logger(r).Error("failed to query question", "question_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	choices, err := listChoices(r.Context(), h.db, id)
	if err != nil {
		middleware.Logger(r).Error("failed to query choices", "question_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, status, models.AdminQuestionDetail{
		Question:             question,
		WasPublishedRecently: question.WasPublishedRecently(h.now()),
		Choices:              choices,
	})
}

func (h *AdminHandler) writeChoice(w http.ResponseWriter, r *http.Request, id int64) {
	choice, err := getChoice(r.Context(), h.db, id)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}
	if err != nil {
		middleware.Logger(r).Error("failed to query choice", "choice_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	question, err := getQuestion(r.Context(), h.db, choice.QuestionID)
	if err != nil {
		middleware.Logger(r).Error("failed to query question", "question_id", choice.QuestionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminChoice{
		Choice:  choice,
		Display: choice.Label(question),
	})
}

func (h *AdminHandler) deleteRow(w http.ResponseWriter, r *http.Request, query string, id int64, notFound string) {
	res, err := h.db.ExecContext(r.Context(), query, id)
	if err != nil {
		middleware.Logger(r).Error("failed to delete", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
		return
	}

	middleware.Logger(r).Info("deleted", "path", r.URL.Path)
	w.WriteHeader(http.StatusNoContent)
}

func insertChoice(ctx context.Context, db queryer, questionID int64, text string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO choice (question_id, choice_text, votes)
		VALUES ($1, $2, 0)
		RETURNING id
	`, questionID, text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert choice: %w", err)
	}
	return id, nil
}

// syncChoices makes the question's inline choices match inputs: known IDs
// are renamed, new entries inserted, and the rest deleted.
func syncChoices(ctx context.Context, tx *sql.Tx, questionID int64, inputs []models.ChoiceInput) error {
	existing, err := listChoices(ctx, tx, questionID)
	if err != nil {
		return err
	}

	owned := make(map[int64]bool, len(existing))
	for _, c := range existing {
		owned[c.ID] = true
	}

	keep := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if in.ID == 0 {
			if _, err := insertChoice(ctx, tx, questionID, in.ChoiceText); err != nil {
				return err
			}
			continue
		}
		if !owned[in.ID] {
			return fmt.Errorf("%w: %d", errForeignChoice, in.ID)
		}
		keep[in.ID] = true
		if _, err := tx.ExecContext(ctx, `
			UPDATE choice SET choice_text = $1 WHERE id = $2
		`, in.ChoiceText, in.ID); err != nil {
			return fmt.Errorf("failed to update choice %d: %w", in.ID, err)
		}
	}

	for _, c := range existing {
		if keep[c.ID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM choice WHERE id = $1`, c.ID); err != nil {
			return fmt.Errorf("failed to delete choice %d: %w", c.ID, err)
		}
	}

	return nil
}
