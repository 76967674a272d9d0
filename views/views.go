// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/premios-polls/models"
)

// Page names
const (
	PageIndex    = "index.html"
	PageDetail   = "detail.html"
	PageResults  = "results.html"
	PageNotFound = "not_found.html"
)

// Messages shown to voters
const (
	InvalidChoiceMessage = "Has escogido una opción inválida"
	VoteRecordedMessage  = "You have successfully voted"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"humanizeTime":  func(t time.Time) string { return humanize.Time(t) },
	"humanizeCount": humanize.Comma,
	"pluralize": func(n int64) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
}

type IndexPage struct {
	Questions []models.Question
}

type DetailPage struct {
	Question     models.Question
	Choices      []models.Choice
	ErrorMessage string
}

type ResultsPage struct {
	Question models.Question
	Choices  []models.Choice
	Message  string
}

type NotFoundPage struct {
	Message string
}

// Renderer holds one parsed template set per page
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all page templates against the base layout
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{PageIndex, PageDetail, PageResults, PageNotFound} {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// Render executes the page into a buffer first so a template error
// becomes a 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, page string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("failed to render template", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "page", page, "error", err)
	}
}

// NotFound renders the 404 page
func (r *Renderer) NotFound(w http.ResponseWriter, message string) {
	r.Render(w, http.StatusNotFound, PageNotFound, NotFoundPage{Message: message})
}
