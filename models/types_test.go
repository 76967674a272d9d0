// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWasPublishedRecently(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{"older than a day", now.Add(-24*time.Hour - time.Second), false},
		{"exactly one day old", now.Add(-24 * time.Hour), true},
		{"almost one day old", now.Add(-(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)), true},
		{"published right now", now, true},
		{"future date", now.Add(30 * 24 * time.Hour), false},
		{"one second in the future", now.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{QuestionText: "any", PubDate: tt.pubDate}
			assert.Equal(t, tt.want, q.WasPublishedRecently(now))
		})
	}
}

func TestIsPublished(t *testing.T) {
	now := time.Now()

	assert.True(t, Question{PubDate: now.Add(-time.Hour)}.IsPublished(now))
	assert.True(t, Question{PubDate: now}.IsPublished(now))
	assert.False(t, Question{PubDate: now.Add(time.Minute)}.IsPublished(now))
}

func TestDisplayStrings(t *testing.T) {
	q := Question{ID: 1, QuestionText: "Best language?"}
	c := Choice{ID: 2, QuestionID: 1, ChoiceText: "Go"}

	assert.Equal(t, "Best language?", q.String())
	assert.Equal(t, "Best language?: Go", c.Label(q))
}
