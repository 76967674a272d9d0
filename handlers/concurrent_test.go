// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/premios-polls/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes on the same choice
// are all counted
func TestConcurrentVotes(t *testing.T) {
	h, db := newPollHandler(t)

	questionID := testutil.CreateTestQuestion(t, db, "Concurrent?", -1)
	hot := testutil.CreateTestChoice(t, db, questionID, "Hot")
	cold := testutil.CreateTestChoice(t, db, questionID, "Cold")

	numVoters := 50

	var redirects atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeFormRequest("/"+strconv.FormatInt(questionID, 10)+"/vote/", url.Values{
				"choice": {strconv.FormatInt(hot, 10)},
			})
			w := vote(h, req, questionID)

			if w.Code == http.StatusFound {
				redirects.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(redirects.Load()) != numVoters {
		t.Errorf("Expected %d redirects, got %d", numVoters, redirects.Load())
	}

	if got := testutil.Votes(t, db, hot); got != int64(numVoters) {
		t.Errorf("Expected %d votes, got %d (lost updates)", numVoters, got)
	}
	if got := testutil.Votes(t, db, cold); got != 0 {
		t.Errorf("Expected untouched choice to stay at 0, got %d", got)
	}
}

// TestConcurrentVotesAcrossChoices spreads votes over every choice and
// checks that the totals add up
func TestConcurrentVotesAcrossChoices(t *testing.T) {
	h, db := newPollHandler(t)

	questionID := testutil.CreateTestQuestion(t, db, "Spread", -1)
	choices := []int64{
		testutil.CreateTestChoice(t, db, questionID, "A"),
		testutil.CreateTestChoice(t, db, questionID, "B"),
		testutil.CreateTestChoice(t, db, questionID, "C"),
	}

	perChoice := 10
	var wg sync.WaitGroup

	for _, choiceID := range choices {
		for i := 0; i < perChoice; i++ {
			wg.Add(1)
			go func(choiceID int64) {
				defer wg.Done()
				req := testutil.MakeFormRequest("/vote/", url.Values{
					"choice": {strconv.FormatInt(choiceID, 10)},
				})
				vote(h, req, questionID)
			}(choiceID)
		}
	}

	wg.Wait()

	var total int64
	for _, choiceID := range choices {
		got := testutil.Votes(t, db, choiceID)
		if got != int64(perChoice) {
			t.Errorf("Choice %d: expected %d votes, got %d", choiceID, perChoice, got)
		}
		total += got
	}

	if total != int64(perChoice*len(choices)) {
		t.Errorf("Expected %d total votes, got %d", perChoice*len(choices), total)
	}
}
