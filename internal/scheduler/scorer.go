package scheduler

import (
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/normalize"
)

// Score contributions for each matching criterion.
const (
	dateMatchWeight = 1.0
	dayMatchWeight  = 0.8
)

// MatchQuery is the identifying part of an EDIT or DELETE descriptor.
// Empty Date, Day and Time do not filter.
type MatchQuery struct {
	Title string
	Date  string // YYYY-MM-DD
	Day   domain.Day
	Time  string // HH:MM AM|PM
	// Now anchors the search window; its location is the user's.
	Now time.Time
}

// QueryFromDescriptor builds the match query for an EDIT or DELETE.
func QueryFromDescriptor(d domain.EventDescriptor, now time.Time) MatchQuery {
	return MatchQuery{
		Title: d.TargetTitle(),
		Date:  d.Date,
		Day:   d.Day,
		Time:  d.Time,
		Now:   now,
	}
}

// ScoredCandidate is a store event that survived every filter.
type ScoredCandidate struct {
	Event      domain.CalendarEvent
	Similarity float64
	Score      float64
}

// TitleSimilarity is the longest-matching-blocks ratio of the two lowercased
// titles, in [0,1].
func TitleSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// ScoreCandidate scores ev against q. ok is false when any given criterion
// excludes the event: title below threshold, date or day mismatch, or a
// start time outside the tolerance.
func ScoreCandidate(q MatchQuery, ev domain.CalendarEvent, policy Policy) (ScoredCandidate, bool) {
	if ev.Summary == "" {
		return ScoredCandidate{}, false
	}
	sim := TitleSimilarity(q.Title, ev.Summary)
	if sim < policy.SimilarityThreshold {
		return ScoredCandidate{}, false
	}

	score := sim
	start := ev.Start
	if q.Now.Location() != nil {
		start = start.In(q.Now.Location())
	}

	if q.Date != "" {
		if start.Format(normalize.DateLayout) != q.Date {
			return ScoredCandidate{}, false
		}
		score += dateMatchWeight
	}

	if q.Day != "" {
		if domain.DayOf(start) != q.Day {
			return ScoredCandidate{}, false
		}
		score += dayMatchWeight
	}

	if q.Time != "" {
		clock, err := normalize.Clock(q.Time)
		if err != nil || ev.AllDay {
			return ScoredCandidate{}, false
		}
		delta := absInt(start.Hour()*60+start.Minute() - (clock.Hour*60 + clock.Minute))
		if delta > policy.TimeToleranceMin {
			return ScoredCandidate{}, false
		}
		score += 1 - float64(delta)/60
	}

	return ScoredCandidate{Event: ev, Similarity: sim, Score: score}, true
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
