package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/donna/internal/domain"
)

var newYork = mustLoad("America/New_York")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// mondayMorning is Monday 2024-06-10 09:00 in New York.
var mondayMorning = time.Date(2024, 6, 10, 9, 0, 0, 0, newYork)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, newYork)
}

func event(id, title string, start time.Time, minutes int) domain.CalendarEvent {
	return domain.CalendarEvent{ID: id, Summary: title, Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

func TestTitleSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, TitleSimilarity("Team Meeting", "team meeting"), 1e-9)
	assert.InDelta(t, 24.0/25.0, TitleSimilarity("team meeting", "Team Meetings"), 1e-9)
	assert.InDelta(t, 0.0, TitleSimilarity("abc", "xyz"), 1e-9)

	// A short query against a longer title falls under the default threshold.
	sim := TitleSimilarity("dentist", "Dentist Appointment")
	assert.InDelta(t, 14.0/26.0, sim, 1e-9)
	assert.Less(t, sim, DefaultPolicy().SimilarityThreshold)
}

func TestScoreCandidate_Criteria(t *testing.T) {
	policy := DefaultPolicy()
	ev := event("e1", "Team Meeting", at(11, 14, 0), 60) // Tuesday

	tests := []struct {
		name   string
		query  MatchQuery
		ok     bool
		score  float64
	}{
		{"title only", MatchQuery{Title: "team meeting"}, true, 1.0},
		{"date match", MatchQuery{Title: "team meeting", Date: "2024-06-11"}, true, 2.0},
		{"date mismatch", MatchQuery{Title: "team meeting", Date: "2024-06-12"}, false, 0},
		{"day match", MatchQuery{Title: "team meeting", Day: domain.Tuesday}, true, 1.8},
		{"day mismatch", MatchQuery{Title: "team meeting", Day: domain.Friday}, false, 0},
		{"exact time", MatchQuery{Title: "team meeting", Time: "02:00 PM"}, true, 2.0},
		{"near time", MatchQuery{Title: "team meeting", Time: "02:12 PM"}, true, 2.0 - 12.0/60},
		{"time at tolerance", MatchQuery{Title: "team meeting", Time: "01:45 PM"}, true, 1.75},
		{"time beyond tolerance", MatchQuery{Title: "team meeting", Time: "02:16 PM"}, false, 0},
		{"all criteria", MatchQuery{Title: "team meeting", Date: "2024-06-11", Day: domain.Tuesday, Time: "02:00 PM"}, true, 3.8},
		{"weak title", MatchQuery{Title: "lunch"}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.query.Now = mondayMorning
			c, ok := ScoreCandidate(tt.query, ev, policy)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.score, c.Score, 1e-9)
				assert.Equal(t, "e1", c.Event.ID)
			}
		})
	}
}

func TestScoreCandidate_ComparesInQueryLocation(t *testing.T) {
	// 01:30 UTC on Wednesday is 21:30 Tuesday in New York.
	ev := event("e1", "Late Call", time.Date(2024, 6, 12, 1, 30, 0, 0, time.UTC), 30)
	q := MatchQuery{Title: "late call", Day: domain.Tuesday, Date: "2024-06-11", Time: "09:30 PM", Now: mondayMorning}

	c, ok := ScoreCandidate(q, ev, DefaultPolicy())
	assert.True(t, ok)
	assert.InDelta(t, 3.8, c.Score, 1e-9)
}

func TestScoreCandidate_TimeQueryExcludesAllDay(t *testing.T) {
	ev := domain.CalendarEvent{ID: "h", Summary: "Holiday", Start: at(11, 0, 0), End: at(12, 0, 0), AllDay: true}
	_, ok := ScoreCandidate(MatchQuery{Title: "holiday", Time: "12:00 AM", Now: mondayMorning}, ev, DefaultPolicy())
	assert.False(t, ok)

	_, ok = ScoreCandidate(MatchQuery{Title: "holiday", Now: mondayMorning}, ev, DefaultPolicy())
	assert.True(t, ok)
}

func TestScoreCandidate_UntitledEventNeverMatches(t *testing.T) {
	_, ok := ScoreCandidate(MatchQuery{Title: "x", Now: mondayMorning}, event("e", "", at(11, 9, 0), 30), Policy{})
	assert.False(t, ok)
}

func TestQueryFromDescriptor(t *testing.T) {
	d := domain.EventDescriptor{
		Action:        domain.ActionEdit,
		OriginalTitle: "standup",
		Title:         "daily standup",
		Day:           domain.Wednesday,
		Time:          "10:00 AM",
	}
	q := QueryFromDescriptor(d, mondayMorning)
	assert.Equal(t, "standup", q.Title)
	assert.Equal(t, domain.Wednesday, q.Day)
	assert.Equal(t, "10:00 AM", q.Time)
	assert.Equal(t, mondayMorning, q.Now)
}
