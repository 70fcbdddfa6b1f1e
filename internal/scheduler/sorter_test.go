package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/donna/internal/domain"
)

func TestSortByScore_HighestFirstAndStable(t *testing.T) {
	candidates := []ScoredCandidate{
		{Event: domain.CalendarEvent{ID: "a"}, Score: 1.0},
		{Event: domain.CalendarEvent{ID: "b"}, Score: 2.8},
		{Event: domain.CalendarEvent{ID: "c"}, Score: 1.0},
		{Event: domain.CalendarEvent{ID: "d"}, Score: 1.9},
	}
	SortByScore(candidates)

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Event.ID
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
}

func TestSortByStart(t *testing.T) {
	events := []domain.CalendarEvent{
		event("3", "Zumba", at(11, 9, 0), 30),
		event("1", "Breakfast", at(10, 8, 0), 30),
		event("2", "Art", at(11, 9, 0), 30),
	}
	SortByStart(events)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "2", events[1].ID)
	assert.Equal(t, "3", events[2].ID)
}

func TestToMatched_ConvertsToLocation(t *testing.T) {
	ev := event("e1", "Gym", at(11, 18, 0).UTC(), 90)
	ev.Location = "Downtown"
	m := ToMatched(ScoredCandidate{Event: ev, Score: 1.8}, newYork)

	require.Equal(t, "e1", m.ID)
	assert.Equal(t, "Gym", m.Title)
	assert.Equal(t, newYork, m.Start.Location())
	assert.Equal(t, 18, m.Start.Hour())
	assert.Equal(t, 90, m.DurationMinutes)
	assert.InDelta(t, 1.8, m.MatchScore, 1e-9)
	assert.Equal(t, "Downtown", m.Location)
}
