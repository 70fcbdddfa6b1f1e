package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/donna/internal/domain"
)

// SortByScore orders candidates by score, highest first. Ties keep the
// store's order.
func SortByScore(candidates []ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// SortByStart orders events by start time, then title.
func SortByStart(events []domain.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.Summary < b.Summary
	})
}

// ToMatched converts a scored candidate into the matcher's result shape in loc.
func ToMatched(c ScoredCandidate, loc *time.Location) domain.MatchedEvent {
	ev := c.Event
	if loc != nil {
		ev.Start, ev.End = ev.Start.In(loc), ev.End.In(loc)
	}
	return domain.MatchedEvent{
		ID:              ev.ID,
		Title:           ev.Summary,
		Start:           ev.Start,
		End:             ev.End,
		DurationMinutes: ev.DurationMinutes(),
		MatchScore:      c.Score,
		AllDay:          ev.AllDay,
		Location:        ev.Location,
		Description:     ev.Description,
	}
}
