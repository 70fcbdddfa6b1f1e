package domain

import "time"

// CalendarEvent is an event as held by a calendar store, with instants
// already converted to the user's location.
type CalendarEvent struct {
	ID          string
	Summary     string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Location    string
	Description string
	ColorID     string
	HTMLLink    string
}

// DurationMinutes returns the event length in whole minutes.
func (e CalendarEvent) DurationMinutes() int {
	return int(e.End.Sub(e.Start).Minutes())
}

// EventInput holds the fields written when inserting a new event.
type EventInput struct {
	Summary     string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Description string
	Location    string
	ColorID     string
}

// EventPatch overlays an existing event. Nil fields keep their current value.
type EventPatch struct {
	Summary     *string
	Start       *time.Time
	End         *time.Time
	Description *string
	Location    *string
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Summary == nil && p.Start == nil && p.End == nil &&
		p.Description == nil && p.Location == nil
}

// MatchedEvent is a scored candidate produced by the event matcher. ID is a
// handle owned by the calendar store.
type MatchedEvent struct {
	ID              string
	Title           string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	MatchScore      float64
	AllDay          bool
	Location        string
	Description     string
}
