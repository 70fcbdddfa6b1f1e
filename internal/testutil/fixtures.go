package testutil

import (
	"time"

	"github.com/alexanderramin/donna/internal/domain"
)

// NewYork is the location most tests run in.
var NewYork = mustLoad("America/New_York")

// MondayMorning is Monday 2024-06-10 09:00 in New York.
var MondayMorning = time.Date(2024, 6, 10, 9, 0, 0, 0, NewYork)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// At returns June 2024 day at hour:minute in New York.
func At(day, hour, minute int) time.Time {
	return time.Date(2024, 6, day, hour, minute, 0, 0, NewYork)
}

// EventOption customizes a fixture event.
type EventOption func(*domain.CalendarEvent)

func WithID(id string) EventOption {
	return func(e *domain.CalendarEvent) { e.ID = id }
}

func WithLocation(loc string) EventOption {
	return func(e *domain.CalendarEvent) { e.Location = loc }
}

func WithDescription(desc string) EventOption {
	return func(e *domain.CalendarEvent) { e.Description = desc }
}

func AllDay() EventOption {
	return func(e *domain.CalendarEvent) {
		e.AllDay = true
		y, m, d := e.Start.Date()
		e.Start = time.Date(y, m, d, 0, 0, 0, 0, e.Start.Location())
		e.End = e.Start.AddDate(0, 0, 1)
	}
}

// NewEvent builds a calendar event starting at start and lasting minutes.
func NewEvent(title string, start time.Time, minutes int, opts ...EventOption) domain.CalendarEvent {
	e := domain.CalendarEvent{
		Summary: title,
		Start:   start,
		End:     start.Add(time.Duration(minutes) * time.Minute),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Create builds a CREATE descriptor.
func Create(title string, mutate ...func(*domain.EventDescriptor)) domain.EventDescriptor {
	d := domain.EventDescriptor{Action: domain.ActionCreate, Title: title, Duration: 30}
	for _, m := range mutate {
		m(&d)
	}
	return d
}
