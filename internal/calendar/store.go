// Package calendar defines the calendar store boundary and its adapters:
// Google Calendar, iCalendar files, and error classification.
package calendar

import (
	"context"
	"time"

	"github.com/alexanderramin/donna/internal/domain"
)

// Store is read/write access to a single user's calendar. Recurring entries
// are expanded into single instances and lists are ordered by start time.
// All instants crossing this boundary are timezone-aware.
type Store interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int) ([]domain.CalendarEvent, error)
	GetEvent(ctx context.Context, id string) (*domain.CalendarEvent, error)
	InsertEvent(ctx context.Context, in domain.EventInput) (*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}
