package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/alexanderramin/donna/internal/domain"
)

const dateLayout = "2006-01-02"

// GoogleStore implements Store on the Google Calendar v3 API.
type GoogleStore struct {
	svc        *gcal.Service
	calendarID string
	loc        *time.Location
}

// NewGoogleStore creates a store for calendarID using an authorized HTTP
// client. Instants read back are converted to loc.
func NewGoogleStore(ctx context.Context, client *http.Client, calendarID string, loc *time.Location) (*GoogleStore, error) {
	return NewGoogleStoreWithOptions(ctx, calendarID, loc, option.WithHTTPClient(client))
}

// NewGoogleStoreWithOptions creates a store with explicit client options,
// e.g. a custom endpoint.
func NewGoogleStoreWithOptions(ctx context.Context, calendarID string, loc *time.Location, opts ...option.ClientOption) (*GoogleStore, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.Local
	}
	return &GoogleStore{svc: svc, calendarID: calendarID, loc: loc}, nil
}

func (s *GoogleStore) ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int) ([]domain.CalendarEvent, error) {
	call := s.svc.Events.List(s.calendarID).
		Context(ctx).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if maxResults > 0 {
		call = call.MaxResults(int64(maxResults))
	}

	events, err := call.Do()
	if err != nil {
		return nil, ClassifyError("list events", err)
	}

	out := make([]domain.CalendarEvent, 0, len(events.Items))
	for _, ev := range events.Items {
		ce, err := s.toDomain(ev)
		if err != nil {
			continue
		}
		out = append(out, ce)
	}
	return out, nil
}

func (s *GoogleStore) GetEvent(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	ev, err := s.svc.Events.Get(s.calendarID, id).Context(ctx).Do()
	if err != nil {
		return nil, ClassifyError("get event", err)
	}
	ce, err := s.toDomain(ev)
	if err != nil {
		return nil, err
	}
	return &ce, nil
}

func (s *GoogleStore) InsertEvent(ctx context.Context, in domain.EventInput) (*domain.CalendarEvent, error) {
	ev := &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		ColorId:     in.ColorID,
	}
	if in.AllDay {
		ev.Start = &gcal.EventDateTime{Date: in.Start.In(s.loc).Format(dateLayout)}
		ev.End = &gcal.EventDateTime{Date: in.End.In(s.loc).Format(dateLayout)}
	} else {
		ev.Start = s.dateTime(in.Start)
		ev.End = s.dateTime(in.End)
	}

	created, err := s.svc.Events.Insert(s.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, ClassifyError("insert event", err)
	}
	ce, err := s.toDomain(created)
	if err != nil {
		return nil, err
	}
	return &ce, nil
}

func (s *GoogleStore) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.CalendarEvent, error) {
	existing, err := s.svc.Events.Get(s.calendarID, id).Context(ctx).Do()
	if err != nil {
		return nil, ClassifyError("get event", err)
	}

	if patch.Summary != nil {
		existing.Summary = *patch.Summary
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Location != nil {
		existing.Location = *patch.Location
	}
	if patch.Start != nil {
		existing.Start = s.dateTime(*patch.Start)
	}
	if patch.End != nil {
		existing.End = s.dateTime(*patch.End)
	}

	updated, err := s.svc.Events.Update(s.calendarID, id, existing).Context(ctx).Do()
	if err != nil {
		return nil, ClassifyError("update event", err)
	}
	ce, err := s.toDomain(updated)
	if err != nil {
		return nil, err
	}
	return &ce, nil
}

func (s *GoogleStore) DeleteEvent(ctx context.Context, id string) error {
	if err := s.svc.Events.Delete(s.calendarID, id).Context(ctx).Do(); err != nil {
		return ClassifyError("delete event", err)
	}
	return nil
}

func (s *GoogleStore) dateTime(t time.Time) *gcal.EventDateTime {
	return &gcal.EventDateTime{
		DateTime: t.In(s.loc).Format(time.RFC3339),
		TimeZone: s.loc.String(),
	}
}

func (s *GoogleStore) toDomain(ev *gcal.Event) (domain.CalendarEvent, error) {
	ce := domain.CalendarEvent{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		ColorID:     ev.ColorId,
		HTMLLink:    ev.HtmlLink,
	}
	start, allDay, err := s.parseDateTime(ev.Start)
	if err != nil {
		return ce, fmt.Errorf("event %s start: %w", ev.Id, err)
	}
	end, _, err := s.parseDateTime(ev.End)
	if err != nil {
		return ce, fmt.Errorf("event %s end: %w", ev.Id, err)
	}
	ce.Start, ce.End, ce.AllDay = start, end, allDay
	return ce, nil
}

func (s *GoogleStore) parseDateTime(edt *gcal.EventDateTime) (time.Time, bool, error) {
	switch {
	case edt == nil:
		return time.Time{}, false, fmt.Errorf("missing time")
	case edt.DateTime != "":
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false, err
		}
		return t.In(s.loc), false, nil
	case edt.Date != "":
		t, err := time.ParseInLocation(dateLayout, edt.Date, s.loc)
		return t, true, err
	default:
		return time.Time{}, false, fmt.Errorf("empty time")
	}
}
