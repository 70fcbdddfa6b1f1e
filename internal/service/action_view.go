package service

import (
	"context"
	"time"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/scheduler"
)

// NoEventsMessage is the VIEW reply for an empty day.
const NoEventsMessage = "You have no events scheduled for this day."

// viewDay resolves the day a VIEW shows. Asking for today's weekday at or
// after the cutoff hour shows next week's instead.
func viewDay(sc *app.SchedulingContext, d domain.EventDescriptor) (time.Time, error) {
	now := sc.Now()
	today := app.StartOfDay(now)
	day, viaDay, err := resolveDay(d, today)
	if err != nil {
		return time.Time{}, err
	}
	if viaDay && day.Equal(today) && now.Hour() >= sc.Policy.ViewCutoffHour {
		day = day.AddDate(0, 0, 7)
	}
	return day, nil
}

func (s *actionService) view(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (*app.Result, error) {
	day, err := viewDay(sc, d)
	if err != nil {
		return nil, err
	}
	from, to := dayBounds(day)
	events, err := s.store.ListEvents(ctx, from, to, sc.Policy.MaxResults)
	if err != nil {
		return nil, err
	}
	scheduler.SortByStart(events)

	msg := NoEventsMessage
	if len(events) > 0 {
		msg = FormatEvents(events, sc.Location)
	}
	return &app.Result{
		Action:  domain.ActionView,
		Title:   day.Format("Monday, January 02"),
		Outcome: app.OutcomeDone,
		Message: msg,
		Listed:  events,
	}, nil
}
