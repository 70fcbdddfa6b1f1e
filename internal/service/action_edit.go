package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/logging"
	"github.com/alexanderramin/donna/internal/normalize"
	"github.com/alexanderramin/donna/internal/scheduler"
)

func (s *actionService) edit(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (*app.Result, error) {
	q := scheduler.QueryFromDescriptor(d, sc.Now())
	// The when-fields identify the event; an event they exclude is never
	// patched.
	target, pick, err := s.findTarget(ctx, sc, d, q)
	if err != nil || pick != nil {
		return pick, err
	}

	existing, err := s.store.GetEvent(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	patch, err := editPatch(sc, d, existing)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateEvent(ctx, target.ID, patch)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("I've updated '%s' in your calendar.", updated.Summary)
	if updated.HTMLLink != "" {
		msg += "\nView event: " + updated.HTMLLink
	}
	return &app.Result{
		Action:  domain.ActionEdit,
		Title:   updated.Summary,
		Outcome: app.OutcomeDone,
		Message: msg,
		Updated: updated,
	}, nil
}

// editPatch overlays the fields present in d onto existing. Start and end are
// recomputed only when time, date, day or duration is present; the rest of
// the event keeps its current values.
func editPatch(sc *app.SchedulingContext, d domain.EventDescriptor, existing *domain.CalendarEvent) (domain.EventPatch, error) {
	var p domain.EventPatch
	if d.NewTitle != "" {
		p.Summary = strPtr(d.NewTitle)
	}
	if d.Description != "" {
		p.Description = strPtr(d.Description)
	}
	if d.Location != "" {
		p.Location = strPtr(d.Location)
	}
	if d.Time == "" && d.Date == "" && d.Day == "" && d.Duration <= 0 {
		return p, nil
	}

	now := sc.Now()
	start := existing.Start.In(sc.Location)
	length := existing.End.Sub(existing.Start)
	if existing.AllDay {
		start = atClock(start, domain.ClockTime{Hour: sc.Policy.DefaultStartHour})
		length = minutes(sc.Policy.DefaultDurationMin)
	}

	if d.Time != "" {
		c, err := normalize.Clock(d.Time)
		if err != nil {
			return p, err
		}
		start = atClock(start, c)
	}
	clock := domain.ClockTime{Hour: start.Hour(), Minute: start.Minute()}

	switch {
	case d.Date != "":
		day, err := normalize.ParseDate(d.Date, sc.Location)
		if err != nil {
			return p, err
		}
		start = atClock(day, clock)
	case d.Day != "":
		ahead := d.Day.DaysUntil(now.Weekday())
		if ahead == 0 && now.Hour() > start.Hour() {
			ahead = 7
		}
		start = atClock(app.StartOfDay(now).AddDate(0, 0, ahead), clock)
	}

	if d.Duration > 0 {
		length = minutes(d.Duration)
	}
	end := start.Add(length)
	p.Start, p.End = &start, &end
	return p, nil
}

func (s *actionService) delete(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (*app.Result, error) {
	target, pick, err := s.findTarget(ctx, sc, d, scheduler.QueryFromDescriptor(d, sc.Now()))
	if err != nil || pick != nil {
		return pick, err
	}
	if err := s.store.DeleteEvent(ctx, target.ID); err != nil {
		return nil, err
	}
	s.logger.Info("event_deleted", logging.EventID(target.ID), logging.Title(target.Title))
	return &app.Result{
		Action:  domain.ActionDelete,
		Title:   target.Title,
		Outcome: app.OutcomeDone,
		Message: fmt.Sprintf("I've deleted '%s' from your calendar.", target.Title),
	}, nil
}
