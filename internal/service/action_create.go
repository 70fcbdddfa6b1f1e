package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/logging"
	"github.com/alexanderramin/donna/internal/scheduler"
)

// nominalStart resolves the requested appointment time for a single CREATE.
// A time already past today moves to the next week when a weekday chose the
// date, otherwise to tomorrow.
func nominalStart(sc *app.SchedulingContext, d domain.EventDescriptor) (time.Time, error) {
	now := sc.Now()
	today := app.StartOfDay(now)

	day, viaDay, err := resolveDay(d, today)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := clockOf(d, sc.Policy.DefaultStartHour)
	if err != nil {
		return time.Time{}, err
	}
	if day.Before(today) {
		return time.Time{}, domain.InvalidInput("%s is in the past. Please pick a later date.", day.Format("Monday, January 02"))
	}

	start := atClock(day, clock)
	if start.Before(now) && day.Equal(today) {
		if viaDay {
			start = atClock(day.AddDate(0, 0, 7), clock)
		} else {
			start = atClock(day.AddDate(0, 0, 1), clock)
		}
	}
	return start, nil
}

func (s *actionService) create(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (*app.Result, error) {
	nominal, err := nominalStart(sc, d)
	if err != nil {
		return nil, err
	}
	ev, err := s.place(ctx, sc, d, nominal)
	if err != nil {
		return nil, err
	}
	return &app.Result{
		Action:    domain.ActionCreate,
		Title:     d.Title,
		Outcome:   app.OutcomeDone,
		Message:   scheduledLine(ev),
		Scheduled: []app.ScheduledEvent{ev},
	}, nil
}

// createRecurring creates one instance per matching day of the recurring
// horizon starting today. Instances that are already past or fail to insert
// are logged and skipped.
func (s *actionService) createRecurring(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (*app.Result, error) {
	clock, err := clockOf(d, sc.Policy.DefaultStartHour)
	if err != nil {
		return nil, err
	}
	now := sc.Now()
	today := app.StartOfDay(now)

	opt := rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: atClock(today, clock),
		Until:   atClock(today.AddDate(0, 0, sc.Policy.RecurringDays-1), clock),
	}
	if d.Day != "" {
		wd, ok := rruleWeekdays[d.Day]
		if !ok {
			return nil, domain.InvalidInput("Invalid day: %s", d.Day)
		}
		opt.Byweekday = []rrule.Weekday{wd}
	}
	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("building recurrence: %w", err)
	}

	var (
		created []app.ScheduledEvent
		lastErr error
	)
	for _, occurrence := range rule.All() {
		nominal := occurrence.In(sc.Location)
		if nominal.Before(now) {
			s.logger.Warn("recurring_instance_skipped",
				logging.Title(d.Title), slog.String("reason", "past"), slog.String("date", nominal.Format("2006-01-02")))
			continue
		}
		ev, err := s.place(ctx, sc, d, nominal)
		if err != nil {
			lastErr = err
			s.logger.Warn("recurring_instance_skipped",
				logging.Title(d.Title), slog.String("date", nominal.Format("2006-01-02")), logging.Err(err))
			continue
		}
		created = append(created, ev)
	}

	if len(created) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, domain.InvalidInput("Every occurrence of '%s' in the next %d days is already in the past.", d.Title, sc.Policy.RecurringDays)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Created recurring event '%s' for the next %d days (%s)", d.Title, sc.Policy.RecurringDays, plural(len(created), "occurrence"))
	for _, ev := range created {
		fmt.Fprintf(&b, "\n   • %s", ev.Nominal.Format("Monday, January 02 at 03:04 PM"))
	}
	return &app.Result{
		Action:    domain.ActionCreate,
		Title:     d.Title,
		Outcome:   app.OutcomeDone,
		Message:   b.String(),
		Scheduled: created,
	}, nil
}

// place finds a free slot near nominal on the session's slot manager,
// inserts the event and records its block.
func (s *actionService) place(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor, nominal time.Time) (app.ScheduledEvent, error) {
	if !sc.Slots.Seeded(nominal) {
		from, to := dayBounds(nominal)
		existing, err := s.store.ListEvents(ctx, from, to, sc.Policy.MaxResults)
		if err != nil {
			return app.ScheduledEvent{}, err
		}
		sc.Slots.Seed(nominal, existing)
	}

	lead := minutes(d.TravelTime)
	length := minutes(d.Duration)
	n := sc.Slots.FindAvailableSlot(scheduler.SlotRequest{
		Preferred:   nominal,
		Lead:        lead,
		Duration:    length,
		Constraints: d.TimeConstraints,
		Now:         sc.Now(),
	})
	if !n.Equal(nominal) {
		s.logger.Info("slot_moved", logging.Title(d.Title),
			slog.String("preferred", nominal.Format(time.RFC3339)), slog.String("placed", n.Format(time.RFC3339)))
	}

	start, end := n.Add(-lead), n.Add(length)
	priority := scheduler.Priority(d.Title)
	ev, err := s.store.InsertEvent(ctx, domain.EventInput{
		Summary:     d.Title,
		Start:       start,
		End:         end,
		Description: createDescription(d),
		Location:    d.Location,
		ColorID:     scheduler.ColorID(priority),
	})
	if err != nil {
		return app.ScheduledEvent{}, err
	}
	if !sc.Slots.AddSlot(start, end, ev.ID) {
		s.logger.Warn("slot_conflict_after_insert", logging.EventID(ev.ID), logging.Title(d.Title))
	}

	return app.ScheduledEvent{
		ID:          ev.ID,
		Title:       d.Title,
		Start:       start,
		End:         end,
		Nominal:     n,
		DurationMin: d.Duration,
		TravelMin:   d.TravelTime,
		Link:        ev.HTMLLink,
	}, nil
}

func createDescription(d domain.EventDescriptor) string {
	var b strings.Builder
	if d.Description != "" {
		b.WriteString(d.Description)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Duration: %d minutes", d.Duration)
	if d.TravelTime > 0 {
		fmt.Fprintf(&b, "\nTravel time: %d minutes", d.TravelTime)
	}
	if d.Constraints != "" {
		fmt.Fprintf(&b, "\nConstraints: %s", d.Constraints)
	}
	return b.String()
}

func scheduledLine(ev app.ScheduledEvent) string {
	line := fmt.Sprintf("✅ Scheduled '%s' for %s (%s)",
		ev.Title, ev.Nominal.Format("Monday, January 02 at 03:04 PM"), durationPhrase(ev.DurationMin))
	if ev.TravelMin > 0 {
		line += fmt.Sprintf(" (including %d minutes travel time)", ev.TravelMin)
	}
	if ev.Link != "" {
		line += "\nView event: " + ev.Link
	}
	return line
}
