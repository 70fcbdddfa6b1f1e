package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/normalize"
)

// resolveDay returns midnight of the local date d refers to: its date when
// set, else the next occurrence of its day on or after today, else today.
// viaDay reports whether the day field decided the date.
func resolveDay(d domain.EventDescriptor, today time.Time) (day time.Time, viaDay bool, err error) {
	switch {
	case d.Date != "":
		day, err = normalize.ParseDate(d.Date, today.Location())
		return day, false, err
	case d.Day != "":
		if !d.Day.Valid() {
			return time.Time{}, false, domain.InvalidInput("Invalid day: %s", d.Day)
		}
		return today.AddDate(0, 0, d.Day.DaysUntil(today.Weekday())), true, nil
	default:
		return today, false, nil
	}
}

// clockOf parses d.Time, or returns fallbackHour:00 when it is empty.
func clockOf(d domain.EventDescriptor, fallbackHour int) (domain.ClockTime, error) {
	if d.Time == "" {
		return domain.ClockTime{Hour: fallbackHour}, nil
	}
	return normalize.Clock(d.Time)
}

func atClock(day time.Time, c domain.ClockTime) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := app.StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

var rruleWeekdays = map[domain.Day]rrule.Weekday{
	domain.Monday:    rrule.MO,
	domain.Tuesday:   rrule.TU,
	domain.Wednesday: rrule.WE,
	domain.Thursday:  rrule.TH,
	domain.Friday:    rrule.FR,
	domain.Saturday:  rrule.SA,
	domain.Sunday:    rrule.SU,
}

// actionVerb names the action in failure messages.
func actionVerb(a domain.Action) string {
	switch a {
	case domain.ActionCreate:
		return "schedule"
	case domain.ActionEdit:
		return "update"
	case domain.ActionDelete:
		return "delete"
	case domain.ActionView:
		return "view"
	default:
		return strings.ToLower(string(a))
	}
}

// durationPhrase renders minutes as "1 hour and 30 minutes".
func durationPhrase(total int) string {
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%s and %s", plural(h, "hour"), plural(m, "minute"))
	case h > 0:
		return plural(h, "hour")
	default:
		return plural(m, "minute")
	}
}

// durationShort renders minutes as "1 hr, 30 min".
func durationShort(total int) string {
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%s, %d min", plural(h, "hr"), m)
	case h > 0:
		return plural(h, "hr")
	default:
		return fmt.Sprintf("%d min", m)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func strPtr(s string) *string { return &s }
