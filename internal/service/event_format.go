package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/donna/internal/domain"
)

// FormatEvents renders events grouped by local date, numbered within each
// date in the order given.
func FormatEvents(events []domain.CalendarEvent, loc *time.Location) string {
	if len(events) == 0 {
		return "No events found for this period."
	}
	byDate := make(map[string][]domain.CalendarEvent)
	var dates []string
	for _, ev := range events {
		key := ev.Start.In(loc).Format("2006-01-02")
		if _, ok := byDate[key]; !ok {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], ev)
	}
	sort.Strings(dates)

	var b strings.Builder
	for _, key := range dates {
		day := byDate[key]
		fmt.Fprintf(&b, "📅 %s\n\n", day[0].Start.In(loc).Format("Monday, January 02, 2006"))
		for i, ev := range day {
			writeEvent(&b, i+1, ev, loc)
		}
	}
	return b.String()
}

// FormatMatches renders matcher candidates like FormatEvents.
func FormatMatches(matches []domain.MatchedEvent, loc *time.Location) string {
	events := make([]domain.CalendarEvent, len(matches))
	for i, m := range matches {
		events[i] = domain.CalendarEvent{
			ID:          m.ID,
			Summary:     m.Title,
			Start:       m.Start,
			End:         m.End,
			AllDay:      m.AllDay,
			Location:    m.Location,
			Description: m.Description,
		}
	}
	return FormatEvents(events, loc)
}

func writeEvent(b *strings.Builder, n int, ev domain.CalendarEvent, loc *time.Location) {
	when, length := "All day", "All day"
	if !ev.AllDay {
		when = fmt.Sprintf("%s to %s", ev.Start.In(loc).Format("03:04 PM"), ev.End.In(loc).Format("03:04 PM"))
		length = durationShort(ev.DurationMinutes())
	}
	fmt.Fprintf(b, "%d. %s\n", n, ev.Summary)
	fmt.Fprintf(b, "   ⏰ %s\n", when)
	fmt.Fprintf(b, "   ⌛ %s\n", length)
	if ev.Location != "" {
		fmt.Fprintf(b, "   📍 %s\n", ev.Location)
	}
	if desc := strings.Join(strings.Fields(strings.ReplaceAll(ev.Description, "\n", " · ")), " "); desc != "" {
		fmt.Fprintf(b, "   📝 %s\n", desc)
	}
	b.WriteString("\n")
}
