package calendar

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/logging"
)

const productID = "-//donna//calendar assistant//EN"

// ExportICS writes events as an iCalendar document. now stamps DTSTAMP.
func ExportICS(w io.Writer, events []domain.CalendarEvent, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		uid := ev.ID
		if uid == "" {
			uid = fmt.Sprintf("%d@donna", ev.Start.Unix())
		}
		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(now.UTC())
		if ev.AllDay {
			ve.SetAllDayStartAt(ev.Start)
			ve.SetAllDayEndAt(ev.End)
		} else {
			ve.SetStartAt(ev.Start.UTC())
			ve.SetEndAt(ev.End.UTC())
		}
		ve.SetSummary(ev.Summary)
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.HTMLLink != "" {
			ve.SetURL(ev.HTMLLink)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// ImportWindow bounds recurring-event expansion during import.
type ImportWindow struct {
	From time.Time
	To   time.Time
	// MaxOccurrences caps instances per recurring event.
	MaxOccurrences int
}

// ImportICS reads VEVENTs from r as event inputs in loc. Recurring events are
// expanded into single instances inside window. Events that cannot be read
// are logged and skipped.
func ImportICS(r io.Reader, loc *time.Location, window ImportWindow, logger *slog.Logger) ([]domain.EventInput, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, domain.Parsing(err, "could not read calendar file")
	}

	var out []domain.EventInput
	for _, ve := range cal.Events() {
		inputs, err := importVEvent(ve, loc, window)
		if err != nil {
			logger.Warn("ics_event_skipped", logging.Err(err))
			continue
		}
		out = append(out, inputs...)
	}
	return out, nil
}

func importVEvent(ve *ical.VEvent, loc *time.Location, window ImportWindow) ([]domain.EventInput, error) {
	base := domain.EventInput{
		Summary:     propValue(ve, ical.ComponentPropertySummary),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		Location:    propValue(ve, ical.ComponentPropertyLocation),
	}
	if base.Summary == "" {
		return nil, fmt.Errorf("event without summary")
	}

	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil && !strings.Contains(p.Value, "T") {
		base.AllDay = true
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", base.Summary, err)
		}
		base.Start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		base.End = base.Start.AddDate(0, 0, 1)
		if end, err := ve.GetAllDayEndAt(); err == nil && end.After(start) {
			base.End = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
		}
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", base.Summary, err)
		}
		base.Start = start.In(loc)
		base.End = base.Start.Add(30 * time.Minute)
		if end, err := ve.GetEndAt(); err == nil && end.After(start) {
			base.End = end.In(loc)
		}
	}

	raw := propValue(ve, ical.ComponentPropertyRrule)
	if raw == "" {
		return []domain.EventInput{base}, nil
	}

	rule, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: bad recurrence: %w", base.Summary, err)
	}
	rule.DTStart(base.Start)

	length := base.End.Sub(base.Start)
	starts := rule.Between(window.From, window.To, true)
	if window.MaxOccurrences > 0 && len(starts) > window.MaxOccurrences {
		starts = starts[:window.MaxOccurrences]
	}
	out := make([]domain.EventInput, 0, len(starts))
	for _, s := range starts {
		inst := base
		inst.Start = s.In(loc)
		inst.End = inst.Start.Add(length)
		out = append(out, inst)
	}
	return out, nil
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}
