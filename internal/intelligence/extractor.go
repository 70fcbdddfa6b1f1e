package intelligence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/llm"
	"github.com/alexanderramin/donna/internal/logging"
	"github.com/alexanderramin/donna/internal/normalize"
)

// Clarifications returned when the model output cannot be used.
const (
	ClarifyUnclear   = "I'm not sure what you want to do with your calendar. Could you be more specific?"
	ClarifyUnparsed  = "I'm having trouble understanding your request. Could you break it down into simpler, separate events?"
	defaultDuration  = 30
	extractUserLabel = "User text: "
)

// Extractor turns user text into validated, normalized event descriptors.
// Malformed model output never surfaces as an error: it becomes an UNKNOWN
// descriptor. Only interpreter transport failures are returned.
type Extractor interface {
	Extract(ctx context.Context, text string, now time.Time) ([]domain.EventDescriptor, error)
}

type extractor struct {
	client llm.Interpreter
	policy normalize.Policy
	logger *slog.Logger
}

// NewExtractor creates an Extractor backed by an interpreter.
func NewExtractor(client llm.Interpreter, policy normalize.Policy, logger *slog.Logger) Extractor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &extractor{client: client, policy: policy, logger: logger}
}

func (e *extractor) Extract(ctx context.Context, text string, now time.Time) ([]domain.EventDescriptor, error) {
	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: buildExtractSystemPrompt(now),
		UserPrompt:   extractUserLabel + text,
	})
	if err != nil {
		return nil, fmt.Errorf("llm extract failed: %w", err)
	}

	batch, err := llm.ExtractJSON[rawBatch](resp.Text, nil)
	if err != nil {
		e.logger.Warn("extract_unparsed",
			logging.Err(domain.Parsing(err, "could not parse interpreter output")))
		return []domain.EventDescriptor{domain.Unknown(ClarifyUnparsed)}, nil
	}
	if len(batch) == 0 {
		return []domain.EventDescriptor{domain.Unknown(ClarifyUnclear)}, nil
	}

	out := make([]domain.EventDescriptor, 0, len(batch))
	for _, raw := range batch {
		if raw.decodeErr != nil {
			e.logger.Warn("extract_element_unparsed",
				logging.Err(domain.Parsing(raw.decodeErr, "could not parse interpreter output")))
			out = append(out, domain.Unknown(ClarifyUnparsed))
			continue
		}
		d := e.resolve(raw, text, now)
		if err := Validate(&d); err != nil {
			e.logger.Info("extract_invalid", logging.Action(string(d.Action)), logging.Err(err))
			d = domain.Unknown(domain.Message(err))
		}
		out = append(out, d)
	}
	return out, nil
}

// resolve converts one raw descriptor, normalizing each field on its own.
// A field that fails to normalize is dropped (or, for time, replaced by a
// contextual default) without discarding the descriptor.
func (e *extractor) resolve(raw rawDescriptor, text string, now time.Time) domain.EventDescriptor {
	action, ok := domain.ParseAction(raw.Action)
	switch {
	case raw.Action == "" && strings.TrimSpace(raw.Title) != "":
		action = domain.ActionCreate
	case !ok:
		return domain.Unknown(ClarifyUnclear)
	}

	d := domain.EventDescriptor{
		Action:        action,
		Title:         strings.TrimSpace(raw.Title),
		OriginalTitle: strings.TrimSpace(raw.OriginalTitle),
		NewTitle:      strings.TrimSpace(raw.NewTitle),
		Duration:      int(raw.Duration),
		TravelTime:    int(raw.TravelTime),
		Recurring:     bool(raw.Recurring),
		Description:   strings.TrimSpace(raw.Description),
		Location:      strings.TrimSpace(raw.Location),
		Constraints:   strings.TrimSpace(string(raw.Constraints)),
		Clarification: strings.TrimSpace(raw.Clarification),
	}
	if action == domain.ActionUnknown {
		if d.Clarification == "" {
			d.Clarification = ClarifyUnclear
		}
		return domain.EventDescriptor{Action: action, Clarification: d.Clarification}
	}

	// Models often put the target of an edit or delete in title.
	if (action == domain.ActionEdit || action == domain.ActionDelete) && d.OriginalTitle == "" {
		d.OriginalTitle = d.Title
	}
	if action == domain.ActionCreate && d.Title == "" && d.NewTitle != "" {
		d.Title = d.NewTitle
	}

	e.resolveDate(&d, raw, now)
	e.resolveTime(&d, raw, text)

	if d.Duration < 0 {
		e.logger.Warn("descriptor_field_dropped", logging.Field("duration"))
		d.Duration = 0
	}
	if d.TravelTime < 0 {
		e.logger.Warn("descriptor_field_dropped", logging.Field("travel_time"))
		d.TravelTime = 0
	}
	if action == domain.ActionCreate && d.Duration == 0 {
		d.Duration = defaultDuration
	}

	if tc := raw.TimeConstraints; tc != nil {
		lo, hi := tc.Min.value(), tc.Max.value()
		if lo != nil || hi != nil {
			d.TimeConstraints = &domain.TimeConstraints{Min: lo, Max: hi}
		}
	}
	return d
}

func (e *extractor) resolveDate(d *domain.EventDescriptor, raw rawDescriptor, now time.Time) {
	if s := strings.TrimSpace(raw.Date); s != "" {
		date, err := normalize.Date(s, now, e.policy)
		if err != nil {
			e.logger.Warn("descriptor_field_dropped", logging.Field("date"), logging.Err(err))
		} else {
			d.Date = date
		}
	}

	if s := strings.TrimSpace(raw.Day); s != "" {
		day, err := normalize.Day(s)
		switch {
		case err == nil:
			d.Day = day
		case d.Date == "":
			// "tomorrow" and friends sometimes land in the day field.
			if date, derr := normalize.Date(s, now, e.policy); derr == nil {
				d.Date = date
			} else {
				e.logger.Warn("descriptor_field_dropped", logging.Field("day"), logging.Err(err))
			}
		default:
			e.logger.Warn("descriptor_field_dropped", logging.Field("day"), logging.Err(err))
		}
	}

	// date wins over day; keep the two consistent.
	if d.Date != "" {
		if t, err := normalize.ParseDate(d.Date, now.Location()); err == nil {
			d.Day = domain.DayOf(t)
		}
	}
}

func (e *extractor) resolveTime(d *domain.EventDescriptor, raw rawDescriptor, text string) {
	s := strings.TrimSpace(raw.Time)
	if s != "" {
		t, err := normalize.Time(s)
		if err == nil {
			d.Time = t
			return
		}
		if fallback, ok := ContextTime(text); ok {
			d.Time = fallback
			return
		}
		e.logger.Warn("descriptor_field_dropped", logging.Field("time"), logging.Err(err))
		return
	}
	if d.Action == domain.ActionCreate {
		if fallback, ok := ContextTime(text); ok {
			d.Time = fallback
		}
	}
}

// contextTimes is checked in order; the first keyword present wins.
var contextTimes = []struct {
	keyword string
	time    string
}{
	{"lunch", "12:00 PM"},
	{"breakfast", "08:00 AM"},
	{"dinner", "07:00 PM"},
	{"morning", "09:00 AM"},
	{"afternoon", "02:00 PM"},
	{"evening", "07:00 PM"},
}

// ContextTime returns a default start time implied by meal or part-of-day
// words in text.
func ContextTime(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, ct := range contextTimes {
		if strings.Contains(lower, ct.keyword) {
			return ct.time, true
		}
	}
	return "", false
}
