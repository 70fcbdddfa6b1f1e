package app

import (
	"time"

	"github.com/alexanderramin/donna/internal/domain"
)

// Outcome discriminates a Result. Failures are not an outcome; they travel
// as errors next to a nil Result.
type Outcome string

const (
	// OutcomeDone: the action ran against the calendar.
	OutcomeDone Outcome = "done"
	// OutcomeClarify: nothing changed; Message asks the user for more detail.
	// Candidates is set when several events matched.
	OutcomeClarify Outcome = "clarify"
)

// ScheduledEvent is one event written by a CREATE.
type ScheduledEvent struct {
	ID    string
	Title string
	// Start is the start of the calendar block, travel time included.
	Start time.Time
	End   time.Time
	// Nominal is the requested appointment time.
	Nominal     time.Time
	DurationMin int
	TravelMin   int
	Link        string
}

// Result is the outcome of executing one descriptor.
type Result struct {
	Action  domain.Action
	Title   string
	Outcome Outcome
	Message string

	Scheduled  []ScheduledEvent
	Updated    *domain.CalendarEvent
	Listed     []domain.CalendarEvent
	Candidates []domain.MatchedEvent
}

// Done reports whether the action changed or read the calendar.
func (r *Result) Done() bool {
	return r != nil && r.Outcome == OutcomeDone
}

// Response is what the request orchestrator hands back to its caller. Success
// is false only when no descriptor in the request succeeded.
type Response struct {
	Success bool
	Message string
	Results []*Result
	// Errors holds per-descriptor failures in request order.
	Errors []error
}

// ScheduledCount returns how many events the request created.
func (r Response) ScheduledCount() int {
	n := 0
	for _, res := range r.Results {
		if res != nil {
			n += len(res.Scheduled)
		}
	}
	return n
}
