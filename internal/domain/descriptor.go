package domain

import "strings"

// Action is the calendar operation a descriptor requests.
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionEdit    Action = "EDIT"
	ActionDelete  Action = "DELETE"
	ActionView    Action = "VIEW"
	ActionUnknown Action = "UNKNOWN"
)

var validActions = map[Action]bool{
	ActionCreate:  true,
	ActionEdit:    true,
	ActionDelete:  true,
	ActionView:    true,
	ActionUnknown: true,
}

// ParseAction maps free-form action text onto an Action. Unrecognized values
// report ok=false.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToUpper(strings.TrimSpace(s)))
	return a, validActions[a]
}

// ClockTime is an hour/minute pair on a 24-hour clock.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Valid reports whether the clock time is a real time of day.
func (c ClockTime) Valid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// TimeConstraints bounds the acceptable placement window for a new event.
type TimeConstraints struct {
	Min *ClockTime `json:"min,omitempty"`
	Max *ClockTime `json:"max,omitempty"`
}

// EventDescriptor is one structured calendar request. String fields use the
// empty value for "absent"; Duration and TravelTime use zero.
type EventDescriptor struct {
	Action          Action           `json:"action"`
	Title           string           `json:"title,omitempty"`
	OriginalTitle   string           `json:"original_title,omitempty"`
	NewTitle        string           `json:"new_title,omitempty"`
	Day             Day              `json:"day,omitempty"`
	Date            string           `json:"date,omitempty"`
	Time            string           `json:"time,omitempty"`
	Duration        int              `json:"duration,omitempty"`
	TravelTime      int              `json:"travel_time,omitempty"`
	Recurring       bool             `json:"recurring,omitempty"`
	TimeConstraints *TimeConstraints `json:"time_constraints,omitempty"`
	Description     string           `json:"description,omitempty"`
	Location        string           `json:"location,omitempty"`
	Constraints     string           `json:"constraints,omitempty"`
	Clarification   string           `json:"clarification,omitempty"`
}

// HasWhen reports whether any of time, day or date is set.
func (d EventDescriptor) HasWhen() bool {
	return d.Time != "" || d.Day != "" || d.Date != ""
}

// TargetTitle returns the title used to identify an existing event.
func (d EventDescriptor) TargetTitle() string {
	if d.OriginalTitle != "" {
		return d.OriginalTitle
	}
	return d.Title
}

// DisplayTitle returns the best human label for the descriptor.
func (d EventDescriptor) DisplayTitle() string {
	switch {
	case d.Title != "":
		return d.Title
	case d.OriginalTitle != "":
		return d.OriginalTitle
	default:
		return "event"
	}
}

// Unknown builds an UNKNOWN descriptor carrying a clarification message.
func Unknown(clarification string) EventDescriptor {
	return EventDescriptor{Action: ActionUnknown, Clarification: clarification}
}
