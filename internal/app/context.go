package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/donna/internal/scheduler"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SchedulingContext carries what one session needs to interpret and execute
// requests. A context and its slot manager belong to a single session and
// must not be shared between sessions.
type SchedulingContext struct {
	SessionID string
	Location  *time.Location
	Clock     Clock
	Slots     *scheduler.SlotManager
	Policy    scheduler.Policy
}

// NewSchedulingContext creates a session context with an empty slot manager.
// A nil clock means the system clock; a nil location means time.Local.
func NewSchedulingContext(loc *time.Location, clock Clock, policy scheduler.Policy) *SchedulingContext {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &SchedulingContext{
		SessionID: uuid.New().String(),
		Location:  loc,
		Clock:     clock,
		Slots:     scheduler.NewSlotManager(loc),
		Policy:    policy,
	}
}

// Now returns the current instant in the session's location.
func (sc *SchedulingContext) Now() time.Time {
	return sc.Clock.Now().In(sc.Location)
}

// Today returns midnight of the current local day.
func (sc *SchedulingContext) Today() time.Time {
	return StartOfDay(sc.Now())
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
