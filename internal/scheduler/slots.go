package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/normalize"
)

// Slot is an occupied interval owned by a calendar event.
type Slot struct {
	Start   time.Time
	End     time.Time
	EventID string
}

func (s Slot) overlaps(start, end time.Time) bool {
	return start.Before(s.End) && s.Start.Before(end)
}

// SlotRequest describes the block a new event needs. Preferred is the
// nominal start; the occupied block is [Preferred-Lead, Preferred+Duration].
type SlotRequest struct {
	Preferred   time.Time
	Lead        time.Duration
	Duration    time.Duration
	Constraints *domain.TimeConstraints
	Now         time.Time
}

// SlotManager tracks intervals occupied during one session, keyed by the
// local date they start on. It caches nothing authoritative: Seed it from the
// calendar store before trusting it for a date.
type SlotManager struct {
	mu     sync.Mutex
	loc    *time.Location
	slots  map[string][]Slot
	seeded map[string]bool
}

// NewSlotManager creates an empty manager for loc.
func NewSlotManager(loc *time.Location) *SlotManager {
	if loc == nil {
		loc = time.Local
	}
	return &SlotManager{
		loc:    loc,
		slots:  make(map[string][]Slot),
		seeded: make(map[string]bool),
	}
}

func (m *SlotManager) key(t time.Time) string {
	return t.In(m.loc).Format(normalize.DateLayout)
}

// Seeded reports whether the date of t was already loaded from the store.
func (m *SlotManager) Seeded(t time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seeded[m.key(t)]
}

// Seed records existing events for the date of day. Events already tracked
// by ID and all-day events are ignored. Existing calendar events may overlap
// one another, so no conflict check is made.
func (m *SlotManager) Seed(day time.Time, events []domain.CalendarEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeded[m.key(day)] = true

	known := make(map[string]bool)
	for _, list := range m.slots {
		for _, s := range list {
			if s.EventID != "" {
				known[s.EventID] = true
			}
		}
	}
	for _, ev := range events {
		if ev.AllDay || !ev.End.After(ev.Start) || (ev.ID != "" && known[ev.ID]) {
			continue
		}
		m.insert(Slot{Start: ev.Start, End: ev.End, EventID: ev.ID})
	}
}

// AddSlot records [start, end) for eventID. It returns false, recording
// nothing, when the interval is empty or overlaps a known slot.
func (m *SlotManager) AddSlot(start, end time.Time, eventID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !end.After(start) || m.conflict(start, end) {
		return false
	}
	m.insert(Slot{Start: start, End: end, EventID: eventID})
	return true
}

// Slots returns the occupied intervals starting on the date of day, ordered
// by start.
func (m *SlotManager) Slots(day time.Time) []Slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.slots[m.key(day)]
	out := make([]Slot, len(list))
	copy(out, list)
	return out
}

// FindAvailableSlot returns the nominal start for req. It tries the
// preferred start, then the first instant after each occupied interval that
// day, earliest first. When none of those fit it falls back to the minimum
// constraint time or now, pushed past any overlapping slot; the fallback may
// violate the max constraint but never starts the block in the past and
// never overlaps.
func (m *SlotManager) FindAvailableSlot(req SlotRequest) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	pref := req.Preferred.In(m.loc)
	lo, hi := m.bounds(pref, req.Constraints)

	fits := func(n time.Time) bool {
		start, end := n.Add(-req.Lead), n.Add(req.Duration)
		if start.Before(req.Now) {
			return false
		}
		if !lo.IsZero() && n.Before(lo) {
			return false
		}
		if !hi.IsZero() && end.After(hi) {
			return false
		}
		return !m.conflict(start, end)
	}

	if fits(pref) {
		return pref
	}

	candidates := make([]time.Time, 0)
	for _, s := range m.slots[m.key(pref)] {
		candidates = append(candidates, s.End.Add(req.Lead).In(m.loc))
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	for _, n := range candidates {
		if fits(n) {
			return n
		}
	}

	n := pref
	if !lo.IsZero() {
		n = lo
	}
	if earliest := req.Now.Add(req.Lead).In(m.loc); n.Before(earliest) {
		n = earliest
	}
	for moved := true; moved; {
		moved = false
		start, end := n.Add(-req.Lead), n.Add(req.Duration)
		for _, s := range m.around(start, end) {
			if s.overlaps(start, end) {
				n = s.End.Add(req.Lead).In(m.loc)
				moved = true
				break
			}
		}
	}
	return n
}

// bounds converts the clock constraints into instants on pref's date.
func (m *SlotManager) bounds(pref time.Time, c *domain.TimeConstraints) (lo, hi time.Time) {
	if c == nil {
		return
	}
	y, mo, d := pref.Date()
	if c.Min != nil {
		lo = time.Date(y, mo, d, c.Min.Hour, c.Min.Minute, 0, 0, m.loc)
	}
	if c.Max != nil {
		hi = time.Date(y, mo, d, c.Max.Hour, c.Max.Minute, 0, 0, m.loc)
	}
	return
}

func (m *SlotManager) insert(s Slot) {
	k := m.key(s.Start)
	list := append(m.slots[k], s)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Start.Before(list[j].Start) })
	m.slots[k] = list
}

// around returns slots starting on any date touched by [start, end], plus the
// day before start for intervals that run past midnight.
func (m *SlotManager) around(start, end time.Time) []Slot {
	var out []Slot
	seen := make(map[string]bool)
	for day := start.AddDate(0, 0, -1); !day.After(end.AddDate(0, 0, 1)); day = day.AddDate(0, 0, 1) {
		k := m.key(day)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m.slots[k]...)
	}
	return out
}

func (m *SlotManager) conflict(start, end time.Time) bool {
	for _, s := range m.around(start, end) {
		if s.overlaps(start, end) {
			return true
		}
	}
	return false
}
