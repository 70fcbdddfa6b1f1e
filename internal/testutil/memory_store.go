package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/donna/internal/domain"
)

// StoreCall records one MemoryStore invocation.
type StoreCall struct {
	Op string
	ID string
}

// MemoryStore is a recording in-memory calendar.Store. Errors set in Fail
// are returned by the named operation ("list", "get", "insert", "update",
// "delete") until cleared.
type MemoryStore struct {
	mu     sync.Mutex
	events []domain.CalendarEvent
	nextID int
	Calls  []StoreCall
	Fail   map[string]error
	// FailInsertOn fails only the Nth insert, counting from 1.
	FailInsertOn int
	FailInsert   error
	inserts      int
}

// NewMemoryStore returns a store seeded with events.
func NewMemoryStore(events ...domain.CalendarEvent) *MemoryStore {
	s := &MemoryStore{Fail: map[string]error{}}
	for _, ev := range events {
		if ev.ID == "" {
			s.nextID++
			ev.ID = fmt.Sprintf("ev-%d", s.nextID)
		}
		s.events = append(s.events, ev)
	}
	return s
}

func (s *MemoryStore) record(op, id string) error {
	s.Calls = append(s.Calls, StoreCall{Op: op, ID: id})
	return s.Fail[op]
}

// Events returns a copy of the stored events ordered by start.
func (s *MemoryStore) Events() []domain.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.CalendarEvent(nil), s.events...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// CountCalls returns how many times op was invoked.
func (s *MemoryStore) CountCalls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (s *MemoryStore) ListEvents(_ context.Context, timeMin, timeMax time.Time, maxResults int) ([]domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("list", ""); err != nil {
		return nil, err
	}
	var out []domain.CalendarEvent
	for _, ev := range s.events {
		if ev.End.After(timeMin) && ev.Start.Before(timeMax) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}

func (s *MemoryStore) GetEvent(_ context.Context, id string) (*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("get", id); err != nil {
		return nil, err
	}
	if i := s.index(id); i >= 0 {
		ev := s.events[i]
		return &ev, nil
	}
	return nil, domain.EventNotFound("no event %s", id)
}

func (s *MemoryStore) InsertEvent(_ context.Context, in domain.EventInput) (*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("insert", ""); err != nil {
		return nil, err
	}
	s.inserts++
	if s.FailInsertOn > 0 && s.inserts == s.FailInsertOn {
		return nil, s.FailInsert
	}
	s.nextID++
	ev := domain.CalendarEvent{
		ID:          fmt.Sprintf("ev-%d", s.nextID),
		Summary:     in.Summary,
		Start:       in.Start,
		End:         in.End,
		AllDay:      in.AllDay,
		Location:    in.Location,
		Description: in.Description,
		ColorID:     in.ColorID,
		HTMLLink:    fmt.Sprintf("https://calendar.example/event/ev-%d", s.nextID),
	}
	s.events = append(s.events, ev)
	return &ev, nil
}

func (s *MemoryStore) UpdateEvent(_ context.Context, id string, patch domain.EventPatch) (*domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("update", id); err != nil {
		return nil, err
	}
	i := s.index(id)
	if i < 0 {
		return nil, domain.EventNotFound("no event %s", id)
	}
	ev := &s.events[i]
	if patch.Summary != nil {
		ev.Summary = *patch.Summary
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.Location != nil {
		ev.Location = *patch.Location
	}
	if patch.Start != nil {
		ev.Start = *patch.Start
		ev.AllDay = false
	}
	if patch.End != nil {
		ev.End = *patch.End
	}
	out := *ev
	return &out, nil
}

func (s *MemoryStore) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("delete", id); err != nil {
		return err
	}
	i := s.index(id)
	if i < 0 {
		return domain.EventNotFound("no event %s", id)
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	return nil
}

func (s *MemoryStore) index(id string) int {
	for i, ev := range s.events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}
