package scheduler

import (
	"context"
	"time"

	"github.com/alexanderramin/donna/internal/calendar"
	"github.com/alexanderramin/donna/internal/domain"
)

// Matcher finds existing calendar events that fit a partial description.
type Matcher struct {
	store  calendar.Store
	policy Policy
}

// NewMatcher creates a Matcher reading from store.
func NewMatcher(store calendar.Store, policy Policy) *Matcher {
	return &Matcher{store: store, policy: policy}
}

// FindMatches returns candidates sorted by score, best first. The search
// covers the start of q.Now's day through LookaheadDays ahead; events outside
// that window are never returned. Zero results is not an error here.
func (m *Matcher) FindMatches(ctx context.Context, q MatchQuery) ([]domain.MatchedEvent, error) {
	if q.Title == "" {
		return nil, domain.InvalidInput("I need the title of the event to look for.")
	}
	loc := q.Now.Location()
	y, mo, d := q.Now.Date()
	from := time.Date(y, mo, d, 0, 0, 0, 0, loc)
	to := q.Now.AddDate(0, 0, m.policy.LookaheadDays)

	events, err := m.store.ListEvents(ctx, from, to, m.policy.MaxResults)
	if err != nil {
		return nil, err
	}

	var scored []ScoredCandidate
	for _, ev := range events {
		if c, ok := ScoreCandidate(q, ev, m.policy); ok {
			scored = append(scored, c)
		}
	}
	SortByScore(scored)

	out := make([]domain.MatchedEvent, 0, len(scored))
	for _, c := range scored {
		out = append(out, ToMatched(c, loc))
	}
	return out, nil
}
