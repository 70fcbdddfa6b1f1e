package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/calendar"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/intelligence"
	"github.com/alexanderramin/donna/internal/logging"
	"github.com/alexanderramin/donna/internal/scheduler"
)

type actionService struct {
	store    calendar.Store
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewActionService creates the action executor over store.
func NewActionService(store calendar.Store, logger *slog.Logger, observers ...UseCaseObserver) ActionService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &actionService{
		store:    store,
		logger:   logging.WithOperation(logger, "execute"),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *actionService) Execute(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (res *app.Result, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		logging.KeyAction: string(d.Action),
		logging.KeyTitle:  d.DisplayTitle(),
		"session_id":      sc.SessionID,
	}
	defer func() {
		if res != nil {
			fields["outcome"] = string(res.Outcome)
			fields["scheduled"] = len(res.Scheduled)
		}
		observe(ctx, s.observer, "execute-"+actionVerb(d.Action), startedAt, fields, err)
	}()

	if err = intelligence.Validate(&d); err != nil {
		return nil, err
	}

	switch d.Action {
	case domain.ActionCreate:
		if d.Recurring {
			return s.createRecurring(ctx, sc, d)
		}
		return s.create(ctx, sc, d)
	case domain.ActionEdit:
		return s.edit(ctx, sc, d)
	case domain.ActionDelete:
		return s.delete(ctx, sc, d)
	case domain.ActionView:
		return s.view(ctx, sc, d)
	default:
		return &app.Result{
			Action:  domain.ActionUnknown,
			Outcome: app.OutcomeClarify,
			Message: d.Clarification,
		}, nil
	}
}

// findTarget resolves the one event an EDIT or DELETE refers to. A nil
// result with a nil error means several events matched and res asks the
// user to pick.
func (s *actionService) findTarget(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor, q scheduler.MatchQuery) (*domain.MatchedEvent, *app.Result, error) {
	matches, err := scheduler.NewMatcher(s.store, sc.Policy).FindMatches(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil, domain.EventNotFound("I couldn't find an event matching '%s'. Could you provide more details?", q.Title)
	case 1:
		return &matches[0], nil, nil
	default:
		msg := FormatMatches(matches, sc.Location) +
			"Please specify which event you want to " + actionVerb(d.Action) + " by providing more specific details."
		return nil, &app.Result{
			Action:     d.Action,
			Title:      q.Title,
			Outcome:    app.OutcomeClarify,
			Message:    msg,
			Candidates: matches,
		}, nil
	}
}
