package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/intelligence"
	"github.com/alexanderramin/donna/internal/logging"
)

// RequestOptions switches the optional stages of the orchestrator.
type RequestOptions struct {
	// Classifier, when set, routes non-action messages to a conversational
	// reply before extraction runs.
	Classifier intelligence.Classifier
	Hooks      []ResponseHook
}

type requestService struct {
	extractor intelligence.Extractor
	actions   ActionService
	opts      RequestOptions
	logger    *slog.Logger
	observer  UseCaseObserver
}

// NewRequestService creates the orchestrator.
func NewRequestService(
	extractor intelligence.Extractor,
	actions ActionService,
	opts RequestOptions,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) RequestService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &requestService{
		extractor: extractor,
		actions:   actions,
		opts:      opts,
		logger:    logging.WithOperation(logger, "process"),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *requestService) Process(ctx context.Context, sc *app.SchedulingContext, text string) (resp app.Response) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"session_id": sc.SessionID}
	defer func() {
		fields["success"] = resp.Success
		fields["results"] = len(resp.Results)
		fields["failures"] = len(resp.Errors)
		observe(ctx, s.observer, "process-request", startedAt, fields, nil)
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return app.Response{Message: EmptyRequestText}
	}

	resp = s.process(ctx, sc, text, fields)
	for _, h := range s.opts.Hooks {
		success := resp.Success
		resp = h.Apply(ctx, text, resp)
		resp.Success = success
	}
	return resp
}

func (s *requestService) process(ctx context.Context, sc *app.SchedulingContext, text string, fields map[string]any) app.Response {
	if s.opts.Classifier != nil {
		kind := s.opts.Classifier.Classify(ctx, text)
		fields["message_type"] = string(kind)
		if kind != intelligence.MessageCalendarAction {
			return s.converse(ctx, kind, text, "")
		}
	}

	descriptors, err := s.extractor.Extract(ctx, text, sc.Now())
	if err != nil {
		s.logger.Error("extract_failed", logging.Err(err))
		return app.Response{Message: ErrorMessage(err), Errors: []error{err}}
	}
	fields["descriptors"] = len(descriptors)

	if len(descriptors) == 1 && descriptors[0].Action == domain.ActionUnknown {
		question := descriptors[0].Clarification
		if question == "" || question == intelligence.ClarifyUnclear {
			return s.converse(ctx, intelligence.MessageCalendarIntent, text, question)
		}
		// A specific question names what is missing; it goes out unchanged.
		return app.Response{Message: question, Results: []*app.Result{clarify(question)}}
	}

	var (
		resp  app.Response
		lines []string
	)
	for _, d := range descriptors {
		res, err := s.execute(ctx, sc, d)
		if err != nil {
			resp.Errors = append(resp.Errors, err)
			lines = append(lines, failureLine(d, err))
			continue
		}
		resp.Results = append(resp.Results, res)
		lines = append(lines, res.Message)
		if res.Done() {
			resp.Success = true
		}
	}

	if len(lines) == 1 {
		if len(resp.Errors) == 1 {
			resp.Message = ErrorMessage(resp.Errors[0])
		} else {
			resp.Message = lines[0]
		}
		return resp
	}
	resp.Message = MultiActionHeader + "\n\n" + strings.Join(lines, "\n\n")
	return resp
}

// execute runs one descriptor and logs its failure. Errors without a known
// kind are logged at error level.
func (s *requestService) execute(ctx context.Context, sc *app.SchedulingContext, d domain.EventDescriptor) (*app.Result, error) {
	res, err := s.actions.Execute(ctx, sc, d)
	if err != nil {
		level := slog.LevelWarn
		if domain.KindOf(err) == nil {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "action_failed",
			logging.Action(string(d.Action)), logging.Title(d.DisplayTitle()), logging.Err(err))
		return nil, err
	}
	return res, nil
}

// converse answers a message that carries no executable action. Without a
// classifier the fallback text, or the default clarification, is returned.
func (s *requestService) converse(ctx context.Context, kind intelligence.MessageType, text, fallback string) app.Response {
	if fallback == "" {
		fallback = intelligence.ClarifyUnclear
	}
	if s.opts.Classifier == nil {
		return app.Response{Message: fallback, Results: []*app.Result{clarify(fallback)}}
	}
	reply, err := s.opts.Classifier.Reply(ctx, kind, text)
	if err != nil || reply == "" {
		s.logger.Warn("reply_failed", logging.Err(err))
		return app.Response{Message: fallback, Results: []*app.Result{clarify(fallback)}}
	}
	return app.Response{Success: true, Message: reply}
}

func clarify(msg string) *app.Result {
	return &app.Result{Action: domain.ActionUnknown, Outcome: app.OutcomeClarify, Message: msg}
}
