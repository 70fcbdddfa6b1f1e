package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/domain"
	"github.com/alexanderramin/donna/internal/intelligence"
	"github.com/alexanderramin/donna/internal/llm"
	"github.com/alexanderramin/donna/internal/normalize"
	"github.com/alexanderramin/donna/internal/testutil"
)

type stubExtractor struct {
	out   []domain.EventDescriptor
	err   error
	calls int
}

func (e *stubExtractor) Extract(context.Context, string, time.Time) ([]domain.EventDescriptor, error) {
	e.calls++
	return e.out, e.err
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func newRequest(store *testutil.MemoryStore, ex intelligence.Extractor, opts RequestOptions) RequestService {
	return NewRequestService(ex, NewActionService(store, nil), opts, nil)
}

func TestProcess_EmptyText(t *testing.T) {
	ex := &stubExtractor{}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{}).
		Process(context.Background(), newSession(testutil.MondayMorning), "   ")
	assert.False(t, resp.Success)
	assert.Equal(t, EmptyRequestText, resp.Message)
	assert.Zero(t, ex.calls)
}

func TestProcess_SingleCreate(t *testing.T) {
	store := testutil.NewMemoryStore()
	ex := &stubExtractor{out: []domain.EventDescriptor{
		testutil.Create("Dentist", on("2024-06-11", "02:00 PM"), lasting(60)),
	}}
	resp := newRequest(store, ex, RequestOptions{}).
		Process(context.Background(), newSession(testutil.MondayMorning), "dentist tomorrow at 2pm for an hour")

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.ScheduledCount())
	assert.Empty(t, resp.Errors)
	assert.NotContains(t, resp.Message, MultiActionHeader)
	assert.Contains(t, resp.Message, "✅ Scheduled 'Dentist' for Tuesday, June 11 at 02:00 PM (1 hour)")
}

func TestProcess_SingleFailure(t *testing.T) {
	ex := &stubExtractor{out: []domain.EventDescriptor{
		{Action: domain.ActionDelete, OriginalTitle: "Dentist", Date: "2024-06-11"},
	}}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{}).
		Process(context.Background(), newSession(testutil.MondayMorning), "cancel the dentist")

	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.ErrorIs(t, resp.Errors[0], domain.ErrEventNotFound)
	assert.Equal(t, "I couldn't find an event matching 'Dentist'. Could you provide more details?", resp.Message)
}

func TestProcess_MultipleActions(t *testing.T) {
	store := testutil.NewMemoryStore(testutil.NewEvent("Team meeting", testutil.At(11, 14, 0), 60))
	ex := &stubExtractor{out: []domain.EventDescriptor{
		testutil.Create("Lunch", on("2024-06-11", "12:00 PM")),
		{Action: domain.ActionDelete, OriginalTitle: "Dentist", Date: "2024-06-11"},
		{Action: domain.ActionView, Date: "2024-06-11"},
	}}
	resp := newRequest(store, ex, RequestOptions{}).
		Process(context.Background(), newSession(testutil.MondayMorning), "lunch, cancel dentist, show tuesday")

	assert.True(t, resp.Success)
	assert.Len(t, resp.Results, 2)
	assert.Len(t, resp.Errors, 1)

	want := MultiActionHeader + "\n\n" +
		resp.Results[0].Message + "\n\n" +
		"❌ Failed to delete 'Dentist': I couldn't find an event matching 'Dentist'. Could you provide more details?\n\n" +
		resp.Results[1].Message
	assert.Equal(t, want, resp.Message)
	assert.Len(t, resp.Results[1].Listed, 2, "view sees the event created earlier in the same request")
}

func TestProcess_ExtractFailure(t *testing.T) {
	ex := &stubExtractor{err: fmt.Errorf("llm extract failed: %w", llm.ErrUnavailable)}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{}).
		Process(context.Background(), newSession(testutil.MondayMorning), "lunch friday")
	assert.False(t, resp.Success)
	assert.Equal(t, InterpreterMessage, resp.Message)
	assert.Len(t, resp.Errors, 1)
}

func TestProcess_UnknownReturnsClarification(t *testing.T) {
	ex := &stubExtractor{out: []domain.EventDescriptor{domain.Unknown("Which day?")}}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{}).
		Process(context.Background(), newSession(testutil.MondayMorning), "something")
	assert.False(t, resp.Success)
	assert.Equal(t, "Which day?", resp.Message)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, app.OutcomeClarify, resp.Results[0].Outcome)
}

func TestProcess_UnclearWithClassifierConverses(t *testing.T) {
	ex := &stubExtractor{out: []domain.EventDescriptor{domain.Unknown(intelligence.ClarifyUnclear)}}
	c := &stubClassifier{reply: "Sure, what should I put on your calendar?"}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{Classifier: c}).
		Process(context.Background(), newSession(testutil.MondayMorning), "help me plan")
	assert.True(t, resp.Success)
	assert.Equal(t, "Sure, what should I put on your calendar?", resp.Message)

	c.replyErr = llm.ErrTimeout
	resp = newRequest(testutil.NewMemoryStore(), ex, RequestOptions{Classifier: c}).
		Process(context.Background(), newSession(testutil.MondayMorning), "help me plan")
	assert.False(t, resp.Success)
	assert.Equal(t, intelligence.ClarifyUnclear, resp.Message)
}

func TestProcess_SpecificClarificationSurvivesClassifier(t *testing.T) {
	const question = "I need more information to identify the event you want to delete. Please include date, day, or time."
	ex := &stubExtractor{out: []domain.EventDescriptor{domain.Unknown(question)}}
	c := &stubClassifier{reply: "Happy to help! What's on your mind?"}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{Classifier: c}).
		Process(context.Background(), newSession(testutil.MondayMorning), "cancel the dentist")

	assert.False(t, resp.Success)
	assert.Equal(t, question, resp.Message)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, app.OutcomeClarify, resp.Results[0].Outcome)
	assert.Zero(t, c.replyCalls)
}

func TestProcess_ClassifierRoutesConversation(t *testing.T) {
	ex := &stubExtractor{}
	c := &stubClassifier{kind: intelligence.MessageGeneralConversation, reply: "Hi there!"}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{Classifier: c}).
		Process(context.Background(), newSession(testutil.MondayMorning), "hello")
	assert.True(t, resp.Success)
	assert.Equal(t, "Hi there!", resp.Message)
	assert.Zero(t, ex.calls)
}

type flipHook struct{}

func (flipHook) Apply(_ context.Context, _ string, resp app.Response) app.Response {
	resp.Success = !resp.Success
	resp.Message += " [hooked]"
	return resp
}

func TestProcess_HooksKeepSuccess(t *testing.T) {
	ex := &stubExtractor{out: []domain.EventDescriptor{testutil.Create("Lunch", on("2024-06-11", "12:00 PM"))}}
	resp := newRequest(testutil.NewMemoryStore(), ex, RequestOptions{Hooks: []ResponseHook{MotivationHook{Pick: first}, flipHook{}}}).
		Process(context.Background(), newSession(testutil.MondayMorning), "lunch tuesday")

	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "\n\n"+MotivationalPhrases[0]+" [hooked]")
}

func TestProcess_ObservesRequest(t *testing.T) {
	obs := &recordingObserver{}
	ex := &stubExtractor{out: []domain.EventDescriptor{testutil.Create("Lunch", on("2024-06-11", "12:00 PM"))}}
	svc := NewRequestService(ex, NewActionService(testutil.NewMemoryStore(), nil, obs), RequestOptions{}, nil, obs)
	svc.Process(context.Background(), newSession(testutil.MondayMorning), "lunch tuesday")

	require.Len(t, obs.events, 2)
	assert.Equal(t, "execute-schedule", obs.events[0].Name)
	assert.Equal(t, "process-request", obs.events[1].Name)
	assert.Equal(t, true, obs.events[1].Fields["success"])
	assert.Equal(t, 1, obs.events[1].Fields["descriptors"])
}

func TestProcess_EndToEndWithInterpreter(t *testing.T) {
	store := testutil.NewMemoryStore(testutil.NewEvent("Dentist appointment", testutil.At(12, 15, 0), 60, testutil.WithID("d1")))
	interp := testutil.NewScriptedInterpreter(`Here you go:
[
  {"action": "CREATE", "title": "Lunch with Sam", "date": "2024-06-11", "time": "12:30pm", "duration": "90 minutes"},
  {"action": "EDIT", "original_title": "dentist appointment", "day": "wednesday", "time": "3:15pm"}
]`)
	ex := intelligence.NewExtractor(interp, normalize.DefaultPolicy(), nil)
	svc := NewRequestService(ex, NewActionService(store, nil), RequestOptions{}, nil)

	resp := svc.Process(context.Background(), newSession(testutil.MondayMorning), "lunch with Sam tuesday and push the dentist to 3:15")
	require.Empty(t, resp.Errors)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, MultiActionHeader)
	assert.Contains(t, resp.Message, "✅ Scheduled 'Lunch with Sam' for Tuesday, June 11 at 12:30 PM (1 hour and 30 minutes)")
	assert.Contains(t, resp.Message, "I've updated 'Dentist appointment' in your calendar.")

	moved, err := store.GetEvent(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, moved.Start.Equal(testutil.At(12, 15, 15)))
	assert.Equal(t, 1, interp.Calls(llm.TaskExtract))
}

func TestProcess_InterpreterDown(t *testing.T) {
	interp := testutil.NewScriptedInterpreter()
	interp.Err = errors.Join(llm.ErrUnavailable, errors.New("connection refused"))
	svc := NewRequestService(intelligence.NewExtractor(interp, normalize.DefaultPolicy(), nil),
		NewActionService(testutil.NewMemoryStore(), nil), RequestOptions{}, nil)

	resp := svc.Process(context.Background(), newSession(testutil.MondayMorning), "lunch tuesday")
	assert.False(t, resp.Success)
	assert.Equal(t, InterpreterMessage, resp.Message)
}
