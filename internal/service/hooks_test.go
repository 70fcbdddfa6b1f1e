package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/intelligence"
)

type stubClassifier struct {
	kind       intelligence.MessageType
	mood       intelligence.Mood
	reply      string
	replyErr   error
	moodCalls  int
	replyCalls int
}

func (c *stubClassifier) Classify(context.Context, string) intelligence.MessageType {
	if c.kind == "" {
		return intelligence.MessageCalendarAction
	}
	return c.kind
}

func (c *stubClassifier) Mood(context.Context, string) intelligence.Mood {
	c.moodCalls++
	if c.mood == "" {
		return intelligence.MoodNeutral
	}
	return c.mood
}

func (c *stubClassifier) Reply(context.Context, intelligence.MessageType, string) (string, error) {
	c.replyCalls++
	return c.reply, c.replyErr
}

func first(int) int { return 0 }

func scheduledResponse() app.Response {
	return app.Response{
		Success: true,
		Message: "✅ Scheduled",
		Results: []*app.Result{{Outcome: app.OutcomeDone, Scheduled: []app.ScheduledEvent{{ID: "e1"}}}},
	}
}

func TestMotivationHook(t *testing.T) {
	hook := MotivationHook{Pick: first}

	out := hook.Apply(context.Background(), "lunch", scheduledResponse())
	assert.Equal(t, "✅ Scheduled\n\n"+MotivationalPhrases[0], out.Message)

	plain := app.Response{Success: true, Message: "I've deleted 'Lunch' from your calendar."}
	assert.Equal(t, plain, hook.Apply(context.Background(), "cancel lunch", plain))
}

func TestMotivationHook_RandomPickStaysInRange(t *testing.T) {
	out := MotivationHook{}.Apply(context.Background(), "lunch", scheduledResponse())
	assert.NotEqual(t, "✅ Scheduled", out.Message)
}

func TestMoodHook(t *testing.T) {
	c := &stubClassifier{mood: intelligence.MoodStressed}
	hook := MoodHook{Classifier: c, Pick: first}

	out := hook.Apply(context.Background(), "so much to do", scheduledResponse())
	assert.Equal(t, "✅ Scheduled\n\nI understand you're feeling stressed. Would you like me to schedule a relaxing walk (30 minutes) for you? Just tell me when.", out.Message)
	assert.True(t, out.Success)

	out = hook.Apply(context.Background(), "so much to do", app.Response{})
	assert.Equal(t, "I understand you're feeling stressed. Would you like me to schedule a relaxing walk (30 minutes) for you? Just tell me when.", out.Message)
}

func TestMoodHook_NeutralOrMissingClassifier(t *testing.T) {
	resp := scheduledResponse()

	c := &stubClassifier{mood: intelligence.MoodHappy}
	assert.Equal(t, resp, MoodHook{Classifier: c}.Apply(context.Background(), "yay", resp))
	assert.Equal(t, resp, MoodHook{}.Apply(context.Background(), "yay", resp))

	MoodHook{Classifier: c}.Apply(context.Background(), "   ", resp)
	assert.Equal(t, 1, c.moodCalls)
}
