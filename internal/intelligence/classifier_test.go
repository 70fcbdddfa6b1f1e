package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/donna/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		response string
		want     MessageType
	}{
		{"calendar_action", MessageCalendarAction},
		{"  'calendar_intent'\n", MessageCalendarIntent},
		{"General_Conversation.", MessageGeneralConversation},
		{"I think this is small talk", MessageCalendarAction},
	}
	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			client := &mockInterpreter{response: tt.response}
			c := NewClassifier(client, nil)
			assert.Equal(t, tt.want, c.Classify(context.Background(), "hello"))
			assert.Equal(t, llm.TaskClassify, client.last.Task)
		})
	}
}

func TestClassifier_ClassifyFailureDefaultsToAction(t *testing.T) {
	c := NewClassifier(&mockInterpreter{err: llm.ErrUnavailable}, nil)
	assert.Equal(t, MessageCalendarAction, c.Classify(context.Background(), "lunch friday"))
}

func TestClassifier_Mood(t *testing.T) {
	tests := map[string]Mood{
		"sad":        MoodSad,
		"Stressed.":  MoodStressed,
		"happy!":     MoodHappy,
		"neutral":    MoodNeutral,
		"melancholy": MoodNeutral,
	}
	for response, want := range tests {
		client := &mockInterpreter{response: response}
		c := NewClassifier(client, nil)
		assert.Equal(t, want, c.Mood(context.Background(), "ugh"), response)
		assert.Equal(t, llm.TaskMood, client.last.Task)
	}

	failing := NewClassifier(&mockInterpreter{err: llm.ErrTimeout}, nil)
	assert.Equal(t, MoodNeutral, failing.Mood(context.Background(), "ugh"))
}

func TestClassifier_Reply(t *testing.T) {
	client := &mockInterpreter{response: "  Sure! What would you like to schedule?  "}
	c := NewClassifier(client, nil)

	reply, err := c.Reply(context.Background(), MessageCalendarIntent, "help me plan my week")
	require.NoError(t, err)
	assert.Equal(t, "Sure! What would you like to schedule?", reply)
	assert.Equal(t, llm.TaskConverse, client.last.Task)
	assert.Equal(t, calendarIntentSystemPrompt, client.last.SystemPrompt)

	_, err = c.Reply(context.Background(), MessageGeneralConversation, "hi")
	require.NoError(t, err)
	assert.Equal(t, conversationSystemPrompt, client.last.SystemPrompt)

	_, err = NewClassifier(&mockInterpreter{err: llm.ErrUnavailable}, nil).
		Reply(context.Background(), MessageGeneralConversation, "hi")
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}
