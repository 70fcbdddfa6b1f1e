package intelligence

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alexanderramin/donna/internal/llm"
	"github.com/alexanderramin/donna/internal/logging"
)

// MessageType is the coarse routing class of a user message.
type MessageType string

const (
	MessageCalendarAction      MessageType = "calendar_action"
	MessageCalendarIntent      MessageType = "calendar_intent"
	MessageGeneralConversation MessageType = "general_conversation"
)

// Mood is the emotional tone detected in a user message.
type Mood string

const (
	MoodSad      Mood = "sad"
	MoodStressed Mood = "stressed"
	MoodHappy    Mood = "happy"
	MoodNeutral  Mood = "neutral"
)

// Classifier routes messages and reads their mood. Both calls degrade to a
// safe default instead of failing.
type Classifier interface {
	// Classify returns MessageCalendarAction on any failure so the calendar
	// path always runs.
	Classify(ctx context.Context, text string) MessageType
	// Mood returns MoodNeutral on any failure.
	Mood(ctx context.Context, text string) Mood
	// Reply answers a non-action message conversationally.
	Reply(ctx context.Context, kind MessageType, text string) (string, error)
}

type classifier struct {
	client llm.Interpreter
	logger *slog.Logger
}

// NewClassifier creates a Classifier backed by an interpreter.
func NewClassifier(client llm.Interpreter, logger *slog.Logger) Classifier {
	if logger == nil {
		logger = logging.Discard()
	}
	return &classifier{client: client, logger: logger}
}

func (c *classifier) Classify(ctx context.Context, text string) MessageType {
	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskClassify,
		SystemPrompt: classifySystemPrompt,
		UserPrompt:   text,
	})
	if err != nil {
		c.logger.Warn("classify_failed", logging.Err(err))
		return MessageCalendarAction
	}
	switch kind := MessageType(firstWord(resp.Text)); kind {
	case MessageCalendarAction, MessageCalendarIntent, MessageGeneralConversation:
		return kind
	default:
		return MessageCalendarAction
	}
}

func (c *classifier) Mood(ctx context.Context, text string) Mood {
	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskMood,
		SystemPrompt: moodSystemPrompt,
		UserPrompt:   text,
	})
	if err != nil {
		c.logger.Warn("mood_failed", logging.Err(err))
		return MoodNeutral
	}
	switch mood := Mood(firstWord(resp.Text)); mood {
	case MoodSad, MoodStressed, MoodHappy:
		return mood
	default:
		return MoodNeutral
	}
}

func (c *classifier) Reply(ctx context.Context, kind MessageType, text string) (string, error) {
	prompt := conversationSystemPrompt
	if kind == MessageCalendarIntent {
		prompt = calendarIntentSystemPrompt
	}
	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskConverse,
		SystemPrompt: prompt,
		UserPrompt:   text,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// firstWord lowercases s and returns its first token with quotes and
// punctuation stripped.
func firstWord(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], `"'.,!:;`+"`")
}

const classifySystemPrompt = `Classify the message. Return ONLY one of these words:

calendar_action: the message has concrete calendar details such as a time ("at 2pm"),
a date or day ("on Monday", "tomorrow"), a duration ("for 1 hour") or a full event.

calendar_intent: the message wants calendar help but lacks details, e.g.
"I want to schedule some meetings" or "I need to plan my week".

general_conversation: greetings, small talk, general questions, anything not about the calendar.`

const moodSystemPrompt = `Decide whether the user is expressing an emotion.
Return ONLY one word: sad, stressed, happy, or neutral.`

const calendarIntentSystemPrompt = `You are Donna, a friendly and encouraging calendar assistant.
The user wants help with their calendar but has not given specific details.
Acknowledge what they want, ask for the details you need (what, which day or date,
what time, how long) with a short example, and end with a brief encouraging phrase.
Keep it concise.`

const conversationSystemPrompt = `You are Donna, a friendly and empathetic calendar assistant.
You can manage the user's calendar and also chat. Keep replies short, natural and warm.
If the user asks what you can do, explain that you can create, move, cancel and list
calendar events from plain language.`
