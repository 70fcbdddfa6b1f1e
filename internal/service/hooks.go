package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/alexanderramin/donna/internal/app"
	"github.com/alexanderramin/donna/internal/intelligence"
)

// ResponseHook post-processes an orchestrator response. Hooks may only
// change the message; they never touch the calendar or the success flag.
type ResponseHook interface {
	Apply(ctx context.Context, text string, resp app.Response) app.Response
}

// MotivationalPhrases are appended after successful scheduling.
var MotivationalPhrases = []string{
	"You're doing great!",
	"Keep up the amazing work!",
	"You're making great progress!",
	"Have a beautiful day!",
	"You rock!",
	"Keep going, you're awesome!",
}

// MotivationHook appends an encouraging phrase when the request scheduled at
// least one event.
type MotivationHook struct {
	// Pick returns an index in [0,n). Nil means random.
	Pick func(n int) int
}

func (h MotivationHook) Apply(_ context.Context, _ string, resp app.Response) app.Response {
	if resp.ScheduledCount() == 0 {
		return resp
	}
	pick := h.Pick
	if pick == nil {
		pick = rand.IntN
	}
	resp.Message += "\n\n" + MotivationalPhrases[pick(len(MotivationalPhrases))]
	return resp
}

// RelaxingActivity is a calming event the mood hook can suggest.
type RelaxingActivity struct {
	Title       string
	DurationMin int
}

// RelaxingActivities are suggested to sad or stressed users.
var RelaxingActivities = []RelaxingActivity{
	{Title: "Relaxing Walk", DurationMin: 30},
	{Title: "Meditation Session", DurationMin: 20},
	{Title: "Relaxing Bath", DurationMin: 45},
	{Title: "Mindful Break", DurationMin: 15},
}

// MoodHook offers a relaxing activity when the user sounds sad or stressed.
type MoodHook struct {
	Classifier intelligence.Classifier
	// Pick returns an index in [0,n). Nil means random.
	Pick func(n int) int
}

func (h MoodHook) Apply(ctx context.Context, text string, resp app.Response) app.Response {
	if h.Classifier == nil || strings.TrimSpace(text) == "" {
		return resp
	}
	mood := h.Classifier.Mood(ctx, text)
	if mood != intelligence.MoodSad && mood != intelligence.MoodStressed {
		return resp
	}
	pick := h.Pick
	if pick == nil {
		pick = rand.IntN
	}
	a := RelaxingActivities[pick(len(RelaxingActivities))]
	offer := fmt.Sprintf("I understand you're feeling %s. Would you like me to schedule a %s (%d minutes) for you? Just tell me when.",
		mood, strings.ToLower(a.Title), a.DurationMin)
	if resp.Message == "" {
		resp.Message = offer
	} else {
		resp.Message += "\n\n" + offer
	}
	return resp
}
