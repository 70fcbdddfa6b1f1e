package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/donna/internal/llm"
)

// ScriptedInterpreter is an llm.Interpreter that answers by task. Tasks
// without a script return Default; Err, when set, fails every call.
type ScriptedInterpreter struct {
	mu       sync.Mutex
	Replies  map[llm.TaskType][]string
	Default  string
	Err      error
	Requests []llm.GenerateRequest
}

// NewScriptedInterpreter returns an interpreter whose extraction task
// answers with the given replies in order; the last reply repeats.
func NewScriptedInterpreter(extractReplies ...string) *ScriptedInterpreter {
	return &ScriptedInterpreter{Replies: map[llm.TaskType][]string{llm.TaskExtract: extractReplies}}
}

// On scripts the replies for task.
func (s *ScriptedInterpreter) On(task llm.TaskType, replies ...string) *ScriptedInterpreter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Replies == nil {
		s.Replies = map[llm.TaskType][]string{}
	}
	s.Replies[task] = replies
	return s
}

func (s *ScriptedInterpreter) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return nil, s.Err
	}
	text := s.Default
	if replies := s.Replies[req.Task]; len(replies) > 0 {
		text = replies[0]
		if len(replies) > 1 {
			s.Replies[req.Task] = replies[1:]
		}
	}
	return &llm.GenerateResponse{Text: text, Model: "scripted"}, nil
}

func (s *ScriptedInterpreter) Available(context.Context) bool {
	return s.Err == nil
}

// Calls returns how many requests were made for task.
func (s *ScriptedInterpreter) Calls(task llm.TaskType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.Requests {
		if r.Task == task {
			n++
		}
	}
	return n
}
