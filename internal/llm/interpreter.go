package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// GenerateRequest holds the parameters for one interpreter call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an interpreter call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Interpreter turns a system prompt plus user text into raw model text. The
// text may or may not contain JSON; callers must treat it as untrusted.
type Interpreter interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// New builds the Interpreter selected by cfg.Provider.
func New(ctx context.Context, cfg LLMConfig, observer Observer) (Interpreter, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
	}
}

// attempt performs a single backend round trip.
type attempt func(ctx context.Context, temp float64, maxTokens int) (text, model string, err error)

// caller holds the retry, timeout and observation logic shared by backends.
type caller struct {
	cfg      LLMConfig
	observer Observer
	classify func(error) error
}

func newCaller(cfg LLMConfig, observer Observer, classify func(error) error) caller {
	if observer == nil {
		observer = NoopObserver{}
	}
	if classify == nil {
		classify = func(err error) error { return err }
	}
	return caller{cfg: cfg, observer: observer, classify: classify}
}

func (c caller) call(ctx context.Context, req GenerateRequest, do attempt) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		text, model, err := do(attemptCtx, temp, maxTok)
		timedOut := attemptCtx.Err() == context.DeadlineExceeded
		cancel()

		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Provider:  c.cfg.Provider,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}

		lastErr = err
		if timedOut {
			lastErr = ErrTimeout
		}

		// Parent cancellation ends the loop; per-attempt timeouts may retry.
		if ctx.Err() != nil {
			break
		}
	}

	finalErr := c.finalError(lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return nil, finalErr
}

func (c caller) finalError(lastErr error) error {
	switch {
	case errors.Is(lastErr, ErrTimeout):
		return ErrTimeout
	case isConnectionError(lastErr):
		return ErrUnavailable
	}
	classified := c.classify(lastErr)
	if errors.Is(classified, ErrUnavailable) || errors.Is(classified, ErrNotConfigured) {
		return classified
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, classified)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
