package llm

import (
	"context"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// TaskType identifies the kind of interpreter task being performed.
type TaskType string

const (
	TaskExtract  TaskType = "extract"
	TaskClassify TaskType = "classify"
	TaskMood     TaskType = "mood"
	TaskConverse TaskType = "converse"
)

// Provider selects the interpreter backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the interpreter subsystem.
type LLMConfig struct {
	Provider   Provider `env:"PROVIDER, default=ollama"`
	LogCalls   bool     `env:"LOG_CALLS, default=false"`
	Endpoint   string   `env:"ENDPOINT"`
	Model      string   `env:"MODEL"`
	APIKey     string   `env:"API_KEY"`
	TimeoutMs  int      `env:"TIMEOUT_MS, default=15000"`
	MaxRetries int      `env:"MAX_RETRIES, default=0"`

	ExtractTimeoutMs  int `env:"EXTRACT_TIMEOUT_MS"`
	ClassifyTimeoutMs int `env:"CLASSIFY_TIMEOUT_MS"`
	ConverseTimeoutMs int `env:"CONVERSE_TIMEOUT_MS"`

	Tasks map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig targeting a local Ollama instance.
// Retries are off: a failed call surfaces to the caller immediately.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  15000,
		MaxRetries: 0,
		Tasks:      defaultTasks(),
	}
}

func defaultTasks() map[TaskType]TaskConfig {
	return map[TaskType]TaskConfig{
		TaskExtract:  {Temperature: 0.1, MaxTokens: 1024},
		TaskClassify: {Temperature: 0.0, MaxTokens: 16, TimeoutMs: 5000},
		TaskMood:     {Temperature: 0.0, MaxTokens: 16, TimeoutMs: 5000},
		TaskConverse: {Temperature: 0.6, MaxTokens: 512},
	}
}

var defaultModels = map[Provider]string{
	ProviderOllama: "llama3.2",
	ProviderGemini: "gemini-1.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
}

// LoadConfig reads DONNA_LLM_* variables through lookuper, falling back to
// defaults for unset values. A nil lookuper reads the process environment.
func LoadConfig(ctx context.Context, lookuper envconfig.Lookuper) (LLMConfig, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	var cfg LLMConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper("DONNA_LLM_", lookuper),
	}); err != nil {
		return LLMConfig{}, err
	}

	cfg.Provider = Provider(strings.ToLower(string(cfg.Provider)))
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	if cfg.Endpoint == "" && cfg.Provider == ProviderOllama {
		cfg.Endpoint = "http://localhost:11434"
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	cfg.Tasks = defaultTasks()
	applyTaskTimeout(&cfg, TaskExtract, cfg.ExtractTimeoutMs)
	applyTaskTimeout(&cfg, TaskClassify, cfg.ClassifyTimeoutMs)
	applyTaskTimeout(&cfg, TaskMood, cfg.ClassifyTimeoutMs)
	applyTaskTimeout(&cfg, TaskConverse, cfg.ConverseTimeoutMs)

	return cfg, nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeout(cfg *LLMConfig, task TaskType, ms int) {
	if ms <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = ms
	cfg.Tasks[task] = tc
}
