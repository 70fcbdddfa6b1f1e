package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements Interpreter on the OpenAI chat completions API or
// any compatible server.
type openAIClient struct {
	cfg    LLMConfig
	client *openai.Client
	caller caller
}

// NewOpenAIClient creates an Interpreter backed by the chat completions API.
// cfg.Endpoint, when set, is used as the base URL (including the /v1 suffix).
func NewOpenAIClient(cfg LLMConfig, observer Observer) (Interpreter, error) {
	if cfg.APIKey == "" && cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: openai requires DONNA_LLM_API_KEY", ErrNotConfigured)
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		conf.BaseURL = cfg.Endpoint
	}
	return &openAIClient{
		cfg:    cfg,
		client: openai.NewClientWithConfig(conf),
		caller: newCaller(cfg, observer, classifyOpenAIError),
	}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.caller.call(ctx, req, func(ctx context.Context, temp float64, maxTokens int) (string, string, error) {
		messages := make([]openai.ChatCompletionMessage, 0, 2)
		if req.SystemPrompt != "" {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			})
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserPrompt,
		})

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.cfg.Model,
			Messages:    messages,
			Temperature: float32(temp),
			MaxTokens:   maxTokens,
		})
		if err != nil {
			return "", "", err
		}
		if len(resp.Choices) == 0 {
			return "", resp.Model, nil
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}

func classifyOpenAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
