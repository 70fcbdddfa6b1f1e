package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient implements Interpreter on the Gemini generative API.
type geminiClient struct {
	cfg    LLMConfig
	client *genai.Client
	caller caller
}

// NewGeminiClient creates an Interpreter backed by Gemini. cfg.APIKey is
// required; cfg.Endpoint optionally overrides the API host.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (Interpreter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini requires DONNA_LLM_API_KEY", ErrNotConfigured)
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{
		cfg:    cfg,
		client: client,
		caller: newCaller(cfg, observer, nil),
	}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	return c.caller.call(ctx, req, func(ctx context.Context, temp float64, maxTokens int) (string, string, error) {
		model := c.client.GenerativeModel(c.cfg.Model)
		model.SetTemperature(float32(temp))
		if maxTokens > 0 {
			model.SetMaxOutputTokens(int32(maxTokens))
		}
		if req.SystemPrompt != "" {
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(req.SystemPrompt)},
			}
		}

		resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
		if err != nil {
			return "", "", err
		}
		return responseText(resp), c.cfg.Model, nil
	})
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// First candidate only.
		break
	}
	return b.String()
}

func (c *geminiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := c.client.GenerativeModel(c.cfg.Model).Info(ctx)
	return err == nil
}

// Close releases the underlying client connection.
func (c *geminiClient) Close() error {
	return c.client.Close()
}
