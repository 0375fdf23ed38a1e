package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type generateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiClient implements Client with the Google Gen AI SDK.
type GeminiClient struct {
	model    string
	generate generateContentFunc
	logger   *zap.Logger
}

// NewGeminiClient creates a Gemini API backed client.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGeminiClient(model, client.Models.GenerateContent, logger), nil
}

func newGeminiClient(model string, generate generateContentFunc, logger *zap.Logger) *GeminiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{model: model, generate: generate, logger: logger}
}

// Complete sends one GenerateContent call. It does not retry.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := c.generate(ctx, c.model, contents, config)
	if err != nil {
		return "", wrapContextError(ctx, fmt.Errorf("generate content: %w", err))
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug("Gemini completion finished",
		zap.String("task", string(req.Task)),
		zap.String("model", c.model),
		zap.Duration("latency", time.Since(start)),
		zap.Int("responseLength", len(text)),
	)
	return text, nil
}

var _ Client = (*GeminiClient)(nil)
