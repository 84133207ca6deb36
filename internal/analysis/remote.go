package analysis

import (
	"context"
	"errors"
	"fmt"

	"aura/backend/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLMClient is the RemoteClient backed by an OpenAI-compatible chat endpoint.
type LLMClient struct {
	llm llms.Model
}

// NewLLMClient builds a client from the analysis settings. BaseURL and Model
// override the provider defaults when set.
func NewLLMClient(cfg config.AnalysisConfig) (*LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("analysis API key is empty")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return &LLMClient{llm: llm}, nil
}

// Complete sends a system and a user message and returns the first choice.
func (c *LLMClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{Role: llms.ChatMessageTypeSystem, Parts: []llms.ContentPart{llms.TextContent{Text: system}}},
		{Role: llms.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextContent{Text: prompt}}},
	}

	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(1500),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Content, nil
}
