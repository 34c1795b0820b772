package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider serves the "openai" ref prefix. Pointing APIBase at any
// OpenAI-compatible endpoint (OpenRouter, local servers) also works.
type OpenAIProvider struct {
	client *openai.Client
	retry  RetryConfig
}

// NewOpenAIProvider builds a client for the given key and optional base URL.
func NewOpenAIProvider(apiKey, apiBase string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai: API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		cfg.BaseURL = apiBase
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		retry:  DefaultRetryConfig(),
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	ccReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		ccReq.MaxTokens = req.MaxTokens
	}
	if req.Temperature > 0 {
		ccReq.Temperature = req.Temperature
	}

	return generateWithRetry(ctx, p.retry, func() (*Response, error) {
		result, err := p.client.CreateChatCompletion(ctx, ccReq)
		if err != nil {
			return nil, classifyOpenAIError(err)
		}
		if len(result.Choices) == 0 {
			return nil, errors.New("openai: empty choices in response")
		}

		slog.Debug("openai completion",
			"model", req.Model,
			"prompt_tokens", result.Usage.PromptTokens,
			"completion_tokens", result.Usage.CompletionTokens)

		return &Response{
			Text: result.Choices[0].Message.Content,
			Usage: Usage{
				InputTokens:  result.Usage.PromptTokens,
				OutputTokens: result.Usage.CompletionTokens,
			},
		}, nil
	})
}

// classifyOpenAIError marks rate limits and server errors retryable.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500 {
			return Retryable(fmt.Errorf("openai api %d: %w", apiErr.HTTPStatusCode, err))
		}
		return fmt.Errorf("openai api %d: %w", apiErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("openai: %w", err)
}
