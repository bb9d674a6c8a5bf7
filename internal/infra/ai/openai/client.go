package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/quirky-analytics/leadgen/internal/domain/ai"
	"github.com/quirky-analytics/leadgen/internal/domain/lead"
	"github.com/quirky-analytics/leadgen/internal/infra/ai/prompt"
)

// Token budgets per stage. The pain stage returns a larger document.
const (
	fitMaxTokens  = 2000
	painMaxTokens = 3000
)

const defaultModel = "gpt-4o-2024-08-06"

type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// NewClientWithConfig is used by tests to point the adapter at a fake server.
func NewClientWithConfig(cfg openai.ClientConfig, model string) *Client {
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// AnalyzeFit runs the stage-1 qualification prompt.
func (c *Client) AnalyzeFit(ctx context.Context, crit lead.Criteria, companyName string) (string, error) {
	return c.Complete(ctx, prompt.FitPrompt(crit, companyName), fitMaxTokens)
}

// AnalyzePain runs the stage-2 deep-dive prompt.
func (c *Client) AnalyzePain(ctx context.Context, profile lead.CompanyProfile) (string, error) {
	return c.Complete(ctx, prompt.PainPrompt(profile), painMaxTokens)
}

// Complete sends one user-role message and returns the raw reply text.
// Failures are wrapped as ProviderError; HTTP 429 additionally matches
// ai.ErrQuotaExceeded. No retries.
func (c *Client) Complete(ctx context.Context, promptText string, maxTokens int) (string, error) {
	model := c.model
	if model == "" {
		model = defaultModel
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: promptText},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", &domai.ProviderError{Err: fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)}
		}
		return "", &domai.ProviderError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &domai.ProviderError{Err: fmt.Errorf("provider returned no choices")}
	}

	return resp.Choices[0].Message.Content, nil
}
