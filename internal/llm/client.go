// Package llm wraps the AI gateway behind three task-specific calls:
// essay feedback, portfolio-essay extraction, and resume extraction.
// All three force structured JSON output through tool calling.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"time"

	"essaylab_backend/internal/config"
	"essaylab_backend/internal/logger"
	"essaylab_backend/pkg/apperrors"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

type Client interface {
	AnalyzeEssay(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error)
	ParsePortfolioEssay(ctx context.Context, text string) (*ParsedPortfolioEssay, error)
	ParseResume(ctx context.Context, text string) (*ParsedResume, error)
}

type client struct {
	api         *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	maxRetries  int
}

// New builds a gateway client from config. The base URL is configurable so
// any OpenAI-compatible gateway works.
func New(cfg *config.Config) (Client, error) {
	if cfg.AI.APIKey == "" {
		return nil, errors.New("ai api key is not configured")
	}

	apiConfig := openai.DefaultConfig(cfg.AI.APIKey)
	if cfg.AI.BaseURL != "" {
		apiConfig.BaseURL = cfg.AI.BaseURL
	}

	return &client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.AI.Model,
		temperature: cfg.AI.Temperature,
		timeout:     time.Duration(cfg.AI.TimeoutSec) * time.Second,
		maxRetries:  cfg.AI.MaxRetries,
	}, nil
}

func (c *client) AnalyzeEssay(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	args, err := c.callTool(ctx, feedbackInstruction, BuildFeedbackPrompt(req),
		"submit_essay_feedback", feedbackToolSchema())
	if err != nil {
		return nil, err
	}

	var result AnalyzeResult
	if err := json.Unmarshal([]byte(args), &result); err != nil {
		return nil, apperrors.ErrAIGateway(fmt.Errorf("malformed feedback payload: %w", err))
	}

	// The gateway does not assign suggestion ids; they must be stable for
	// the applied/dismissed sets and the analytics log.
	for i := range result.Suggestions {
		if result.Suggestions[i].ID == "" {
			result.Suggestions[i].ID = uuid.NewString()
		}
	}

	return &result, nil
}

func (c *client) ParsePortfolioEssay(ctx context.Context, text string) (*ParsedPortfolioEssay, error) {
	args, err := c.callTool(ctx, portfolioParseInstruction, text,
		"submit_parsed_essay", portfolioToolSchema())
	if err != nil {
		return nil, err
	}

	var parsed ParsedPortfolioEssay
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return nil, apperrors.ErrAIGateway(fmt.Errorf("malformed parse payload: %w", err))
	}
	return &parsed, nil
}

func (c *client) ParseResume(ctx context.Context, text string) (*ParsedResume, error) {
	args, err := c.callTool(ctx, resumeParseInstruction, text,
		"submit_parsed_resume", resumeToolSchema())
	if err != nil {
		return nil, err
	}

	var parsed ParsedResume
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return nil, apperrors.ErrAIGateway(fmt.Errorf("malformed resume payload: %w", err))
	}
	return &parsed, nil
}

// callTool runs one chat completion with a forced tool call and returns the
// tool arguments JSON. Retries transient failures with jittered backoff.
func (c *client) callTool(ctx context.Context, system, user, toolName string, schema json.RawMessage) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:       toolName,
				Parameters: schema,
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: toolName},
		},
	}

	var lastErr error
	backoff := time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", apperrors.ErrAIGateway(ctx.Err())
			case <-time.After(jitter(backoff)):
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(callCtx, request)
		cancel()

		if err == nil {
			return extractToolArgs(resp, toolName)
		}

		if appErr := mapGatewayError(err); appErr != nil {
			return "", appErr
		}
		if !isRetryable(err) || ctx.Err() != nil {
			return "", apperrors.ErrAIGateway(err)
		}

		lastErr = err
		logger.Warn("ai gateway call failed, retrying",
			"tool", toolName, "attempt", attempt+1, "error", err.Error())
	}

	// Exhausted retries: surface rate limiting as its own condition.
	var apiErr *openai.APIError
	if errors.As(lastErr, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return "", apperrors.ErrAIRateLimited
	}
	return "", apperrors.ErrAIGateway(lastErr)
}

func extractToolArgs(resp openai.ChatCompletionResponse, toolName string) (string, error) {
	if len(resp.Choices) == 0 {
		return "", apperrors.ErrAIGateway(errors.New("empty completion response"))
	}
	for _, call := range resp.Choices[0].Message.ToolCalls {
		if call.Function.Name == toolName {
			return call.Function.Arguments, nil
		}
	}
	return "", apperrors.ErrAIGateway(fmt.Errorf("gateway did not call tool %s", toolName))
}

// mapGatewayError converts non-retryable gateway statuses into their
// dedicated AppErrors; returns nil for everything else.
func mapGatewayError(err error) *apperrors.AppError {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	switch apiErr.HTTPStatusCode {
	case 401:
		return apperrors.NewUnauthorizedError("AI gateway rejected credentials")
	case 402:
		return apperrors.ErrAICreditsRequired
	case 403:
		return apperrors.NewForbiddenError("AI gateway access denied")
	}
	return nil
}

func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.HTTPStatusCode
		return code == 408 || code == 429 || (code >= 500 && code <= 599)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// jitter spreads retries by +/-20%.
func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	factor := 0.8 + 0.4*rand.Float64()
	return time.Duration(float64(base) * factor)
}
