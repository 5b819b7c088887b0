// Package llm wires the OpenAI-compatible chat-completion client used for recommendations.
package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"recipeapi/internal/config"
)

// ChatCompleter is the subset of *openai.Client the recommendation service needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ ChatCompleter = (*openai.Client)(nil)

// NewClient builds a client from cfg. Outbound requests are traced and bounded by cfg.Timeout.
// An empty API key is accepted here; the upstream rejects the call and the caller sees the error.
func NewClient(cfg config.LLMConfig) *openai.Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return openai.NewClientWithConfig(oc)
}

// StatusCode extracts the upstream HTTP status from a client error, or 0 when the request never
// got a response (DNS, timeout, connection reset).
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
