package service

import (
	"context"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recipeapi/internal/config"
	"recipeapi/internal/llm"
	"recipeapi/internal/model"
)

// Recommender asks the language model for a recipe suited to the uploaded records.
type Recommender interface {
	// Recommend makes exactly one model call and returns the first completion's text unchanged.
	Recommend(ctx context.Context, records model.RecordSet) (string, error)
}

type recommender struct {
	client llm.ChatCompleter
	cfg    config.LLMConfig
	limits config.PromptConfig
}

// NewRecommender constructs a Recommender. cfg supplies model, token ceiling, temperature and the
// per-call timeout; limits caps the prompt size.
func NewRecommender(client llm.ChatCompleter, cfg config.LLMConfig, limits config.PromptConfig) Recommender {
	return &recommender{client: client, cfg: cfg, limits: limits}
}

func (s *recommender) Recommend(ctx context.Context, records model.RecordSet) (string, error) {
	prompt, embedded := BuildPrompt(records, s.limits)

	ctx, span := tracer.Start(ctx, "recommend", trace.WithAttributes(
		attribute.String("llm.model", s.cfg.Model),
		attribute.Int("csv.rows", records.Len()),
		attribute.Int("prompt.rows", embedded),
		attribute.Int("prompt.bytes", len(prompt)),
	))
	defer span.End()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: float32(s.cfg.Temperature),
	})
	if err != nil {
		rerr := &RecommendationError{StatusCode: llm.StatusCode(err), Err: err}
		span.RecordError(rerr)
		span.SetStatus(codes.Error, "model call failed")
		return "", rerr
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		span.SetStatus(codes.Error, "empty completion")
		return "", &RecommendationError{Err: ErrNoCompletions}
	}
	span.SetAttributes(attribute.Int("llm.completion_tokens", resp.Usage.CompletionTokens))
	return resp.Choices[0].Message.Content, nil
}
