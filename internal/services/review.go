package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/metrics"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// ReviewRequest is the code handed to the reviewer.
type ReviewRequest struct {
	Code       string `json:"code" binding:"required"`
	Language   string `json:"language" binding:"required"`
	GithubLink string `json:"githubLink,omitempty"`
}

// Reviewer grades code for style and efficiency.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (completion.Review, error)
}

const reviewSystemPrompt = `You are an AI code reviewer that specializes in grading code for style and efficiency, and providing suggestions for improvement.
Reply with a JSON object with exactly two string fields: "feedback" (your review, with concrete suggestions) and "grade" (a letter grade such as A, B+ or C-).`

// OpenAIReviewer reviews code with an OpenAI-compatible chat completion model.
type OpenAIReviewer struct {
	client *openai.Client
	model  string
}

// NewOpenAIReviewer builds a reviewer. baseURL may be empty for the public API.
func NewOpenAIReviewer(apiKey, model, baseURL string) (*OpenAIReviewer, error) {
	if apiKey == "" {
		return nil, ErrReviewUnavailable
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	logger.Info().Str("model", model).Msg("Initializing OpenAI reviewer")
	return &OpenAIReviewer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func buildReviewPrompt(req ReviewRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the following code, written in %s:\n\n%s\n", req.Language, req.Code)
	if req.GithubLink != "" {
		fmt.Fprintf(&b, "\nThe code can be found at this Github link: %s\n", req.GithubLink)
	}
	b.WriteString("\nProvide feedback and a grade for the code.")
	return b.String()
}

func (r *OpenAIReviewer) Review(ctx context.Context, req ReviewRequest) (completion.Review, error) {
	start := time.Now()
	defer func() {
		metrics.ReviewDuration.Observe(time.Since(start).Seconds())
	}()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: reviewSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildReviewPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		metrics.Reviews.WithLabelValues("error").Inc()
		return completion.Review{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.Reviews.WithLabelValues("empty").Inc()
		return completion.Review{}, errors.New("openai returned no choices")
	}

	review, err := parseReview(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.Reviews.WithLabelValues("malformed").Inc()
		return completion.Review{}, err
	}
	metrics.Reviews.WithLabelValues("ok").Inc()
	return review, nil
}

func parseReview(content string) (completion.Review, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var out completion.Review
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return completion.Review{}, fmt.Errorf("decode review: %w", err)
	}
	if strings.TrimSpace(out.Feedback) == "" || strings.TrimSpace(out.Grade) == "" {
		return completion.Review{}, errors.New("review is missing feedback or grade")
	}
	return out, nil
}
