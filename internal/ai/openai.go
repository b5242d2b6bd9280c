package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAI serves any OpenAI-compatible API: OpenAI itself, Groq and OpenRouter
type OpenAI struct {
	name     string
	settings Settings
	client   *openai.Client
	logger   *zap.Logger
}

// NewOpenAI creates an OpenAI-compatible provider registered under name
func NewOpenAI(name string, settings Settings, logger *zap.Logger) *OpenAI {
	cfg := openai.DefaultConfig(settings.APIKey)
	if base := settings.baseURL(); base != "" {
		cfg.BaseURL = base
	}
	cfg.HTTPClient = &http.Client{}

	return &OpenAI{
		name:     name,
		settings: settings,
		client:   openai.NewClientWithConfig(cfg),
		logger:   logger.With(zap.String("provider", name)),
	}
}

// Complete calls the chat completions endpoint
func (o *OpenAI) Complete(ctx context.Context, prompt, systemPreamble string) (string, error) {
	if !o.settings.configured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := withTimeout(ctx, o.settings.Timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPreamble != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPreamble,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.settings.Model,
		Messages: messages,
	})
	if err != nil {
		return "", o.classify(err, start)
	}
	if len(resp.Choices) == 0 {
		o.logger.Error("Chat completion has no choices", zap.String("response_id", resp.ID))
		return "", unavailable(errEmptyCompletion)
	}

	o.logger.Debug("Chat completion received",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Int64("duration_ms", durationMs(start)),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage calls the image generation endpoint and returns the first URL
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !o.settings.configured() || o.settings.ImageModel == "" {
		return "", ErrNotConfigured
	}

	ctx, cancel := withTimeout(ctx, o.settings.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          o.settings.ImageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", o.classify(err, start)
	}

	if len(resp.Data) > 0 && resp.Data[0].URL != "" {
		o.logger.Debug("Image generated", zap.Int64("duration_ms", durationMs(start)))
		return resp.Data[0].URL, nil
	}

	o.logger.Warn("Image response has no URL", zap.Int("items", len(resp.Data)))
	return "", ErrNoImage
}

func (o *OpenAI) classify(err error, start time.Time) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		statusErr := newStatusError(o.name, apiErr.HTTPStatusCode, apiErr.Message)
		o.logStatus(statusErr, start)
		return statusErr
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		statusErr := newStatusError(o.name, reqErr.HTTPStatusCode, reqErr.Error())
		o.logStatus(statusErr, start)
		return statusErr
	}

	o.logger.Error("Request failed", zap.Int64("duration_ms", durationMs(start)), zap.Error(err))
	return unavailable(err)
}

func (o *OpenAI) logStatus(err *StatusError, start time.Time) {
	o.logger.Error("Provider returned error status",
		zap.Int("status", err.StatusCode),
		zap.String("message", err.Message),
		zap.Int64("duration_ms", durationMs(start)),
	)
}
