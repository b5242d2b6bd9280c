package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DashScope talks to the native Qwen text-generation API
type DashScope struct {
	settings Settings
	client   *http.Client
	logger   *zap.Logger
}

type dashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type dashScopeRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []dashScopeMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string `json:"result_format"`
	} `json:"parameters"`
}

type dashScopeResponse struct {
	RequestID string `json:"request_id"`
	Output    struct {
		Choices []struct {
			Message dashScopeMessage `json:"message"`
		} `json:"choices"`
	} `json:"output"`
}

// NewDashScope creates a Qwen provider
func NewDashScope(settings Settings, logger *zap.Logger) *DashScope {
	return &DashScope{
		settings: settings,
		client:   &http.Client{},
		logger:   logger.With(zap.String("provider", "qwen")),
	}
}

// Complete sends prompt to the text-generation endpoint
func (d *DashScope) Complete(ctx context.Context, prompt, systemPreamble string) (string, error) {
	if !d.settings.configured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := withTimeout(ctx, d.settings.Timeout)
	defer cancel()

	req := dashScopeRequest{Model: d.settings.Model}
	if systemPreamble != "" {
		req.Input.Messages = append(req.Input.Messages, dashScopeMessage{Role: "system", Content: systemPreamble})
	}
	req.Input.Messages = append(req.Input.Messages, dashScopeMessage{Role: "user", Content: prompt})
	req.Parameters.ResultFormat = "message"

	start := time.Now()
	resp, err := postJSON(ctx, d.client, d.settings.baseURL()+"/services/aigc/text-generation/generation",
		map[string]string{"Authorization": "Bearer " + d.settings.APIKey}, req)
	if err != nil {
		d.logger.Error("Qwen request failed", zap.Int64("duration_ms", durationMs(start)), zap.Error(err))
		return "", unavailable(err)
	}

	if !resp.ok() {
		statusErr := newStatusError("qwen", resp.status, errorMessage(resp.body))
		d.logger.Error("Qwen returned error status",
			zap.Int("status", resp.status),
			zap.String("message", statusErr.Message),
			zap.Int64("duration_ms", durationMs(start)),
		)
		return "", statusErr
	}

	var out dashScopeResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		d.logger.Error("Failed to decode Qwen response", zap.Error(err))
		return "", unavailable(err)
	}
	if len(out.Output.Choices) == 0 {
		d.logger.Error("Qwen response has no choices", zap.String("request_id", out.RequestID))
		return "", unavailable(errEmptyCompletion)
	}

	d.logger.Debug("Qwen reply received",
		zap.Int("status", resp.status),
		zap.Int64("duration_ms", durationMs(start)),
	)

	return strings.TrimSpace(out.Output.Choices[0].Message.Content), nil
}

// GenerateImage is not offered by the text-generation API
func (d *DashScope) GenerateImage(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
