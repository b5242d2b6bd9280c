package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Replicate runs predictions against hosted models and waits synchronously for the output
type Replicate struct {
	settings Settings
	client   *http.Client
	logger   *zap.Logger
}

type replicatePrediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  any             `json:"error"`
}

// NewReplicate creates a Replicate provider
func NewReplicate(settings Settings, logger *zap.Logger) *Replicate {
	return &Replicate{
		settings: settings,
		client:   &http.Client{},
		logger:   logger.With(zap.String("provider", "replicate")),
	}
}

// Complete runs the chat model and joins the streamed tokens
func (r *Replicate) Complete(ctx context.Context, prompt, systemPreamble string) (string, error) {
	if !r.settings.configured() || r.settings.Model == "" {
		return "", ErrNotConfigured
	}

	input := map[string]any{"prompt": prompt}
	if systemPreamble != "" {
		input["system_prompt"] = systemPreamble
	}

	prediction, err := r.predict(ctx, r.settings.Model, input)
	if err != nil {
		return "", err
	}

	var tokens []string
	if err := json.Unmarshal(prediction.Output, &tokens); err != nil {
		var text string
		if err := json.Unmarshal(prediction.Output, &text); err != nil {
			r.logger.Error("Unexpected chat output", zap.String("prediction_id", prediction.ID), zap.Error(err))
			return "", unavailable(err)
		}
		return strings.TrimSpace(text), nil
	}

	return strings.TrimSpace(strings.Join(tokens, "")), nil
}

// GenerateImage runs the image model and returns the first output URL
func (r *Replicate) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !r.settings.configured() || r.settings.ImageModel == "" {
		return "", ErrNotConfigured
	}

	prediction, err := r.predict(ctx, r.settings.ImageModel, map[string]any{"prompt": prompt})
	if err != nil {
		return "", err
	}

	var refs []string
	if err := json.Unmarshal(prediction.Output, &refs); err != nil || len(refs) == 0 || refs[0] == "" {
		r.logger.Warn("Prediction produced no image",
			zap.String("prediction_id", prediction.ID),
			zap.ByteString("output", prediction.Output),
		)
		return "", ErrNoImage
	}

	return refs[0], nil
}

func (r *Replicate) predict(ctx context.Context, model string, input map[string]any) (*replicatePrediction, error) {
	ctx, cancel := withTimeout(ctx, r.settings.Timeout)
	defer cancel()

	start := time.Now()
	headers := map[string]string{
		"Authorization": "Bearer " + r.settings.APIKey,
		"Prefer":        "wait",
	}
	resp, err := postJSON(ctx, r.client, r.settings.baseURL()+"/models/"+model+"/predictions", headers,
		map[string]any{"input": input})
	if err != nil {
		r.logger.Error("Prediction request failed",
			zap.String("model", model),
			zap.Int64("duration_ms", durationMs(start)),
			zap.Error(err),
		)
		return nil, unavailable(err)
	}

	if !resp.ok() {
		statusErr := newStatusError("replicate", resp.status, errorMessage(resp.body))
		r.logger.Error("Prediction returned error status",
			zap.String("model", model),
			zap.Int("status", resp.status),
			zap.String("message", statusErr.Message),
			zap.Int64("duration_ms", durationMs(start)),
		)
		return nil, statusErr
	}

	var prediction replicatePrediction
	if err := json.Unmarshal(resp.body, &prediction); err != nil {
		r.logger.Error("Failed to decode prediction", zap.String("model", model), zap.Error(err))
		return nil, unavailable(err)
	}

	if prediction.Status != "succeeded" {
		r.logger.Error("Prediction did not succeed",
			zap.String("model", model),
			zap.String("prediction_id", prediction.ID),
			zap.String("prediction_status", prediction.Status),
			zap.Any("prediction_error", prediction.Error),
			zap.Int64("duration_ms", durationMs(start)),
		)
		return nil, unavailable(fmt.Errorf("prediction %s: %w", prediction.Status, errPredictionIncomplete))
	}

	r.logger.Debug("Prediction finished",
		zap.String("model", model),
		zap.String("prediction_id", prediction.ID),
		zap.Int64("duration_ms", durationMs(start)),
	)

	return &prediction, nil
}

var errPredictionIncomplete = errors.New("prediction did not complete")
