package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Gemini serves chat completions through the Gemini API
type Gemini struct {
	settings Settings
	client   *genai.Client
	logger   *zap.Logger
}

// NewGemini creates a Gemini provider. Without an API key no client is built and calls fail fast.
func NewGemini(ctx context.Context, settings Settings, logger *zap.Logger) (*Gemini, error) {
	g := &Gemini{
		settings: settings,
		logger:   logger.With(zap.String("provider", "gemini")),
	}
	if !settings.configured() {
		return g, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     settings.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{},
	}
	if base := settings.baseURL(); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

// Complete generates a single-turn reply
func (g *Gemini) Complete(ctx context.Context, prompt, systemPreamble string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := withTimeout(ctx, g.settings.Timeout)
	defer cancel()

	var genCfg *genai.GenerateContentConfig
	if systemPreamble != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPreamble}}},
		}
	}
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.settings.Model, contents, genCfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code != 0 {
			statusErr := newStatusError("gemini", apiErr.Code, apiErr.Message)
			g.logger.Error("Gemini returned error status",
				zap.Int("status", apiErr.Code),
				zap.String("message", statusErr.Message),
				zap.Int64("duration_ms", durationMs(start)),
			)
			return "", statusErr
		}
		g.logger.Error("Gemini request failed", zap.Int64("duration_ms", durationMs(start)), zap.Error(err))
		return "", unavailable(err)
	}

	g.logger.Debug("Gemini reply received", zap.Int64("duration_ms", durationMs(start)))

	return strings.TrimSpace(resp.Text()), nil
}

// GenerateImage is not offered for Gemini
func (g *Gemini) GenerateImage(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
