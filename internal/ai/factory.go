package ai

import (
	"context"
	"fmt"

	"smartzenbot/internal/config"

	"go.uber.org/zap"
)

// New builds the backend selected by CHAT_PROVIDER and IMAGE_PROVIDER
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Composite, error) {
	logger.Info("Initializing AI backend",
		zap.String("chat_provider", cfg.ChatProvider),
		zap.String("image_provider", cfg.ImageProvider),
	)

	built := make(map[string]Backend)
	get := func(name string) (Backend, error) {
		if b, ok := built[name]; ok {
			return b, nil
		}
		b, err := newProvider(ctx, name, cfg, logger)
		if err != nil {
			return nil, err
		}
		built[name] = b
		return b, nil
	}

	chat, err := get(cfg.ChatProvider)
	if err != nil {
		return nil, err
	}

	composite := &Composite{Chat: chat}
	if cfg.ImageProvider != "none" {
		image, err := get(cfg.ImageProvider)
		if err != nil {
			return nil, err
		}
		composite.Image = image
	}

	return composite, nil
}

func newProvider(ctx context.Context, name string, cfg *config.Config, logger *zap.Logger) (Backend, error) {
	settings, err := providerSettings(name, cfg)
	if err != nil {
		return nil, err
	}
	if !settings.configured() {
		logger.Warn("AI provider has no API key, requests will fail", zap.String("provider", name))
	}

	switch name {
	case "qwen":
		return NewDashScope(settings, logger), nil
	case "openai", "groq", "openrouter":
		return NewOpenAI(name, settings, logger), nil
	case "replicate":
		return NewReplicate(settings, logger), nil
	case "gemini":
		return NewGemini(ctx, settings, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", name)
	}
}

func providerSettings(name string, cfg *config.Config) (Settings, error) {
	s := Settings{Timeout: cfg.AITimeout}
	switch name {
	case "qwen":
		s.APIKey, s.BaseURL, s.Model = cfg.QwenAPIKey, cfg.QwenBaseURL, cfg.QwenModel
	case "openai":
		s.APIKey, s.BaseURL, s.Model = cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel
		s.ImageModel = cfg.OpenAIImageModel
	case "groq":
		s.APIKey, s.BaseURL, s.Model = cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel
	case "openrouter":
		s.APIKey, s.BaseURL, s.Model = cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.OpenRouterModel
	case "replicate":
		s.APIKey, s.BaseURL, s.Model = cfg.ReplicateAPIToken, cfg.ReplicateBaseURL, cfg.ReplicateChatModel
		s.ImageModel = cfg.ReplicateImageModel
	case "gemini":
		s.APIKey, s.Model = cfg.GeminiAPIKey, cfg.GeminiModel
	default:
		return Settings{}, fmt.Errorf("unknown AI provider: %s", name)
	}
	return s, nil
}
