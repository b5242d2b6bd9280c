package service

import (
	"context"
	"time"

	"smartzenbot/internal/ai"
	"smartzenbot/internal/domain"

	"go.uber.org/zap"
)

// AssistantService turns user prompts into AI replies
type AssistantService struct {
	backend      ai.Backend
	systemPrompt string
	logger       *zap.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(backend ai.Backend, systemPrompt string, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		backend:      backend,
		systemPrompt: systemPrompt,
		logger:       logger,
	}
}

// Chat rejects blank text and forwards it unchanged to the chat backend
func (s *AssistantService) Chat(ctx context.Context, userID int64, text string) (string, error) {
	if _, err := domain.NormalizePrompt(text); err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := s.backend.Complete(ctx, text, s.systemPrompt)
	if err != nil {
		s.logger.Warn("Chat completion failed",
			zap.Int64("user_id", userID),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("Chat completion sent",
		zap.Int64("user_id", userID),
		zap.Int("reply_len", len(reply)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return reply, nil
}

// Image rejects blank text and returns a reference to the image generated from it
func (s *AssistantService) Image(ctx context.Context, userID int64, text string) (string, error) {
	if _, err := domain.NormalizePrompt(text); err != nil {
		return "", err
	}

	start := time.Now()
	ref, err := s.backend.GenerateImage(ctx, text)
	if err != nil {
		s.logger.Warn("Image generation failed",
			zap.Int64("user_id", userID),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("Image generated",
		zap.Int64("user_id", userID),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return ref, nil
}
