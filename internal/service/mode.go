package service

import (
	"context"

	"smartzenbot/internal/domain"
	"smartzenbot/internal/repository"
)

// ModeService manages the per-user interaction mode
type ModeService struct {
	modeRepo repository.ModeRepository
}

// NewModeService creates a new mode service
func NewModeService(modeRepo repository.ModeRepository) *ModeService {
	return &ModeService{modeRepo: modeRepo}
}

// Current returns user's mode without changing it
func (s *ModeService) Current(ctx context.Context, userID int64) (domain.UserMode, error) {
	return s.modeRepo.Get(ctx, userID)
}

// AwaitImagePrompt makes the next text of the user an image prompt
func (s *ModeService) AwaitImagePrompt(ctx context.Context, userID int64) error {
	return s.modeRepo.Set(ctx, userID, domain.ModeAwaitingImagePrompt)
}

// ConsumeImagePrompt reports whether the user was awaiting an image prompt and resets them to idle
func (s *ModeService) ConsumeImagePrompt(ctx context.Context, userID int64) (bool, error) {
	mode, err := s.modeRepo.Take(ctx, userID)
	if err != nil {
		return false, err
	}
	return mode.IsAwaitingImagePrompt(), nil
}

// Reset puts the user back to idle
func (s *ModeService) Reset(ctx context.Context, userID int64) error {
	return s.modeRepo.Clear(ctx, userID)
}
