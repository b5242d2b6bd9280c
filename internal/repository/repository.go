package repository

import (
	"context"

	"smartzenbot/internal/domain"
)

// ModeRepository stores the interaction mode of each user
type ModeRepository interface {
	// Get returns the stored mode, or ModeIdle when nothing is stored
	Get(ctx context.Context, userID int64) (domain.UserMode, error)
	Set(ctx context.Context, userID int64, mode domain.UserMode) error
	Clear(ctx context.Context, userID int64) error
	// Take returns the stored mode and clears it in one step
	Take(ctx context.Context, userID int64) (domain.UserMode, error)
}
