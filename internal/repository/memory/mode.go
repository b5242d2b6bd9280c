package memory

import (
	"context"
	"sync"

	"smartzenbot/internal/domain"
)

// ModeRepo implements repository.ModeRepository in process memory
type ModeRepo struct {
	modes map[int64]domain.UserMode
	mu    sync.RWMutex
}

// NewModeRepo creates an empty in-memory mode repository
func NewModeRepo() *ModeRepo {
	return &ModeRepo{modes: make(map[int64]domain.UserMode)}
}

// Get returns user's current mode
func (r *ModeRepo) Get(_ context.Context, userID int64) (domain.UserMode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mode, exists := r.modes[userID]
	if !exists {
		return domain.ModeIdle, nil
	}
	return mode, nil
}

// Set stores user's mode. Idle is stored as absence.
func (r *ModeRepo) Set(_ context.Context, userID int64, mode domain.UserMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mode == domain.ModeIdle {
		delete(r.modes, userID)
		return nil
	}
	r.modes[userID] = mode
	return nil
}

// Clear resets user to idle
func (r *ModeRepo) Clear(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.modes, userID)
	return nil
}

// Take returns user's mode and resets it to idle
func (r *ModeRepo) Take(_ context.Context, userID int64) (domain.UserMode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mode, exists := r.modes[userID]
	if !exists {
		return domain.ModeIdle, nil
	}
	delete(r.modes, userID)
	return mode, nil
}

// Len returns the number of users not in idle mode
func (r *ModeRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modes)
}
