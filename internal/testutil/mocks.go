package testutil

import (
	"context"

	"smartzenbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock for ai.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Complete(ctx context.Context, prompt, systemPreamble string) (string, error) {
	args := m.Called(ctx, prompt, systemPreamble)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockModeRepository is a mock for repository.ModeRepository
type MockModeRepository struct {
	mock.Mock
}

func (m *MockModeRepository) Get(ctx context.Context, userID int64) (domain.UserMode, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserMode), args.Error(1)
}

func (m *MockModeRepository) Set(ctx context.Context, userID int64, mode domain.UserMode) error {
	args := m.Called(ctx, userID, mode)
	return args.Error(0)
}

func (m *MockModeRepository) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockModeRepository) Take(ctx context.Context, userID int64) (domain.UserMode, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserMode), args.Error(1)
}
