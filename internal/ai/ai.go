// Package ai adapts the configured AI providers to a single chat/image contract.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Backend is implemented by every provider and by Composite
type Backend interface {
	// Complete returns the trimmed chat reply for prompt
	Complete(ctx context.Context, prompt, systemPreamble string) (string, error)
	// GenerateImage returns the first image reference produced for prompt
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNotConfigured means the provider has no credentials or lacks the capability
	ErrNotConfigured = errors.New("ai provider is not configured")
	// ErrUnavailable covers transport failures, timeouts, bad payloads and non-2xx replies
	ErrUnavailable = errors.New("ai provider is unavailable")
	// ErrNoImage means the provider answered but returned no usable image reference
	ErrNoImage = errors.New("ai provider returned no image")
)

const maxErrorMessageLen = 150

var errEmptyCompletion = errors.New("empty completion")

// StatusError is a non-success reply from a provider
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnavailable
}

func newStatusError(provider string, code int, message string) *StatusError {
	return &StatusError{
		Provider:   provider,
		StatusCode: code,
		Message:    truncate(message, maxErrorMessageLen),
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func durationMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
