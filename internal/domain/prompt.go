package domain

import (
	"errors"
	"strings"
)

// ErrEmptyPrompt is returned when a prompt has no visible characters
var ErrEmptyPrompt = errors.New("prompt is empty")

// NormalizePrompt trims surrounding whitespace and rejects empty prompts
func NormalizePrompt(text string) (string, error) {
	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}
