package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected UserMode
	}{
		{
			name:     "idle",
			input:    "idle",
			expected: ModeIdle,
		},
		{
			name:     "awaiting image prompt",
			input:    "awaiting_image_prompt",
			expected: ModeAwaitingImagePrompt,
		},
		{
			name:     "empty value",
			input:    "",
			expected: ModeIdle,
		},
		{
			name:     "unknown value",
			input:    "waiting_word",
			expected: ModeIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseUserMode(tt.input))
		})
	}
}

func TestNormalizePrompt(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      string
		expectedError error
	}{
		{
			name:     "plain text",
			input:    "a cat in space",
			expected: "a cat in space",
		},
		{
			name:     "surrounding whitespace",
			input:    "  hello \n",
			expected: "hello",
		},
		{
			name:          "empty string",
			input:         "",
			expectedError: ErrEmptyPrompt,
		},
		{
			name:          "only whitespace",
			input:         " \t\n ",
			expectedError: ErrEmptyPrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := NormalizePrompt(tt.input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, prompt)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, prompt)
		})
	}
}
