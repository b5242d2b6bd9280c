package handler

import (
	"fmt"
	"strings"
	"testing"

	"smartzenbot/internal/ai"
	"smartzenbot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "empty prompt", err: domain.ErrEmptyPrompt, expected: MsgEmptyPrompt},
		{name: "not configured", err: ai.ErrNotConfigured, expected: MsgNotConfigured},
		{name: "no image", err: fmt.Errorf("replicate: %w", ai.ErrNoImage), expected: MsgNoImage},
		{name: "status error", err: &ai.StatusError{Provider: "qwen", StatusCode: 500, Message: "rate limited"}, expected: MsgUnavailable},
		{name: "unknown error", err: fmt.Errorf("connection reset"), expected: MsgUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failureMessage(tt.err))
		})
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		limit    int
		expected []string
	}{
		{
			name:     "short text",
			text:     "hello",
			limit:    10,
			expected: []string{"hello"},
		},
		{
			name:     "split on newline",
			text:     "first line\nsecond line",
			limit:    15,
			expected: []string{"first line", "second line"},
		},
		{
			name:     "hard split",
			text:     "abcdefghij",
			limit:    4,
			expected: []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "counts characters not bytes",
			text:     strings.Repeat("ж", 5),
			limit:    5,
			expected: []string{strings.Repeat("ж", 5)},
		},
		{
			name:     "keeps runes whole",
			text:     strings.Repeat("é", 3),
			limit:    2,
			expected: []string{"éé", "é"},
		},
		{
			name:     "emoji",
			text:     "🧘🧘🧘",
			limit:    2,
			expected: []string{"🧘🧘", "🧘"},
		},
		{
			name:     "drops blank parts",
			text:     "ab\n \n\ncd",
			limit:    3,
			expected: []string{"ab", "cd"},
		},
		{
			name:     "only blank lines",
			text:     "\n\n\n",
			limit:    2,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitMessage(tt.text, tt.limit))
		})
	}
}
