package ai

import (
	"context"
	"testing"
	"time"

	"smartzenbot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		chat          string
		image         string
		expectedChat  any
		expectedImage any
	}{
		{
			name:          "defaults",
			chat:          "qwen",
			image:         "replicate",
			expectedChat:  &DashScope{},
			expectedImage: &Replicate{},
		},
		{
			name:          "openai for both",
			chat:          "openai",
			image:         "openai",
			expectedChat:  &OpenAI{},
			expectedImage: &OpenAI{},
		},
		{
			name:         "groq without images",
			chat:         "groq",
			image:        "none",
			expectedChat: &OpenAI{},
		},
		{
			name:          "gemini chat",
			chat:          "gemini",
			image:         "replicate",
			expectedChat:  &Gemini{},
			expectedImage: &Replicate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				ChatProvider:  tt.chat,
				ImageProvider: tt.image,
				AITimeout:     30 * time.Second,
			}

			backend, err := New(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)

			assert.IsType(t, tt.expectedChat, backend.Chat)
			if tt.expectedImage == nil {
				assert.Nil(t, backend.Image)
			} else {
				assert.IsType(t, tt.expectedImage, backend.Image)
			}
		})
	}
}

func TestNew_SharesProviderInstance(t *testing.T) {
	cfg := &config.Config{ChatProvider: "openai", ImageProvider: "openai"}

	backend, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Same(t, backend.Chat, backend.Image)
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := &config.Config{ChatProvider: "claude", ImageProvider: "none"}

	backend, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, backend)
}

func TestProviderSettings(t *testing.T) {
	cfg := &config.Config{
		AITimeout:           10 * time.Second,
		ReplicateAPIToken:   "r8_token",
		ReplicateBaseURL:    "https://api.replicate.com/v1",
		ReplicateChatModel:  "meta/meta-llama-3-8b-instruct",
		ReplicateImageModel: "black-forest-labs/flux-schnell",
	}

	s, err := providerSettings("replicate", cfg)
	require.NoError(t, err)
	assert.Equal(t, Settings{
		APIKey:     "r8_token",
		BaseURL:    "https://api.replicate.com/v1",
		Model:      "meta/meta-llama-3-8b-instruct",
		ImageModel: "black-forest-labs/flux-schnell",
		Timeout:    10 * time.Second,
	}, s)
}
