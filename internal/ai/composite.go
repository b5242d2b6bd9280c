package ai

import "context"

// Composite routes chat and image calls to different providers.
// A nil side answers ErrNotConfigured.
type Composite struct {
	Chat  Backend
	Image Backend
}

func (c *Composite) Complete(ctx context.Context, prompt, systemPreamble string) (string, error) {
	if c.Chat == nil {
		return "", ErrNotConfigured
	}
	return c.Chat.Complete(ctx, prompt, systemPreamble)
}

func (c *Composite) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.Image == nil {
		return "", ErrNotConfigured
	}
	return c.Image.GenerateImage(ctx, prompt)
}
