package domain

// UserMode represents how the next free-text message of a user is interpreted
type UserMode string

const (
	ModeIdle                UserMode = "idle"
	ModeAwaitingImagePrompt UserMode = "awaiting_image_prompt"
)

// ParseUserMode maps a stored value back to a mode. Unknown values are Idle.
func ParseUserMode(s string) UserMode {
	switch UserMode(s) {
	case ModeAwaitingImagePrompt:
		return ModeAwaitingImagePrompt
	default:
		return ModeIdle
	}
}

// IsAwaitingImagePrompt reports whether the next text is an image prompt
func (m UserMode) IsAwaitingImagePrompt() bool {
	return m == ModeAwaitingImagePrompt
}
