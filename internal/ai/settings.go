package ai

import (
	"strings"
	"time"
)

// Settings configures a single provider
type Settings struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	Timeout    time.Duration
}

func (s Settings) configured() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

func (s Settings) baseURL() string {
	return strings.TrimRight(s.BaseURL, "/")
}
