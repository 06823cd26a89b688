// Package narrative talks to the chat-completion service that writes the
// free-text attrition assessments and retention recommendations.
package narrative

import (
	"context"
	"errors"
)

// Settings configures one completion request.
type Settings struct {
	Model     string
	MaxTokens int
}

// Provider generates text from a prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string, settings Settings) (string, error)
	Name() string
}

// ErrNotConfigured is returned when no API key has been set.
var ErrNotConfigured = errors.New("narrative: no API key configured")
