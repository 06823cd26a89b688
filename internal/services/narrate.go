package services

import (
	"context"
	"errors"
	"time"

	"attrition-go/internal/metrics"
	"attrition-go/internal/narrative"
)

// ErrNarrativeUnavailable means the completion service could not be
// reached or returned an error. Nothing is stored and the caller may retry.
var ErrNarrativeUnavailable = errors.New("narrative service unavailable")

type narrator struct {
	provider narrative.Provider
	model    string
	metrics  *metrics.Recorder
}

func (n narrator) generate(ctx context.Context, purpose, prompt string, maxTokens int) (string, error) {
	if n.provider == nil {
		return "", ErrNarrativeUnavailable
	}
	start := time.Now()
	text, err := n.provider.Generate(ctx, prompt, narrative.Settings{Model: n.model, MaxTokens: maxTokens})
	n.metrics.RecordNarrative(purpose, time.Since(start), err)
	if err != nil {
		return "", errors.Join(ErrNarrativeUnavailable, err)
	}
	return text, nil
}
