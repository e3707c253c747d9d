// Package ai wraps an OpenAI-compatible chat-completions endpoint behind a
// small provider interface so letter generation can run without a configured
// key.
package ai

import (
	"context"
	"errors"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	System string
	Prompt string
}

type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrNotConfigured is returned by the no-op provider so callers fall back to
// template output.
var ErrNotConfigured = errors.New("ai_provider_not_configured")

type NoOpProvider struct{}

func (p *NoOpProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return "", ErrNotConfigured
}
