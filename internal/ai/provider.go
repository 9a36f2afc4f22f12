package ai

import "context"

// Request is one generation call. SessionID is forwarded to the provider as
// its thread key; the adapter itself keeps no conversation state between calls.
type Request struct {
	SessionID string
	Text      string
	ImageData string
	AudioData string
	Model     string
}

type Provider interface {
	GenerateReply(ctx context.Context, req Request) (string, error)
}

// GenerationError is the single failure shape for provider-side errors of any
// kind (network, auth, quota). No retry, no backoff.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generation failed: " + e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }
