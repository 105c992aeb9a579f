package llmclient

import (
	"context"
	"errors"
)

// Prompt is one request to a text-generation service: a fixed system
// instruction plus the user message carrying the code.
type Prompt struct {
	System string
	User   string
}

// LLMClient defines the interface for text-generation providers.
type LLMClient interface {
	Name() string
	Close() error
	CountTokens(text string) int
	TokenCapacity() int
	Complete(ctx context.Context, p Prompt) (string, error)
}

var ErrEmptyResponse = errors.New("empty response from LLM")

// PermanentError indicates an error that will not resolve by asking again.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
