// Package ai defines the generic text-generation collaborator used for
// ambiguous speaker resolution. Providers know nothing about books or
// characters: prompt in, text out.
package ai

import "context"

// Provider generates text from a prompt. Implementations may fail and may
// return non-JSON text; callers must parse defensively.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}
