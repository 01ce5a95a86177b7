package ai

import "context"

// Oracle is a prompt-in/text-out language model service.
// Implementations must be thread-safe for concurrent use.
//
// The oracle is opaque, probabilistic, and untrusted: callers must treat
// every response as possibly malformed, possibly slow, possibly empty text.
// Nothing downstream may assume structure without parsing defensively.
type Oracle interface {
	// Complete sends a prompt to the model and returns its raw text response.
	// The response carries no structural guarantee of any kind.
	// Returns an error if the model is unreachable or the call fails.
	Complete(ctx context.Context, prompt string) (string, error)
}
