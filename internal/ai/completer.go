// Package ai defines the language-model completion capability and its
// OpenAI implementation.
package ai

import "context"

// Completer is the model collaborator: one system prompt, one user payload,
// one raw text completion back. Callers own parsing of the returned text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}
