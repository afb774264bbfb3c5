// Package llm is the language model collaborator: given a prompt, it
// returns the model's free-text completion. The response carries no
// schema, callers must treat it as untrusted text.
package llm

import "context"

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Static always answers with a fixed string. Used in tests to stand in
// for a real model.
type Static struct {
	Response string
}

func (s Static) Complete(ctx context.Context, prompt string) (string, error) {
	return s.Response, nil
}
