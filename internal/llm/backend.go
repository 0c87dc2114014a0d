package llm

import "context"

// Request is one provider call: a resolved model, the caller's credential and
// the prompt envelope.
type Request struct {
	Credential string
	Model      string
	System     string
	User       string
}

// Backend performs a single provider call and classifies its result.
// Implementations must not retry; retries belong to the gateway.
type Backend interface {
	Generate(ctx context.Context, req Request) Outcome
}
