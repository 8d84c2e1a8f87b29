package ports

import "context"

// InferenceClient is the outbound interface to a text-generation backend.
type InferenceClient interface {
	// Generate submits a prompt and returns the model's textual response.
	Generate(ctx context.Context, prompt string) (string, error)
	// Warmup issues a throwaway generation so the model is resident in
	// memory before the first real request.
	Warmup(ctx context.Context) error
}
