package client

import (
	"context"

	"github.com/uxlens/uxlens/pkg/types"
)

// VisionClient sends multimodal payloads to a hosted vision-language model.
// Each call issues exactly one outbound request; cancellation of ctx aborts
// the request in flight.
type VisionClient interface {
	// Invoke sends the parts in order and returns the model's text response
	// verbatim.
	Invoke(ctx context.Context, model string, parts []types.Part) (string, error)

	// GenerateImages asks an image generation model for n images of the
	// prompt. Backends without generation support return an error.
	GenerateImages(ctx context.Context, model, prompt string, n int) ([]types.GeneratedImage, error)
}
