package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/uxlens/uxlens/pkg/types"
)

// DefaultModel is the vision model used when none is configured.
const DefaultModel = "llava"

// Client wraps the Ollama API client for local vision models. No credential
// is required.
type Client struct {
	client *api.Client
}

// NewClient creates a new Ollama client for the given server URL.
func NewClient(ollamaURL string) (*Client, error) {
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	// Create base URL from the provided URL (removing path like /api/chat)
	baseURL := &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}

	// Create client with the specified URL, ignoring environment
	client := api.NewClient(baseURL, http.DefaultClient)

	return &Client{client: client}, nil
}

// Invoke sends the parts to the model as a single chat turn. The Ollama
// message shape carries one content string plus an image list, so text parts
// are folded into the prompt in order and images attach positionally.
func (c *Client) Invoke(ctx context.Context, model string, parts []types.Part) (string, error) {
	var sb strings.Builder
	var images []api.ImageData
	for _, p := range parts {
		if p.Image != nil {
			images = append(images, api.ImageData(p.Image.Data))
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text)
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: sb.String(),
				Images:  images,
			},
		},
		Stream: &streamFalse,
	}

	var responseContent string
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		responseContent = resp.Message.Content
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ollama chat error: %v", err)
	}

	return responseContent, nil
}

// GenerateImages is not supported by Ollama vision models.
func (c *Client) GenerateImages(ctx context.Context, model, prompt string, n int) ([]types.GeneratedImage, error) {
	return nil, fmt.Errorf("%w: the ollama backend does not support image generation", types.ErrInvalidInput)
}
