package openaicompat

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/uxlens/uxlens/pkg/types"
)

const (
	// DefaultModel is the vision model used when none is configured.
	DefaultModel = "gpt-4o"

	// DefaultImageModel is the model used for image generation.
	DefaultImageModel = "dall-e-3"

	// APIKeyEnv is the environment variable holding the API credential.
	APIKeyEnv = "OPENAI_API_KEY"
)

// Client calls an OpenAI-compatible chat completion API with image parts.
// Works against api.openai.com and self-hosted compatible servers.
type Client struct {
	baseURL string
	apiKey  string
}

// NewClient creates an OpenAI-compatible client. An empty baseURL uses the
// SDK default and an empty apiKey defers to OPENAI_API_KEY at call time.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey}
}

// Invoke sends the parts as one multi-content user message and returns the
// first choice's text.
func (c *Client) Invoke(ctx context.Context, model string, parts []types.Part) (string, error) {
	oc, err := c.newSDKClient()
	if err != nil {
		return "", err
	}

	content := make([]openai.ChatMessagePart, 0, len(parts))
	for _, p := range parts {
		if p.Image != nil {
			content = append(content, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: dataURI(p.Image),
				},
			})
			continue
		}
		content = append(content, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: p.Text,
		})
	}

	resp, err := oc.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: content},
		},
	})
	if err != nil {
		return "", c.wrapErr(ctx, err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", &types.ProviderError{Message: "no choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImages uses the images API with base64 response data.
func (c *Client) GenerateImages(ctx context.Context, model, prompt string, n int) ([]types.GeneratedImage, error) {
	oc, err := c.newSDKClient()
	if err != nil {
		return nil, err
	}

	resp, err := oc.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          model,
		N:              n,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, c.wrapErr(ctx, err, "image generation failed")
	}

	images := make([]types.GeneratedImage, 0, len(resp.Data))
	for _, d := range resp.Data {
		data, err := base64.StdEncoding.DecodeString(d.B64JSON)
		if err != nil {
			return nil, &types.ProviderError{Message: fmt.Sprintf("malformed image data: %v", err)}
		}
		images = append(images, types.GeneratedImage{Data: data, MIMEType: "image/png"})
	}
	return images, nil
}

func (c *Client) newSDKClient() (*openai.Client, error) {
	key := c.apiKey
	if key == "" {
		key = os.Getenv(APIKeyEnv)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: %s not set", types.ErrMissingCredential, APIKeyEnv)
	}

	cfg := openai.DefaultConfig(key)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

func (c *Client) wrapErr(ctx context.Context, err error, msg string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		status := ""
		if apiErr.Code != nil {
			status = fmt.Sprint(apiErr.Code)
		}
		return &types.ProviderError{
			StatusCode: apiErr.HTTPStatusCode,
			Status:     status,
			Message:    apiErr.Message,
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func dataURI(asset *types.ImageAsset) string {
	return fmt.Sprintf("data:%s;base64,%s", asset.MIMEType, base64.StdEncoding.EncodeToString(asset.Data))
}
