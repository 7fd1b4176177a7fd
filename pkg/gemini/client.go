package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/uxlens/uxlens/pkg/types"
)

const (
	// DefaultBaseURL is the Gemini REST endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the vision model used for analyze and compare.
	DefaultModel = "gemini-3-pro-image-preview"

	// DefaultImageModel is the model used for image generation.
	DefaultImageModel = "gemini-2.5-flash-image"

	// APIKeyEnv is the environment variable holding the API credential.
	APIKeyEnv = "GOOGLE_API_KEY"
)

// Client calls the Gemini generateContent API over HTTPS.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Gemini client. An empty baseURL uses the public
// endpoint, an empty apiKey defers to the GOOGLE_API_KEY environment
// variable at call time, and a nil httpClient uses http.DefaultClient.
// No timeout is imposed; bound the context to limit a call.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Wire types for the generateContent request and response.
type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	CandidateCount int `json:"candidateCount,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64 encoded
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Invoke sends the parts in order and returns the concatenated text of the
// first candidate.
func (c *Client) Invoke(ctx context.Context, model string, parts []types.Part) (string, error) {
	resp, err := c.generateContent(ctx, model, encodeParts(parts), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", &types.ProviderError{Message: "no candidates returned"}
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// GenerateImages sends the prompt to an image generation model and returns
// up to n images from the response's inline data parts. The count is passed
// as the candidate count; the model may still return fewer.
func (c *Client) GenerateImages(ctx context.Context, model, prompt string, n int) ([]types.GeneratedImage, error) {
	resp, err := c.generateContent(ctx, model, []part{{Text: prompt}}, &generationConfig{CandidateCount: n})
	if err != nil {
		return nil, err
	}

	var images []types.GeneratedImage
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, &types.ProviderError{Message: fmt.Sprintf("malformed inline image data: %v", err)}
			}
			images = append(images, types.GeneratedImage{Data: data, MIMEType: p.InlineData.MIMEType})
			if len(images) == n {
				return images, nil
			}
		}
	}
	return images, nil
}

func (c *Client) resolveKey() (string, error) {
	key := c.apiKey
	if key == "" {
		key = os.Getenv(APIKeyEnv)
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s not set, get a key from https://aistudio.google.com/apikey",
			types.ErrMissingCredential, APIKeyEnv)
	}
	return key, nil
}

// generateContent performs a single generateContent round trip. No retries.
func (c *Client) generateContent(ctx context.Context, model string, parts []part, cfg *generationConfig) (*generateContentResponse, error) {
	key, err := c.resolveKey()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(generateContentRequest{
		Contents:         []content{{Role: "user", Parts: parts}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Header auth keeps the credential out of request logs.
	req.Header.Set("x-goog-api-key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		perr := &types.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
		var er generateContentResponse
		if json.Unmarshal(respBody, &er) == nil && er.Error != nil {
			perr.Status = er.Error.Status
			perr.Message = er.Error.Message
		}
		return nil, perr
	}

	var out generateContentResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &types.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response body: %v", err),
		}
	}
	if out.Error != nil {
		return nil, &types.ProviderError{
			StatusCode: out.Error.Code,
			Status:     out.Error.Status,
			Message:    out.Error.Message,
		}
	}
	return &out, nil
}

func encodeParts(parts []types.Part) []part {
	out := make([]part, 0, len(parts))
	for _, p := range parts {
		if p.Image != nil {
			out = append(out, part{InlineData: &inlineData{
				MIMEType: p.Image.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(p.Image.Data),
			}})
			continue
		}
		out = append(out, part{Text: p.Text})
	}
	return out
}
