// Package uxlens sends one or two images plus a natural-language prompt to a
// hosted vision-language model and returns its textual response.
//
// It exposes three operations for a mockup-to-code workflow: analyze a single
// design image, compare a design against a rendered implementation, and
// generate images from a prompt.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/uxlens/uxlens"
//		"github.com/uxlens/uxlens/pkg/types"
//	)
//
//	func main() {
//		// Uses the Gemini backend and the GOOGLE_API_KEY environment variable
//		tool, err := uxlens.New(nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		res, err := tool.Execute(context.Background(), types.CompareRequest{
//			Image1Path:  "mockup.png",
//			Image2Path:  "screenshot.png",
//			Prompt:      "How closely does the implementation match? List differences.",
//			Image1Label: "Original",
//			Image2Label: "Current",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Println(res.(types.ComparisonResult).Comparison)
//	}
//
// The package consists of three main components:
//
// 1. Types (pkg/types): request/result sum types and the error taxonomy
// 2. Backends (pkg/gemini, pkg/ollama, pkg/openaicompat): model API clients behind pkg/client.VisionClient
// 3. Image files (pkg/imagefile): loading, MIME inference and output encoding
//
// Each Execute call performs exactly one outbound request to the model API.
// There are no retries and no internal timeout; bound the context to limit or
// cancel a call.
package uxlens

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/uxlens/uxlens/internal/config"
	"github.com/uxlens/uxlens/internal/utils"
	"github.com/uxlens/uxlens/pkg/client"
	"github.com/uxlens/uxlens/pkg/gemini"
	"github.com/uxlens/uxlens/pkg/imagefile"
	"github.com/uxlens/uxlens/pkg/ollama"
	"github.com/uxlens/uxlens/pkg/openaicompat"
	"github.com/uxlens/uxlens/pkg/types"
)

// Version of the uxlens library
const Version = "1.0.0"

// Tool is the high-level entry point. It is stateless apart from its
// configuration and safe for concurrent use.
type Tool struct {
	client     client.VisionClient
	model      string
	imageModel string
	workingDir string
}

// New creates a Tool for the backend selected in cfg. A nil cfg selects the
// Gemini backend with default models.
func New(cfg *config.Config) (*Tool, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	t := &Tool{
		model:      cfg.Model,
		imageModel: cfg.ImageModel,
		workingDir: cfg.WorkingDir,
	}

	switch cfg.Backend {
	case config.BackendGemini:
		t.client = gemini.NewClient(cfg.ServerURL, cfg.APIKey, nil)
		t.applyModelDefaults(gemini.DefaultModel, gemini.DefaultImageModel)
	case config.BackendOllama:
		oc, err := ollama.NewClient(cfg.ServerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		t.client = oc
		t.applyModelDefaults(ollama.DefaultModel, "")
	case config.BackendOpenAI:
		t.client = openaicompat.NewClient(cfg.ServerURL, cfg.APIKey)
		t.applyModelDefaults(openaicompat.DefaultModel, openaicompat.DefaultImageModel)
	}

	return t, nil
}

// NewWithClient creates a Tool backed by a caller-supplied vision client.
// A nil cfg uses defaults; the cfg backend selection is ignored.
func NewWithClient(vc client.VisionClient, cfg *config.Config) *Tool {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Tool{
		client:     vc,
		model:      cfg.Model,
		imageModel: cfg.ImageModel,
		workingDir: cfg.WorkingDir,
	}
}

// Execute validates the request, dispatches it to the configured backend and
// returns the operation's result. Input validation failures surface before
// any network call is attempted.
func (t *Tool) Execute(ctx context.Context, req types.Request) (types.Result, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", types.ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch r := req.(type) {
	case types.AnalyzeRequest:
		return t.analyze(ctx, r)
	case types.CompareRequest:
		return t.compare(ctx, r)
	case types.GenerateRequest:
		return t.generate(ctx, r)
	default:
		return nil, fmt.Errorf("%w: unknown request type %T", types.ErrInvalidInput, req)
	}
}

func (t *Tool) analyze(ctx context.Context, r types.AnalyzeRequest) (types.Result, error) {
	img, err := imagefile.Load(t.resolvePath(r.ImagePath))
	if err != nil {
		return nil, err
	}

	text, err := t.client.Invoke(ctx, t.model, []types.Part{
		types.TextPart(r.Prompt),
		types.ImagePart(img),
	})
	if err != nil {
		return nil, err
	}
	return types.AnalysisResult{Analysis: text}, nil
}

func (t *Tool) compare(ctx context.Context, r types.CompareRequest) (types.Result, error) {
	img1, err := imagefile.Load(t.resolvePath(r.Image1Path))
	if err != nil {
		return nil, err
	}
	img2, err := imagefile.Load(t.resolvePath(r.Image2Path))
	if err != nil {
		return nil, err
	}

	// Image1 precedes image2; each label names the image above it.
	label1, label2 := r.Labels()
	text, err := t.client.Invoke(ctx, t.model, []types.Part{
		types.TextPart(r.Prompt),
		types.ImagePart(img1),
		types.TextPart("^ " + label1),
		types.ImagePart(img2),
		types.TextPart("^ " + label2),
	})
	if err != nil {
		return nil, err
	}
	return types.ComparisonResult{Comparison: text}, nil
}

func (t *Tool) generate(ctx context.Context, r types.GenerateRequest) (types.Result, error) {
	images, err := t.client.GenerateImages(ctx, t.imageModel, r.Prompt, r.Count())
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, &types.ProviderError{Message: "no images generated"}
	}

	outPath := t.resolvePath(r.OutputPath)
	if err := utils.EnsureDir(filepath.Dir(outPath)); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := imagefile.OutputPaths(outPath, len(images))
	saved := make([]string, 0, len(images))
	for i, img := range images {
		if err := imagefile.Save(img.Data, img.MIMEType, paths[i]); err != nil {
			return nil, fmt.Errorf("saving %s: %w", paths[i], err)
		}
		saved = append(saved, paths[i])
	}
	return types.GenerationResult{Images: saved}, nil
}

// resolvePath resolves relative paths against the configured working directory.
func (t *Tool) resolvePath(path string) string {
	if path == "" || t.workingDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(t.workingDir, path)
}

func (t *Tool) applyModelDefaults(model, imageModel string) {
	if t.model == "" {
		t.model = model
	}
	if t.imageModel == "" {
		t.imageModel = imageModel
	}
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
