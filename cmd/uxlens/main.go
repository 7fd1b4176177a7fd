package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/uxlens/uxlens"
	"github.com/uxlens/uxlens/internal/config"
	"github.com/uxlens/uxlens/pkg/types"
)

func main() {
	var requestPath, configPath string
	var backend, model, imageModel, url, workDir string
	var timeout time.Duration

	flag.StringVar(&requestPath, "request", "", "path to JSON request file (default: read from stdin)")
	flag.StringVar(&configPath, "config", "", "path to config file (JSON)")
	flag.StringVar(&backend, "backend", "", "backend to use: gemini, ollama or openai")
	flag.StringVar(&model, "model", "", "vision model name (defaults per backend)")
	flag.StringVar(&imageModel, "image-model", "", "image generation model name")
	flag.StringVar(&url, "url", "", "server URL override (ollama/openai-compatible servers)")
	flag.StringVar(&workDir, "workdir", "", "base directory for relative image paths")
	flag.DurationVar(&timeout, "timeout", 0, "per-request timeout, e.g. 90s (0 = none)")

	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if model != "" {
		cfg.Model = model
	}
	if imageModel != "" {
		cfg.ImageModel = imageModel
	}
	if url != "" {
		cfg.ServerURL = url
	}
	if workDir != "" {
		cfg.WorkingDir = workDir
	}

	data, err := readRequest(requestPath)
	if err != nil {
		log.Fatalf("Failed to read request: %v", err)
	}

	req, err := types.DecodeRequest(data)
	if err != nil {
		log.Fatalf("Bad request: %v", err)
	}

	tool, err := uxlens.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Ctrl-C aborts the in-flight model request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := tool.Execute(ctx, req)
	if err != nil {
		log.Fatalf("%s failed: %v", req.Operation(), err)
	}

	out, err := types.EncodeResult(result)
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

func readRequest(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("no request JSON on stdin (usage: %s -request request.json)", filepath.Base(os.Args[0]))
		}
		return data, nil
	}
	return os.ReadFile(path)
}
