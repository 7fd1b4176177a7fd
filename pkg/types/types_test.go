package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDecodeAnalyzeRequest(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"operation":"analyze","image_path":"a.png","prompt":"list colors"}`))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}

	ar, ok := req.(AnalyzeRequest)
	if !ok {
		t.Fatalf("Expected AnalyzeRequest, got %T", req)
	}
	if ar.ImagePath != "a.png" {
		t.Errorf("Expected image_path a.png, got %q", ar.ImagePath)
	}
	if ar.Prompt != "list colors" {
		t.Errorf("Expected prompt 'list colors', got %q", ar.Prompt)
	}
	if req.Operation() != OpAnalyze {
		t.Errorf("Expected operation analyze, got %q", req.Operation())
	}
}

func TestDecodeCompareRequest(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"operation":"compare","image1_path":"orig.png","image2_path":"impl.png","prompt":"match %?","image1_label":"Original","image2_label":"Current"}`))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}

	cr, ok := req.(CompareRequest)
	if !ok {
		t.Fatalf("Expected CompareRequest, got %T", req)
	}
	if cr.Image1Path != "orig.png" || cr.Image2Path != "impl.png" {
		t.Errorf("Unexpected image paths: %q, %q", cr.Image1Path, cr.Image2Path)
	}
	if cr.Image1Label != "Original" || cr.Image2Label != "Current" {
		t.Errorf("Unexpected labels: %q, %q", cr.Image1Label, cr.Image2Label)
	}
}

func TestDecodeGenerateRequest(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"operation":"generate","prompt":"a banana","output_path":"out.png","number_of_images":3}`))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}

	gr, ok := req.(GenerateRequest)
	if !ok {
		t.Fatalf("Expected GenerateRequest, got %T", req)
	}
	if gr.Count() != 3 {
		t.Errorf("Expected count 3, got %d", gr.Count())
	}
}

func TestDecodeRequestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown operation", `{"operation":"describe","prompt":"x"}`},
		{"missing operation", `{"prompt":"x"}`},
		{"malformed JSON", `{"operation":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tt.input))
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDecodeRequestIgnoresUnknownFields(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"operation":"analyze","image_path":"a.png","prompt":"p","extra_field":42}`))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}
	if _, ok := req.(AnalyzeRequest); !ok {
		t.Errorf("Expected AnalyzeRequest, got %T", req)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
		errText string
	}{
		{"valid analyze", AnalyzeRequest{ImagePath: "a.png", Prompt: "p"}, false, ""},
		{"analyze missing image_path", AnalyzeRequest{Prompt: "p"}, true, "image_path"},
		{"analyze missing prompt", AnalyzeRequest{ImagePath: "a.png"}, true, "prompt"},
		{"valid compare", CompareRequest{Image1Path: "1.png", Image2Path: "2.png", Prompt: "p"}, false, ""},
		{"compare missing image2_path", CompareRequest{Image1Path: "1.png", Prompt: "p"}, true, "image2_path"},
		{"compare missing image1_path", CompareRequest{Image2Path: "2.png", Prompt: "p"}, true, "image1_path"},
		{"valid generate", GenerateRequest{Prompt: "p", OutputPath: "o.png"}, false, ""},
		{"generate missing output_path", GenerateRequest{Prompt: "p"}, true, "output_path"},
		{"generate too many images", GenerateRequest{Prompt: "p", OutputPath: "o.png", NumberOfImages: 5}, true, "number_of_images"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("Expected ErrInvalidInput, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("Expected error naming %q, got %q", tt.errText, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCompareLabelDefaults(t *testing.T) {
	l1, l2 := CompareRequest{}.Labels()
	if l1 != "Image 1" || l2 != "Image 2" {
		t.Errorf("Expected default labels 'Image 1'/'Image 2', got %q/%q", l1, l2)
	}

	l1, l2 = CompareRequest{Image1Label: "Original"}.Labels()
	if l1 != "Original" || l2 != "Image 2" {
		t.Errorf("Expected 'Original'/'Image 2', got %q/%q", l1, l2)
	}
}

func TestEncodeResult(t *testing.T) {
	out, err := EncodeResult(AnalysisResult{Analysis: "red, blue"})
	if err != nil {
		t.Fatalf("EncodeResult failed: %v", err)
	}
	if string(out) != `{"analysis":"red, blue"}` {
		t.Errorf("Unexpected encoding: %s", out)
	}

	out, err = EncodeResult(ComparisonResult{Comparison: "82% match"})
	if err != nil {
		t.Fatalf("EncodeResult failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Result did not round-trip: %v", err)
	}
	if decoded["comparison"] != "82% match" {
		t.Errorf("Expected comparison '82%% match', got %q", decoded["comparison"])
	}
}
