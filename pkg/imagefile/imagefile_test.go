package imagefile

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/uxlens/uxlens/pkg/types"
)

// pngBytes encodes a small solid test image
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{200, 120, 40, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t)
	path := writeFile(t, dir, "mockup.png", data)

	asset, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if asset.MIMEType != "image/png" {
		t.Errorf("Expected image/png, got %q", asset.MIMEType)
	}
	if !bytes.Equal(asset.Data, data) {
		t.Error("Loaded bytes differ from file contents")
	}
	if asset.Path != path {
		t.Errorf("Expected path %q, got %q", path, asset.Path)
	}
}

func TestLoadSniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "screenshot.bin", pngBytes(t))

	asset, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if asset.MIMEType != "image/png" {
		t.Errorf("Expected sniffed image/png, got %q", asset.MIMEType)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		if !errors.Is(err, types.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.png"))
		if !errors.Is(err, types.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		path := writeFile(t, dir, "notes.txt", []byte("just text"))
		_, err := Load(path)
		if !errors.Is(err, types.ErrUnsupportedImageFormat) {
			t.Errorf("Expected ErrUnsupportedImageFormat, got %v", err)
		}
	})
}

func TestMIMETypeExtensionWins(t *testing.T) {
	// Extension is trusted before sniffing
	if mt := MIMEType("photo.jpeg", nil); mt != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %q", mt)
	}
	if mt := MIMEType("anim.webp", nil); mt != "image/webp" {
		t.Errorf("Expected image/webp, got %q", mt)
	}
	if mt := MIMEType("unknown.xyz", []byte("garbage")); mt != "" {
		t.Errorf("Expected empty MIME for garbage, got %q", mt)
	}
}

func TestSaveRawWhenFormatMatches(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t)
	path := filepath.Join(dir, "out.png")

	if err := Save(data, "image/png", path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(written, data) {
		t.Error("Expected raw bytes written unchanged")
	}
}

func TestSaveReencodesOnExtensionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jpg")

	if err := Save(pngBytes(t), "image/png", path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open saved file: %v", err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("Saved file did not decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("Expected jpeg output, got %q", format)
	}
}

func TestOutputPaths(t *testing.T) {
	paths := OutputPaths("out/banana.png", 1)
	if len(paths) != 1 || paths[0] != "out/banana.png" {
		t.Errorf("Unexpected paths for n=1: %v", paths)
	}

	paths = OutputPaths("out/banana.png", 3)
	want := []string{"out/banana.png", "out/banana_2.png", "out/banana_3.png"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d", len(want), len(paths))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Path %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}
