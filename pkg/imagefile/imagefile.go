// Package imagefile loads caller-supplied images for model payloads and
// writes generated images back to disk.
package imagefile

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/uxlens/uxlens/internal/utils"
	"github.com/uxlens/uxlens/pkg/types"
)

// mimeByExtension maps known image extensions (without dot) to MIME types.
var mimeByExtension = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// mimeByFormat maps image.DecodeConfig format names to MIME types.
var mimeByFormat = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// Load reads an image file into an asset for a single request. The MIME type
// is inferred from the extension, falling back to content sniffing for
// unknown or missing extensions.
func Load(path string) (*types.ImageAsset, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty image path", types.ErrInvalidInput)
	}
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("%w: image file not found: %s", types.ErrInvalidInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrInvalidInput, path, err)
	}

	mimeType := MIMEType(path, data)
	if mimeType == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedImageFormat, path)
	}

	return &types.ImageAsset{Path: path, Data: data, MIMEType: mimeType}, nil
}

// MIMEType infers an image MIME type from the file extension, then from the
// content itself. Returns "" when neither matches a known image format.
func MIMEType(path string, data []byte) string {
	if mt, ok := mimeByExtension[utils.FileExtension(path)]; ok {
		return mt
	}
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if mt, ok := mimeByFormat[format]; ok {
			return mt
		}
	}
	return ""
}

// Save writes one generated image to path. When the target extension implies
// the format the model already returned, the bytes are written unchanged;
// otherwise the image is re-encoded to match the extension.
func Save(data []byte, mimeType, path string) error {
	ext := utils.FileExtension(path)
	if ext == "" || mimeByExtension[ext] == mimeType {
		return os.WriteFile(path, data, 0o644)
	}

	img, err := decode(data)
	if err != nil {
		return fmt.Errorf("decoding generated image: %w", err)
	}

	switch ext {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Quality: 90})
	case "jpg", "jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(90))
	case "png", "gif", "bmp", "tif", "tiff":
		return imaging.Save(img, path)
	default:
		return fmt.Errorf("%w: cannot encode .%s output", types.ErrUnsupportedImageFormat, ext)
	}
}

// OutputPaths derives n output paths from base: base, base_2, base_3, ...
// keeping the extension of base.
func OutputPaths(base string, n int) []string {
	if n <= 1 {
		return []string{base}
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	paths := make([]string, n)
	paths[0] = base
	for i := 1; i < n; i++ {
		paths[i] = fmt.Sprintf("%s_%d%s", stem, i+1, ext)
	}
	return paths
}

// decode tries the registered decoders first, then an explicit WebP decode
// for encoders that mislabel the container.
func decode(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("unknown or unsupported image format")
}
