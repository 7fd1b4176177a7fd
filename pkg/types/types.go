package types

// Operation selects which adapter operation a request performs.
type Operation string

const (
	OpAnalyze  Operation = "analyze"
	OpCompare  Operation = "compare"
	OpGenerate Operation = "generate"
)

// Labels applied when a compare request omits its own.
const (
	DefaultImage1Label = "Image 1"
	DefaultImage2Label = "Image 2"
)

// Limits for generation requests.
const (
	MinGeneratedImages = 1
	MaxGeneratedImages = 4
)

// Request is the closed set of adapter requests. Exactly one concrete type
// exists per operation; dispatch with a type switch for exhaustiveness.
type Request interface {
	Operation() Operation
	Validate() error
}

// AnalyzeRequest asks the model about a single image, e.g. a UI mockup.
type AnalyzeRequest struct {
	ImagePath string `json:"image_path"`
	Prompt    string `json:"prompt"`
}

// CompareRequest asks the model to compare two images, usually an original
// mockup against an implementation screenshot. Image1 always precedes image2
// in the constructed payload.
type CompareRequest struct {
	Image1Path  string `json:"image1_path"`
	Image2Path  string `json:"image2_path"`
	Prompt      string `json:"prompt"`
	Image1Label string `json:"image1_label,omitempty"`
	Image2Label string `json:"image2_label,omitempty"`
}

// GenerateRequest asks an image generation model for one or more images of
// the prompt and writes them to disk starting at OutputPath.
type GenerateRequest struct {
	Prompt         string `json:"prompt"`
	OutputPath     string `json:"output_path"`
	NumberOfImages int    `json:"number_of_images,omitempty"`
}

func (AnalyzeRequest) Operation() Operation  { return OpAnalyze }
func (CompareRequest) Operation() Operation  { return OpCompare }
func (GenerateRequest) Operation() Operation { return OpGenerate }

// Validate checks the request fields without touching the filesystem.
func (r AnalyzeRequest) Validate() error {
	if r.ImagePath == "" {
		return invalidInputf("image_path is required for analyze")
	}
	if r.Prompt == "" {
		return invalidInputf("prompt is required")
	}
	return nil
}

// Validate checks the request fields without touching the filesystem.
func (r CompareRequest) Validate() error {
	if r.Image1Path == "" {
		return invalidInputf("image1_path is required for compare")
	}
	if r.Image2Path == "" {
		return invalidInputf("image2_path is required for compare")
	}
	if r.Prompt == "" {
		return invalidInputf("prompt is required")
	}
	return nil
}

// Validate checks the request fields without touching the filesystem.
func (r GenerateRequest) Validate() error {
	if r.Prompt == "" {
		return invalidInputf("prompt is required")
	}
	if r.OutputPath == "" {
		return invalidInputf("output_path is required for generate")
	}
	if n := r.NumberOfImages; n != 0 && (n < MinGeneratedImages || n > MaxGeneratedImages) {
		return invalidInputf("number_of_images must be between %d and %d, got %d",
			MinGeneratedImages, MaxGeneratedImages, n)
	}
	return nil
}

// Labels returns the image labels with defaults applied for omitted ones.
func (r CompareRequest) Labels() (string, string) {
	l1, l2 := r.Image1Label, r.Image2Label
	if l1 == "" {
		l1 = DefaultImage1Label
	}
	if l2 == "" {
		l2 = DefaultImage2Label
	}
	return l1, l2
}

// Count returns the requested image count with the default applied.
func (r GenerateRequest) Count() int {
	if r.NumberOfImages == 0 {
		return MinGeneratedImages
	}
	return r.NumberOfImages
}

// Result is the closed set of adapter results, one per operation.
type Result interface {
	isResult()
}

// AnalysisResult carries the model's verbatim text response for an analyze call.
type AnalysisResult struct {
	Analysis string `json:"analysis"`
}

// ComparisonResult carries the model's verbatim text response for a compare call.
type ComparisonResult struct {
	Comparison string `json:"comparison"`
}

// GenerationResult lists the paths the generated images were written to.
type GenerationResult struct {
	Images []string `json:"images"`
}

func (AnalysisResult) isResult()   {}
func (ComparisonResult) isResult() {}
func (GenerationResult) isResult() {}

// ImageAsset holds the raw bytes of one image for the duration of a single
// request. Never persisted by the adapter.
type ImageAsset struct {
	Path     string
	Data     []byte
	MIMEType string
}

// Part is one element of a multimodal model payload: text or an image.
// Exactly one of the two fields is set.
type Part struct {
	Text  string
	Image *ImageAsset
}

// TextPart builds a text payload part.
func TextPart(text string) Part { return Part{Text: text} }

// ImagePart builds an image payload part.
func ImagePart(asset *ImageAsset) Part { return Part{Image: asset} }

// GeneratedImage is one image returned by a generation call.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}
