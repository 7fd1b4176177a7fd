package types

import (
	"encoding/json"
	"fmt"
)

// DecodeRequest parses JSON tool input into the matching Request variant
// using the "operation" discriminator. Unknown fields are ignored; an
// unrecognized operation is an ErrInvalidInput. Field-level validation is
// left to Request.Validate so callers get the same errors on both paths.
func DecodeRequest(data []byte) (Request, error) {
	var probe struct {
		Operation string `json:"operation"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: malformed request JSON: %v", ErrInvalidInput, err)
	}

	switch Operation(probe.Operation) {
	case OpAnalyze:
		var r AnalyzeRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: decoding analyze request: %v", ErrInvalidInput, err)
		}
		return r, nil
	case OpCompare:
		var r CompareRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: decoding compare request: %v", ErrInvalidInput, err)
		}
		return r, nil
	case OpGenerate:
		var r GenerateRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: decoding generate request: %v", ErrInvalidInput, err)
		}
		return r, nil
	case "":
		return nil, invalidInputf("operation is required")
	default:
		return nil, invalidInputf("unknown operation %q (use analyze, compare or generate)", probe.Operation)
	}
}

// EncodeResult marshals a result for the tool output boundary.
func EncodeResult(res Result) ([]byte, error) {
	return json.Marshal(res)
}
