package llm

import "context"

// ExtractRequest carries one expense-form image to the vision model.
type ExtractRequest struct {
	Image    []byte // preprocessed image bytes (JPEG or PNG)
	Filename string // original filename, for logging only
}

// VisionExtractor is the interface the processor depends on. Implementations
// return the raw model text verbatim; parsing and validation of that text
// belong to the extraction pipeline, never to the client.
type VisionExtractor interface {
	ExtractExpenseForm(ctx context.Context, req ExtractRequest) (string, error)
}
