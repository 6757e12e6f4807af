package port

import (
	"context"
	"encoding/json"
)

// ClassifyInput carries a document's content to the external classifier.
type ClassifyInput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ClassifyResult is the classifier's verdict. Extraction is opaque metadata
// produced by the external model; it is stored as-is and exposed to the
// compliance engine as document fields, never interpreted here.
type ClassifyResult struct {
	Category   string
	Confidence float64
	Extraction json.RawMessage
}

// DocumentClassifier abstracts the external AI classification API.
type DocumentClassifier interface {
	Classify(ctx context.Context, input ClassifyInput) (*ClassifyResult, error)
}
