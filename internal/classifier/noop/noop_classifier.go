// Package noop provides a classifier that never guesses: documents keep the
// category the uploader supplied and no metadata is extracted.
package noop

import (
	"context"
	"log"

	"obrapass/internal/port"
)

type noopClassifier struct{}

// NewClassifier creates a no-op DocumentClassifier.
func NewClassifier() port.DocumentClassifier {
	return &noopClassifier{}
}

func (c *noopClassifier) Classify(_ context.Context, input port.ClassifyInput) (*port.ClassifyResult, error) {
	log.Printf("[NOOP CLASSIFIER] %s (%s, %d bytes)", input.FileName, input.ContentType, len(input.Content))
	return &port.ClassifyResult{}, nil
}
