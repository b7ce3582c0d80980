package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetch             = errors.New("document fetch failed")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtraction        = errors.New("text extraction failed")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmbedding         = errors.New("embedding service failed")
	ErrEmptyIndex        = errors.New("vector index is empty")
	ErrGeneration        = errors.New("answer generation failed")
	ErrTimeout           = errors.New("request timed out")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
