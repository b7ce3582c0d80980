package extractor

import (
	"fmt"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/core/ports"
)

// Registry maps a detected document format to the extractor that handles it.
type Registry struct {
	byFormat map[domain.Format]ports.TextExtractor
}

func NewRegistry(byFormat map[domain.Format]ports.TextExtractor) *Registry {
	return &Registry{byFormat: byFormat}
}

func (r *Registry) ForFormat(format domain.Format) (ports.TextExtractor, error) {
	ext, ok := r.byFormat[format]
	if !ok {
		return nil, domain.WrapError(domain.ErrUnsupportedFormat, "select extractor",
			fmt.Errorf("no extractor registered for format %q", format))
	}
	return ext, nil
}
