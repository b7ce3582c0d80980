package plaintext

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/infrastructure/extractor"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	var text string
	if utf8.Valid(raw) {
		text = string(raw)
	} else {
		// Latin-1 fallback: every byte maps to the code point of the same
		// value, so this never fails.
		text = decodeLatin1(raw)
	}

	text = extractor.NormalizeWhitespace(text)
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrExtraction, "extract plain text", errors.New("document is empty"))
	}
	return text, nil
}

func decodeLatin1(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
