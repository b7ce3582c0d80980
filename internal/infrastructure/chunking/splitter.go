package chunking

import (
	"fmt"
	"unicode"

	"github.com/docqa-labs/docqa/internal/core/domain"
)

// Splitter windows normalized text into overlapping chunks. Token counting
// is whitespace-based: one token per whitespace-delimited word, which tracks
// the embedding model's input limit closely enough for sizing.
type Splitter struct {
	maxTokens     int
	overlapTokens int
}

func New(maxTokens, overlapTokens int) (*Splitter, error) {
	if maxTokens <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidConfig, "configure chunker",
			fmt.Errorf("max tokens must be positive, got %d", maxTokens))
	}
	if overlapTokens < 0 {
		return nil, domain.WrapError(domain.ErrInvalidConfig, "configure chunker",
			fmt.Errorf("overlap tokens must not be negative, got %d", overlapTokens))
	}
	if overlapTokens >= maxTokens {
		return nil, domain.WrapError(domain.ErrInvalidConfig, "configure chunker",
			fmt.Errorf("overlap %d must be smaller than max tokens %d", overlapTokens, maxTokens))
	}
	return &Splitter{maxTokens: maxTokens, overlapTokens: overlapTokens}, nil
}

// Split is deterministic: the same text always yields the same chunk
// sequence. The window advances by maxTokens-overlapTokens, so consecutive
// chunks share exactly overlapTokens tokens; the final chunk may be shorter.
func (s *Splitter) Split(text string) ([]domain.Chunk, error) {
	spans := tokenSpans(text)
	if len(spans) == 0 {
		return nil, nil
	}

	step := s.maxTokens - s.overlapTokens
	chunks := make([]domain.Chunk, 0, len(spans)/step+1)
	for start := 0; start < len(spans); start += step {
		end := start + s.maxTokens
		if end > len(spans) {
			end = len(spans)
		}
		startOffset := spans[start].from
		endOffset := spans[end-1].to
		chunks = append(chunks, domain.Chunk{
			ID:          len(chunks),
			Text:        text[startOffset:endOffset],
			StartOffset: startOffset,
			EndOffset:   endOffset,
		})
		if end == len(spans) {
			break
		}
	}
	return chunks, nil
}

type span struct {
	from, to int
}

func tokenSpans(text string) []span {
	spans := make([]span, 0, len(text)/6)
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, span{from: start, to: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{from: start, to: len(text)})
	}
	return spans
}
