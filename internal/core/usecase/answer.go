package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/core/ports"
)

// notFoundAnswer is returned verbatim when retrieval produces no context.
// The generator is not called in that case.
const notFoundAnswer = "I cannot answer this based on the provided information."

const promptTemplate = `Answer the question using only the context below.
Provide direct answers without using phrases like "according to the context".
If the context does not contain the answer, reply exactly:
%s

Context from documents:
%s

Current question:
Q: %s`

// Answerer assembles a grounded prompt from retrieved chunks and asks the
// generator for an answer. Context packing is budgeted in whitespace tokens,
// dropping the lowest-scored chunks first.
type Answerer struct {
	generator   ports.Generator
	tokenBudget int
}

func NewAnswerer(generator ports.Generator, tokenBudget int) *Answerer {
	if tokenBudget <= 0 {
		tokenBudget = 1200
	}
	return &Answerer{generator: generator, tokenBudget: tokenBudget}
}

// Answer produces the answer text for one question. An empty retrieval
// result short-circuits to the deterministic not-found answer.
func (a *Answerer) Answer(ctx context.Context, question string, retrieved domain.RetrievalResult) (string, error) {
	if len(retrieved) == 0 {
		return notFoundAnswer, nil
	}

	contextBlock := packContext(retrieved, a.tokenBudget)
	if contextBlock == "" {
		return notFoundAnswer, nil
	}

	prompt := fmt.Sprintf(promptTemplate, notFoundAnswer, contextBlock, question)
	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// packContext joins chunk texts in retrieval order until the token budget
// is exhausted. The chunk that crosses the budget is truncated at a
// sentence boundary when one exists, otherwise at the token limit.
func packContext(retrieved domain.RetrievalResult, budget int) string {
	var parts []string
	remaining := budget

	for _, rc := range retrieved {
		if remaining <= 0 {
			break
		}
		text := rc.Chunk.Text
		tokens := strings.Fields(text)
		if len(tokens) <= remaining {
			parts = append(parts, text)
			remaining -= len(tokens)
			continue
		}
		truncated := truncateAtSentence(strings.Join(tokens[:remaining], " "))
		if truncated != "" {
			parts = append(parts, truncated)
		}
		break
	}

	return strings.Join(parts, "\n\n")
}

// truncateAtSentence cuts the text back to the last sentence terminator,
// keeping the whole text when none is found.
func truncateAtSentence(text string) string {
	last := -1
	for i, r := range text {
		switch r {
		case '.', '!', '?':
			last = i
		}
	}
	if last < 0 {
		return text
	}
	return text[:last+1]
}
