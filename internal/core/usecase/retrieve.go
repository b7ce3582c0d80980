package usecase

import (
	"context"
	"fmt"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/core/ports"
)

// Retriever embeds a question and resolves the index hits back to chunk
// text. Its only side effect is the embedding call.
type Retriever struct {
	embedder ports.Embedder
}

func NewRetriever(embedder ports.Embedder) *Retriever {
	return &Retriever{embedder: embedder}
}

// Retrieve returns the top-k chunks for the question, capped at the number
// of indexed chunks. Chunk IDs are positions in the chunk sequence, so the
// hit join is a slice lookup.
func (r *Retriever) Retrieve(
	ctx context.Context,
	index ports.VectorIndex,
	chunks []domain.Chunk,
	question string,
	k int,
) (domain.RetrievalResult, error) {
	if k <= 0 {
		k = 5
	}
	if n := index.Size(); k > n {
		k = n
	}

	queryVector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := index.Query(queryVector, k)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	result := make(domain.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		if hit.ChunkID < 0 || hit.ChunkID >= len(chunks) {
			return nil, domain.WrapError(domain.ErrInvalidInput, "resolve retrieval hit",
				fmt.Errorf("chunk id %d outside sequence of %d", hit.ChunkID, len(chunks)))
		}
		result = append(result, domain.RetrievedChunk{
			Chunk: chunks[hit.ChunkID],
			Score: hit.Score,
		})
	}
	return result, nil
}
