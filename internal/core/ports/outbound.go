package ports

import (
	"context"

	"github.com/docqa-labs/docqa/internal/core/domain"
)

// DocumentFetcher retrieves a remote document, detects its format and
// computes its content hash.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.Document, error)
}

// TextExtractor converts raw document bytes of one format into normalized
// text in logical reading order.
type TextExtractor interface {
	Extract(ctx context.Context, raw []byte) (string, error)
}

// ExtractorRegistry selects the extractor for a detected format.
type ExtractorRegistry interface {
	ForFormat(format domain.Format) (TextExtractor, error)
}

// Chunker splits normalized text into overlapping passages.
type Chunker interface {
	Split(text string) ([]domain.Chunk, error)
}

// Embedder builds vectors for chunks and query text. Batch output order
// matches input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex answers nearest-neighbor queries over one document's chunks.
// Implementations are read-only after build and safe for concurrent queries.
type VectorIndex interface {
	Size() int
	Query(vector []float32, k int) ([]domain.IndexHit, error)
}

// IndexBuilder constructs a vector index from chunks and their vectors,
// paired 1:1 by position.
type IndexBuilder interface {
	Build(chunks []domain.Chunk, vectors [][]float32) (VectorIndex, error)
}

// Generator is the external language-generation capability: prompt in,
// answer text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IndexEntry is an immutable built index plus the chunks it was built from.
type IndexEntry struct {
	Chunks []domain.Chunk
	Index  VectorIndex
}

// IndexCache stores built indexes keyed by document content hash.
type IndexCache interface {
	Get(contentHash string) (IndexEntry, bool)
	Put(contentHash string, entry IndexEntry)
}
