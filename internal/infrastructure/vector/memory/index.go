package memory

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/core/ports"
)

// Builder constructs exact linear-scan cosine indexes, sized for a handful
// to a few hundred chunks per document.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Build(chunks []domain.Chunk, vectors [][]float32) (ports.VectorIndex, error) {
	if len(chunks) != len(vectors) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build index",
			fmt.Errorf("chunks/vectors mismatch: %d/%d", len(chunks), len(vectors)))
	}
	if len(chunks) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyIndex, "build index", errors.New("no chunks to index"))
	}

	dimension := len(vectors[0])
	if dimension == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build index", errors.New("zero-dimension vector"))
	}

	normalized := make([][]float32, len(vectors))
	chunkIDs := make([]int, len(chunks))
	for i, vec := range vectors {
		if len(vec) != dimension {
			return nil, domain.WrapError(domain.ErrInvalidInput, "build index",
				fmt.Errorf("vector %d has dimension %d, expected %d", i, len(vec), dimension))
		}
		normalized[i] = normalize(vec)
		chunkIDs[i] = chunks[i].ID
	}

	return &Index{
		dimension: dimension,
		vectors:   normalized,
		chunkIDs:  chunkIDs,
	}, nil
}

// Index holds L2-normalized vectors, so cosine similarity reduces to a dot
// product. Read-only after build; safe for concurrent queries.
type Index struct {
	dimension int
	vectors   [][]float32
	chunkIDs  []int
}

func (idx *Index) Size() int {
	return len(idx.vectors)
}

// Query returns up to k hits sorted by descending score, ties broken by
// lower chunk ID so ranking is deterministic.
func (idx *Index) Query(vector []float32, k int) ([]domain.IndexHit, error) {
	if idx == nil || len(idx.vectors) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyIndex, "query index", errors.New("index not built"))
	}
	if len(vector) != idx.dimension {
		return nil, domain.WrapError(domain.ErrInvalidInput, "query index",
			fmt.Errorf("query dimension %d, index dimension %d", len(vector), idx.dimension))
	}
	if k <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "query index",
			fmt.Errorf("k must be positive, got %d", k))
	}

	query := normalize(vector)
	hits := make([]domain.IndexHit, len(idx.vectors))
	for i, vec := range idx.vectors {
		hits[i] = domain.IndexHit{ChunkID: idx.chunkIDs[i], Score: dot(vec, query)}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	if norm == 0 {
		return out
	}
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
