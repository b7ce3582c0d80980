package domain

// RetrievedChunk is one retrieval hit: a chunk plus its similarity score
// against the question vector.
type RetrievedChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// RetrievalResult is the ranked retrieval output for a single question,
// ordered by descending score. Its length never exceeds the configured top-k.
type RetrievalResult []RetrievedChunk

// IndexHit is a raw nearest-neighbor match from the vector index before the
// retriever joins it back to chunk text.
type IndexHit struct {
	ChunkID int
	Score   float64
}
