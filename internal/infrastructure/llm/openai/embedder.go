package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/docqa-labs/docqa/internal/core/domain"
)

// Embedder maps texts to fixed-dimension vectors through the provider's
// embeddings endpoint. The provider is the same pure function for chunk and
// query text, which keeps the index and queries in one vector space.
type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns one vector per input text, in input order. Vectors are
// placed by the provider-reported index; the wire order is not guaranteed
// to match the input.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	request := embeddingsRequest{Model: e.client.model, Input: texts}
	var response embeddingsResponse
	if err := e.client.postJSON(ctx, "/embeddings", request, &response, "embed"); err != nil {
		return nil, wrapProviderError(domain.ErrEmbedding, "embed texts", err)
	}
	if len(response.Data) != len(texts) {
		return nil, domain.WrapError(domain.ErrEmbedding, "embed texts",
			fmt.Errorf("provider returned %d vectors for %d inputs", len(response.Data), len(texts)))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range response.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, domain.WrapError(domain.ErrEmbedding, "embed texts",
				fmt.Errorf("provider index %d outside %d inputs", item.Index, len(texts)))
		}
		if vectors[item.Index] != nil {
			return nil, domain.WrapError(domain.ErrEmbedding, "embed texts",
				fmt.Errorf("duplicate provider index %d", item.Index))
		}
		if len(item.Embedding) == 0 {
			return nil, domain.WrapError(domain.ErrEmbedding, "embed texts",
				fmt.Errorf("empty vector at index %d", item.Index))
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, domain.WrapError(domain.ErrEmbedding, "embed query", errors.New("empty embedding result"))
	}
	return vectors[0], nil
}
