package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/docqa-labs/docqa/internal/core/domain"
)

const systemPrompt = `You are a helpful assistant that answers questions based on the provided context.
If the context does not contain the answer, say you don't know. Be concise and accurate.`

// Generator produces answer text through the provider's chat completions
// endpoint. Temperature is pinned to zero.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	request := chatRequest{
		Model: g.client.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	var response chatResponse
	if err := g.client.postJSON(ctx, "/chat/completions", request, &response, "generate"); err != nil {
		return "", wrapProviderError(domain.ErrGeneration, "generate answer", err)
	}
	if len(response.Choices) == 0 {
		return "", domain.WrapError(domain.ErrGeneration, "generate answer", errors.New("provider returned no choices"))
	}

	answer := strings.TrimSpace(response.Choices[0].Message.Content)
	if answer == "" {
		return "", domain.WrapError(domain.ErrGeneration, "generate answer", errors.New("provider returned empty answer"))
	}
	return answer, nil
}
