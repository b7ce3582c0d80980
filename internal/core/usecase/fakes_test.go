package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/core/ports"
)

type fakeFetcher struct {
	doc *domain.Document
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc := *f.doc
	doc.SourceURL = url
	return &doc, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(context.Context, []byte) (string, error) {
	return f.text, f.err
}

type fakeRegistry struct {
	extractor ports.TextExtractor
	err       error
}

func (f *fakeRegistry) ForFormat(domain.Format) (ports.TextExtractor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.extractor, nil
}

// sentenceChunker splits on periods, one chunk per sentence.
type sentenceChunker struct{}

func (sentenceChunker) Split(text string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, part := range strings.Split(text, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{ID: len(chunks), Text: part + "."})
	}
	return chunks, nil
}

// keywordEmbedder maps text onto a fixed vocabulary axis per keyword, which
// makes similarity scoring fully predictable in tests.
type keywordEmbedder struct {
	vocabulary []string
	embedCalls atomic.Int64
	err        error
}

func (e *keywordEmbedder) vectorFor(text string) []float32 {
	lower := strings.ToLower(text)
	vec := make([]float32, len(e.vocabulary)+1)
	vec[len(e.vocabulary)] = 0.1
	for i, word := range e.vocabulary {
		if strings.Contains(lower, word) {
			vec[i] = 1
		}
	}
	return vec
}

func (e *keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.embedCalls.Add(1)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vectorFor(t)
	}
	return out, nil
}

func (e *keywordEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vectorFor(text), nil
}

// echoGenerator answers with the question line of the prompt so tests can
// assert answer ordering. It also records every prompt it received.
type echoGenerator struct {
	mu      sync.Mutex
	prompts []string
	answer  string
	err     error
}

func (g *echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.answer != "" {
		return g.answer, nil
	}
	lines := strings.Split(prompt, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "Q: ") {
			return "answer to " + strings.TrimPrefix(line, "Q: "), nil
		}
	}
	return "answer", nil
}

// contextEchoGenerator answers with the first line of the context block,
// standing in for a model that reads the retrieved passage.
type contextEchoGenerator struct{}

func (contextEchoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	marker := "Context from documents:\n"
	at := strings.Index(prompt, marker)
	if at < 0 {
		return "", nil
	}
	rest := prompt[at+len(marker):]
	if end := strings.Index(rest, "\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest, nil
}

type fakeIndex struct {
	hits []domain.IndexHit
	err  error
}

func (f *fakeIndex) Size() int { return len(f.hits) }

func (f *fakeIndex) Query([]float32, int) ([]domain.IndexHit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]ports.IndexEntry
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]ports.IndexEntry{}}
}

func (c *mapCache) Get(contentHash string) (ports.IndexEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[contentHash]
	if ok {
		c.hits++
	}
	return entry, ok
}

func (c *mapCache) Put(contentHash string, entry ports.IndexEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[contentHash] = entry
}
