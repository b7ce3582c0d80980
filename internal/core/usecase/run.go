package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/core/ports"
)

// Pipeline runs the full document question-answering flow: fetch the
// document, build (or reuse) its vector index, then answer every question
// against that index. A request either yields an answer for each question
// or fails as a whole.
type Pipeline struct {
	fetcher    ports.DocumentFetcher
	extractors ports.ExtractorRegistry
	chunker    ports.Chunker
	embedder   ports.Embedder
	builder    ports.IndexBuilder
	cache      ports.IndexCache
	retriever  *Retriever
	answerer   *Answerer
	observer   Observer
	log        *slog.Logger

	topK    int
	workers int
}

type PipelineOptions struct {
	TopK     int
	Workers  int
	Observer Observer
}

func NewPipeline(
	fetcher ports.DocumentFetcher,
	extractors ports.ExtractorRegistry,
	chunker ports.Chunker,
	embedder ports.Embedder,
	builder ports.IndexBuilder,
	cache ports.IndexCache,
	retriever *Retriever,
	answerer *Answerer,
	log *slog.Logger,
	opts PipelineOptions,
) *Pipeline {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Pipeline{
		fetcher:    fetcher,
		extractors: extractors,
		chunker:    chunker,
		embedder:   embedder,
		builder:    builder,
		cache:      cache,
		retriever:  retriever,
		answerer:   answerer,
		observer:   opts.Observer,
		log:        log,
		topK:       opts.TopK,
		workers:    opts.Workers,
	}
}

// Run answers every question against the document at documentURL. The
// returned slice is ordered by the original question positions.
func (p *Pipeline) Run(ctx context.Context, documentURL string, questions []string) ([]string, error) {
	if strings.TrimSpace(documentURL) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate request",
			errEmptyDocumentURL)
	}
	if len(questions) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate request",
			errNoQuestions)
	}
	for _, q := range questions {
		if strings.TrimSpace(q) == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "validate request",
				errBlankQuestion)
		}
	}

	entry, err := p.prepareIndex(ctx, documentURL)
	if err != nil {
		return nil, err
	}

	answers := make([]string, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, question := range questions {
		i, question := i, question
		g.Go(func() error {
			retrieved, err := p.retriever.Retrieve(gctx, entry.Index, entry.Chunks, question, p.topK)
			if err != nil {
				return err
			}
			if len(retrieved) == 0 {
				p.observer.NoContextAnswer()
			}
			answer, err := p.answerer.Answer(gctx, question, retrieved)
			if err != nil {
				return err
			}
			answers[i] = answer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.log.InfoContext(ctx, "pipeline run complete",
		slog.Int("questions", len(questions)),
		slog.Int("chunks", len(entry.Chunks)))
	return answers, nil
}

// prepareIndex fetches the document and returns a ready index, reusing a
// cached one when the same content has been indexed before. The fetch
// always happens because the cache key is the content hash.
func (p *Pipeline) prepareIndex(ctx context.Context, documentURL string) (ports.IndexEntry, error) {
	started := time.Now()

	doc, err := p.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		return ports.IndexEntry{}, err
	}
	p.log.InfoContext(ctx, "document fetched",
		slog.String("format", string(doc.Format)),
		slog.Int("bytes", len(doc.Raw)),
		slog.Duration("took", time.Since(started)))

	if p.cache != nil {
		entry, ok := p.cache.Get(doc.ContentHash)
		p.observer.IndexCacheLookup(ok)
		if ok {
			p.log.InfoContext(ctx, "index cache hit",
				slog.String("content_hash", doc.ContentHash))
			return entry, nil
		}
	}

	extractor, err := p.extractors.ForFormat(doc.Format)
	if err != nil {
		return ports.IndexEntry{}, err
	}
	text, err := extractor.Extract(ctx, doc.Raw)
	if err != nil {
		return ports.IndexEntry{}, err
	}

	chunks, err := p.chunker.Split(text)
	if err != nil {
		return ports.IndexEntry{}, err
	}
	if len(chunks) == 0 {
		return ports.IndexEntry{}, domain.WrapError(domain.ErrExtraction, "chunk document",
			errNoChunks)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return ports.IndexEntry{}, err
	}

	index, err := p.builder.Build(chunks, vectors)
	if err != nil {
		return ports.IndexEntry{}, err
	}

	entry := ports.IndexEntry{Chunks: chunks, Index: index}
	if p.cache != nil {
		p.cache.Put(doc.ContentHash, entry)
	}
	p.observer.DocumentIndexed(doc.Format, len(chunks))

	p.log.InfoContext(ctx, "index built",
		slog.String("content_hash", doc.ContentHash),
		slog.Int("chunks", len(chunks)),
		slog.Duration("took", time.Since(started)))
	return entry, nil
}
