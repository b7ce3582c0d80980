package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/docqa-labs/docqa/internal/config"
	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/core/ports"
	"github.com/docqa-labs/docqa/internal/core/usecase"
	"github.com/docqa-labs/docqa/internal/infrastructure/cache"
	"github.com/docqa-labs/docqa/internal/infrastructure/chunking"
	"github.com/docqa-labs/docqa/internal/infrastructure/extractor"
	"github.com/docqa-labs/docqa/internal/infrastructure/extractor/docx"
	"github.com/docqa-labs/docqa/internal/infrastructure/extractor/pdf"
	"github.com/docqa-labs/docqa/internal/infrastructure/extractor/plaintext"
	"github.com/docqa-labs/docqa/internal/infrastructure/fetch/httpfetch"
	"github.com/docqa-labs/docqa/internal/infrastructure/llm/openai"
	"github.com/docqa-labs/docqa/internal/infrastructure/resilience"
	"github.com/docqa-labs/docqa/internal/infrastructure/vector/memory"
	"github.com/docqa-labs/docqa/internal/observability/logging"
	"github.com/docqa-labs/docqa/internal/observability/metrics"
)

type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Metrics  *metrics.HTTPServerMetrics
	Pipeline ports.PipelineRunner
}

func New(cfg config.Config, serviceName string) (*App, error) {
	logger := logging.New(serviceName, cfg.LogLevel)
	serverMetrics := metrics.NewHTTPServerMetrics(serviceName)

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	fetcher := httpfetch.New(time.Duration(cfg.FetchTimeoutSeconds)*time.Second, executor)

	registry := extractor.NewRegistry(map[domain.Format]ports.TextExtractor{
		domain.FormatPDF:  pdf.New(),
		domain.FormatDOCX: docx.New(),
		domain.FormatTXT:  plaintext.New(),
	})

	splitter, err := chunking.New(cfg.ChunkMaxTokens, cfg.ChunkOverlapTokens)
	if err != nil {
		return nil, fmt.Errorf("init chunker: %w", err)
	}

	embedClient := openai.NewClient(openai.Config{
		BaseURL: cfg.EmbedBaseURL,
		APIKey:  cfg.EmbedAPIKey,
		Model:   cfg.EmbedModel,
		RPS:     cfg.EmbedRPS,
	}, executor)
	genClient := openai.NewClient(openai.Config{
		BaseURL: cfg.GenBaseURL,
		APIKey:  cfg.GenAPIKey,
		Model:   cfg.GenModel,
		RPS:     cfg.GenRPS,
	}, executor)

	embedder := openai.NewEmbedder(embedClient)
	generator := openai.NewGenerator(genClient)

	var indexCache ports.IndexCache
	if cfg.CacheEnabled {
		indexCache = cache.New(cfg.CacheMaxEntries)
	}

	pipeline := usecase.NewPipeline(
		fetcher,
		registry,
		splitter,
		embedder,
		memory.NewBuilder(),
		indexCache,
		usecase.NewRetriever(embedder),
		usecase.NewAnswerer(generator, cfg.ContextTokenBudget),
		logger,
		usecase.PipelineOptions{
			TopK:     cfg.RAGTopK,
			Workers:  cfg.AnswerWorkers,
			Observer: serverMetrics.PipelineObserver(serviceName),
		},
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  serverMetrics,
		Pipeline: pipeline,
	}, nil
}
