package httpfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/infrastructure/resilience"
)

const defaultMaxDocumentBytes = 64 << 20

// Fetcher downloads a document over HTTP(S), detects its format and computes
// the content hash. Failures surface to the orchestrator; the fetch itself is
// a single attempt under a bounded timeout.
type Fetcher struct {
	httpClient *http.Client
	executor   *resilience.Executor
	maxBytes   int64
}

func New(timeout time.Duration, executor *resilience.Executor) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
		maxBytes:   defaultMaxDocumentBytes,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.Document, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, domain.WrapError(domain.ErrFetch, "parse document url", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, domain.WrapError(domain.ErrFetch, "validate document url",
			fmt.Errorf("unsupported scheme %q", parsed.Scheme))
	}

	var (
		raw         []byte
		contentType string
	)
	call := func(callCtx context.Context) error {
		raw, contentType, err = f.download(callCtx, rawURL)
		return err
	}
	if f.executor != nil {
		err = f.executor.Execute(ctx, "fetch.document", call, classifyFetchError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.WrapError(domain.ErrTimeout, "fetch document", err)
		}
		return nil, domain.WrapError(domain.ErrFetch, "fetch document", err)
	}
	if len(raw) == 0 {
		return nil, domain.WrapError(domain.ErrFetch, "fetch document", errors.New("empty response body"))
	}

	format, err := DetectFormat(rawURL, contentType, raw)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(raw)
	return &domain.Document{
		SourceURL:   rawURL,
		ContentHash: hex.EncodeToString(sum[:]),
		Format:      format,
		Raw:         raw,
	}, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(raw)) > f.maxBytes {
		return nil, "", fmt.Errorf("document exceeds %d bytes", f.maxBytes)
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.Status)
}
