package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/observability/metrics"
)

type fakePipeline struct {
	answers []string
	err     error

	gotURL       string
	gotQuestions []string
}

func (f *fakePipeline) Run(_ context.Context, documentURL string, questions []string) ([]string, error) {
	f.gotURL = documentURL
	f.gotQuestions = questions
	if f.err != nil {
		return nil, f.err
	}
	return f.answers, nil
}

func newTestRouter(pipeline *fakePipeline, token string) http.Handler {
	return NewRouter(pipeline, metrics.NewHTTPServerMetrics("test"), RouterOptions{
		APIToken:    token,
		ServiceName: "test",
	}).Handler()
}

func postRun(t *testing.T, handler http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/hackrx/run", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"documents":"https://example.com/policy.pdf","questions":["What is the grace period?","What is the waiting period?"]}`

func TestRunReturnsAnswersInOrder(t *testing.T) {
	pipeline := &fakePipeline{answers: []string{"thirty days", "two years"}}
	handler := newTestRouter(pipeline, "secret")

	rec := postRun(t, handler, "secret", validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answers []string `json:"answers"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Answers) != 2 || resp.Answers[0] != "thirty days" || resp.Answers[1] != "two years" {
		t.Fatalf("answers = %v, want pipeline output in order", resp.Answers)
	}
	if pipeline.gotURL != "https://example.com/policy.pdf" {
		t.Fatalf("pipeline received url %q", pipeline.gotURL)
	}
	if len(pipeline.gotQuestions) != 2 {
		t.Fatalf("pipeline received %d questions, want 2", len(pipeline.gotQuestions))
	}
}

func TestRunRejectsMissingToken(t *testing.T) {
	handler := newTestRouter(&fakePipeline{answers: []string{"a"}}, "secret")

	rec := postRun(t, handler, "", validBody)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRunRejectsWrongToken(t *testing.T) {
	handler := newTestRouter(&fakePipeline{answers: []string{"a"}}, "secret")

	rec := postRun(t, handler, "not-the-token", validBody)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRunValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing documents", `{"questions":["q"]}`},
		{"blank documents", `{"documents":"  ","questions":["q"]}`},
		{"missing questions", `{"documents":"https://example.com/doc.txt"}`},
		{"empty questions", `{"documents":"https://example.com/doc.txt","questions":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestRouter(&fakePipeline{answers: []string{"a"}}, "secret")
			rec := postRun(t, handler, "secret", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRunErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "validate", errors.New("bad")), http.StatusBadRequest},
		{"unsupported format", domain.WrapError(domain.ErrUnsupportedFormat, "detect", errors.New("xlsx")), http.StatusBadRequest},
		{"fetch failure", domain.WrapError(domain.ErrFetch, "download", errors.New("refused")), http.StatusBadGateway},
		{"generation failure", domain.WrapError(domain.ErrGeneration, "chat", errors.New("bad model")), http.StatusBadGateway},
		{"temporary", domain.WrapError(domain.ErrTemporary, "embed", errors.New("overloaded")), http.StatusServiceUnavailable},
		{"timeout", domain.WrapError(domain.ErrTimeout, "download", errors.New("deadline")), http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestRouter(&fakePipeline{err: tc.err}, "secret")
			rec := postRun(t, handler, "secret", validBody)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRunMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&fakePipeline{answers: []string{"a"}}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hackrx/run", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := newTestRouter(&fakePipeline{}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	handler := newTestRouter(&fakePipeline{}, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("request id header = %q, want req-42", got)
	}
}
