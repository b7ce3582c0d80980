package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/docqa-labs/docqa/internal/core/ports"
	"github.com/docqa-labs/docqa/internal/observability/metrics"
)

type Router struct {
	pipeline ports.PipelineRunner
	metrics  *metrics.HTTPServerMetrics

	apiToken       string
	serviceName    string
	requestTimeout time.Duration
}

type RouterOptions struct {
	APIToken       string
	ServiceName    string
	RequestTimeout time.Duration
}

func NewRouter(pipeline ports.PipelineRunner, m *metrics.HTTPServerMetrics, opts RouterOptions) *Router {
	if opts.ServiceName == "" {
		opts.ServiceName = "api"
	}
	return &Router{
		pipeline:       pipeline,
		metrics:        m,
		apiToken:       opts.APIToken,
		serviceName:    opts.ServiceName,
		requestTimeout: opts.RequestTimeout,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.Handle("/api/v1/hackrx/run",
		rt.authMiddleware(requestTimeoutMiddleware(rt.requestTimeout, http.HandlerFunc(rt.run))))

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(rt.serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type runRequest struct {
	Documents string   `json:"documents"`
	Questions []string `json:"questions"`
}

type runResponse struct {
	Answers []string `json:"answers"`
}

func (rt *Router) run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Documents) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "documents url is required"})
		return
	}
	if len(req.Questions) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "questions are required"})
		return
	}

	start := time.Now()
	answers, err := rt.pipeline.Run(r.Context(), req.Documents, req.Questions)
	rt.metrics.RecordPipelineRun(rt.serviceName, len(req.Questions), time.Since(start), err)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		slog.ErrorContext(r.Context(), "pipeline run failed",
			slog.String("request_id", requestIDFromContext(r.Context())),
			slog.Int("status", status),
			slog.Any("error", err))
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, runResponse{Answers: answers})
}

func (rt *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rt.apiToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !isAuthorizedBearerHeader(r.Header.Get("Authorization"), rt.apiToken) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAuthorizedBearerHeader(headerValue, expectedToken string) bool {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" || expectedToken == "" {
		return false
	}
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(headerValue, bearerPrefix))
	return token == expectedToken
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
